package models

// Lo que está en Mongo (colección items).
// Los tags alimentan las transacciones de respaldo cuando hay pocas canastas.
type ItemDoc struct {
	ItemID string   `json:"itemId" bson:"itemId"`
	Title  string   `json:"title" bson:"title"`
	Tags   []string `json:"tags" bson:"tags"`
	Views  int64    `json:"views" bson:"views"`
}
