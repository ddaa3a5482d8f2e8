package models

// Lo que está en Mongo (colección interactions).
// El timestamp se guarda como epoch (int64); los eventos son inmutables,
// el core de recomendación solo los lee.
type InteractionDoc struct {
	UserID    string `json:"userId" bson:"userId"`
	ItemID    string `json:"itemId" bson:"itemId"`
	Timestamp int64  `json:"timestamp" bson:"timestamp"`
}

// Resultado del pipeline de agregación de popularidad ($group por itemId).
type ItemCount struct {
	ItemID string `json:"itemId" bson:"_id"`
	Count  int64  `json:"count" bson:"count"`
}
