package models

import "time"

// Un ítem recomendado con su puntaje. Para popularidad el score va
// normalizado (count/max); para fp-growth es la suma de confianzas.
type RecItem struct {
	ItemID string  `bson:"itemId" json:"item_id"`
	Score  float64 `bson:"score"  json:"score"`
}

// Respuesta estándar de los endpoints de recomendación.
type RecommendationResponse struct {
	UserID          string    `json:"user_id"`
	Recommendations []RecItem `json:"recommendations"`
}

// Historial de recomendaciones servidas (colección recommendations).
// Se inserta best-effort: si falla, la respuesta al cliente no se ve afectada.
type RecommendationLog struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"userId"        json:"userId"`
	Algo      string    `bson:"algo"          json:"algo"`
	Fallback  bool      `bson:"fallback"      json:"fallback"`
	Params    any       `bson:"params"        json:"params"`
	Items     []RecItem `bson:"items"         json:"items"`
	CreatedAt time.Time `bson:"createdAt"     json:"createdAt"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
