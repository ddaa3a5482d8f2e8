package cluster

import "github.com/dinhln03/fsds-bwai-recs/internal/models"

// Tarea de entrenamiento enviada desde la API a un nodo trainer. Los ceros
// significan "usa tu configuración".
type TrainTask struct {
	MinSupport    float64 `json:"minSupport,omitempty"`
	MinConfidence float64 `json:"minConfidence,omitempty"`
	Force         bool    `json:"force,omitempty"`
	RequestedBy   string  `json:"requestedBy,omitempty"` // id del nodo que pide
}

// Respuesta del trainer: el modelo ya quedó persistido en Mongo, acá solo
// viaja la metadata (o el error).
type TrainResult struct {
	Status   string                `json:"status"` // success | skipped | error
	Metadata *models.ModelMetadata `json:"metadata,omitempty"`
	Error    string                `json:"error,omitempty"`
}
