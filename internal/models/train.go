package models

// Body opcional de POST /recommendations/fpgrowth/compute. Los ceros se
// rellenan con los defaults de configuración.
type ComputeFPGrowthRequest struct {
	MinSupport    float64 `json:"min_support,omitempty"`
	MinConfidence float64 `json:"min_confidence,omitempty"`
	Force         bool    `json:"force,omitempty"`
}

type ComputeFPGrowthResponse struct {
	Status    string         `json:"status"` // success | skipped | error
	ModelInfo *ModelMetadata `json:"model_info,omitempty"`
	Message   string         `json:"message,omitempty"`
}

type ComputePopularResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Estado del modelo para GET /recommendations/fpgrowth/model.
type ModelInfoResponse struct {
	Status    string         `json:"status"` // ready | not_trained
	ModelInfo *ModelMetadata `json:"model_info,omitempty"`
}

// Body de POST /recommendations/fpgrowth: o user_id, o una canasta
// explícita (o ambos, la canasta manda).
type FPGrowthRequest struct {
	UserID string   `json:"user_id,omitempty"`
	Basket []string `json:"basket,omitempty"`
	TopK   int      `json:"top_k,omitempty"`
}
