package handler

import (
	"net/http"

	"github.com/dinhln03/fsds-bwai-recs/internal/models"
)

// @Summary Healthcheck
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{Status: "healthy"})
}
