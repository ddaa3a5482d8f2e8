package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dinhln03/fsds-bwai-recs/internal/models"
	"github.com/dinhln03/fsds-bwai-recs/internal/repository"
	"github.com/dinhln03/fsds-bwai-recs/internal/service"

	"github.com/go-chi/chi/v5"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

// parseTopK lee top_k (o el alias viejo k). Vacío usa el default del
// servicio; basura no numérica es 400. Los fuera de rango se recortan, no se
// rechazan.
func parseTopK(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("top_k")
	if raw == "" {
		raw = r.URL.Query().Get("k")
	}
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &service.ValidationError{Msg: "top_k tiene que ser un entero"}
	}
	return n, nil
}

// @Summary Ítems más populares
// @Tags recommendations
// @Produce json
// @Param user_id query string false "solo para registrar el historial"
// @Param top_k query int false "cantidad de recomendaciones (máx 100)"
// @Param refresh query bool false "si true, recalcula e ignora el cache"
// @Success 200 {object} models.RecommendationResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 503 {string} string "almacén no disponible"
// @Router /recommendations/popular [get]
func (h *RecommendHandler) GetPopular(w http.ResponseWriter, r *http.Request) {
	topK, err := parseTopK(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	userID := r.URL.Query().Get("user_id")
	refresh := r.URL.Query().Get("refresh") == "true"

	items, err := h.svc.Popular(r.Context(), service.PopularRequest{
		UserID:  userID,
		TopK:    topK,
		Refresh: refresh,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.RecommendationResponse{UserID: userID, Recommendations: items})
}

// @Summary Recomendaciones fp-growth (canasta explícita o historial)
// @Tags recommendations
// @Accept json
// @Produce json
// @Param body body models.FPGrowthRequest true "user_id y/o basket; con ambos manda la canasta"
// @Success 200 {object} models.RecommendationResponse
// @Failure 400 {string} string "body inválido"
// @Failure 503 {string} string "almacén no disponible"
// @Router /recommendations/fpgrowth [post]
func (h *RecommendHandler) PostFPGrowth(w http.ResponseWriter, r *http.Request) {
	var req models.FPGrowthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "body inválido", http.StatusBadRequest)
		return
	}

	items, err := h.svc.FPGrowth(r.Context(), service.FPGrowthRequest{
		UserID: req.UserID,
		Basket: req.Basket,
		TopK:   req.TopK,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.RecommendationResponse{UserID: req.UserID, Recommendations: items})
}

// @Summary Recomendaciones fp-growth por usuario
// @Tags recommendations
// @Produce json
// @Param user_id path string true "userId"
// @Param top_k query int false "cantidad de recomendaciones (máx 100)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} models.RecommendationResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 503 {string} string "almacén no disponible"
// @Router /recommendations/fpgrowth/{user_id} [get]
func (h *RecommendHandler) GetFPGrowthByUser(w http.ResponseWriter, r *http.Request) {
	topK, err := parseTopK(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	userID := chi.URLParam(r, "user_id")
	refresh := r.URL.Query().Get("refresh") == "true"

	items, err := h.svc.FPGrowth(r.Context(), service.FPGrowthRequest{
		UserID:  userID,
		TopK:    topK,
		Refresh: refresh,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.RecommendationResponse{UserID: userID, Recommendations: items})
}

// @Summary Recomendaciones para un usuario (compatibilidad)
// @Tags recommend
// @Produce json
// @Param user_id path string true "userId"
// @Param top_k query int false "cantidad de recomendaciones (máx 100)"
// @Param strategy query string false "fpgrowth (default) o popular"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} models.RecommendationResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Router /recommend/{user_id} [get]
func (h *RecommendHandler) GetRecommend(w http.ResponseWriter, r *http.Request) {
	topK, err := parseTopK(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	userID := chi.URLParam(r, "user_id")

	items, err := h.svc.Recommend(r.Context(), service.RecRequest{
		UserID:   userID,
		TopK:     topK,
		Strategy: r.URL.Query().Get("strategy"),
		Refresh:  r.URL.Query().Get("refresh") == "true",
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.RecommendationResponse{UserID: userID, Recommendations: items})
}

// Utilidad pequeña para respuestas JSON.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr mapea los errores del dominio a códigos HTTP.
func writeErr(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		http.Error(w, vErr.Msg, http.StatusBadRequest)
	case errors.Is(err, repository.ErrUnavailable):
		http.Error(w, "almacén no disponible, intenta de nuevo", http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Helper para montar rutas en main.go. Sin grupos Route(): compute y model
// cuelgan del mismo prefijo y chi no deja mezclar un Mount con rutas sueltas.
func MountRecommendRoutes(r chi.Router, h *RecommendHandler) {
	r.Get("/recommendations/popular", h.GetPopular)
	r.Post("/recommendations/fpgrowth", h.PostFPGrowth)
	r.Get("/recommendations/fpgrowth/{user_id}", h.GetFPGrowthByUser)
	r.Get("/recommend/{user_id}", h.GetRecommend)
}
