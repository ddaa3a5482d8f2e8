package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dinhln03/fsds-bwai-recs/internal/models"
	"github.com/dinhln03/fsds-bwai-recs/internal/repository"
	"github.com/dinhln03/fsds-bwai-recs/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type TrainHandler struct {
	trainSvc *service.TrainService
	recSvc   *service.RecommendService
}

func NewTrainHandler(trainSvc *service.TrainService, recSvc *service.RecommendService) *TrainHandler {
	return &TrainHandler{trainSvc: trainSvc, recSvc: recSvc}
}

// @Summary Recalcular el ranking de popularidad
// @Tags compute
// @Produce json
// @Success 200 {object} models.ComputePopularResponse
// @Failure 503 {string} string "almacén no disponible"
// @Router /recommendations/popular/compute [post]
func (h *TrainHandler) PostComputePopular(w http.ResponseWriter, r *http.Request) {
	count, err := h.recSvc.RecomputePopular(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ComputePopularResponse{Status: "success", Count: count})
}

// @Summary Entrenar el modelo fp-growth
// @Description Con trainers configurados delega en uno; si no, entrena en el proceso de la API. Sin force respeta la frescura del modelo persistido.
// @Tags compute
// @Accept json
// @Produce json
// @Param body body models.ComputeFPGrowthRequest false "overrides opcionales de min_support / min_confidence"
// @Success 200 {object} models.ComputeFPGrowthResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 503 {string} string "almacén no disponible"
// @Router /recommendations/fpgrowth/compute [post]
func (h *TrainHandler) PostComputeFPGrowth(w http.ResponseWriter, r *http.Request) {
	var req models.ComputeFPGrowthRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "body inválido", http.StatusBadRequest)
			return
		}
	}

	out, err := h.trainSvc.Compute(r.Context(), service.TrainOptions{
		MinSupport:    req.MinSupport,
		MinConfidence: req.MinConfidence,
		Force:         req.Force,
		Trigger:       "http",
	}, nil)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			http.Error(w, vErr.Msg, http.StatusBadRequest)
		case errors.Is(err, repository.ErrUnavailable):
			http.Error(w, "almacén no disponible, intenta de nuevo", http.StatusServiceUnavailable)
		default:
			writeJSON(w, http.StatusInternalServerError, models.ComputeFPGrowthResponse{
				Status:  "error",
				Message: err.Error(),
			})
		}
		return
	}

	status := "success"
	if out.Skipped {
		status = "skipped"
	}
	writeJSON(w, http.StatusOK, models.ComputeFPGrowthResponse{Status: status, ModelInfo: out.Meta})
}

// @Summary Metadata del modelo fp-growth vigente
// @Tags compute
// @Produce json
// @Success 200 {object} models.ModelInfoResponse
// @Failure 503 {string} string "almacén no disponible"
// @Router /recommendations/fpgrowth/model [get]
func (h *TrainHandler) GetModelInfo(w http.ResponseWriter, r *http.Request) {
	meta, err := h.trainSvc.ModelInfo(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	if meta == nil {
		// nunca se entrenó: estado explícito, no un 404
		writeJSON(w, http.StatusOK, models.ModelInfoResponse{Status: "not_trained"})
		return
	}
	writeJSON(w, http.StatusOK, models.ModelInfoResponse{Status: "ready", ModelInfo: meta})
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Entrenamiento con progreso en vivo (WebSocket)
// @Tags compute
// @Param force query bool false "si true, ignora la frescura del modelo"
// @Success 200 {object} map[string]interface{}
// @Router /ws/fpgrowth/compute [get]
func (h *TrainHandler) GetComputeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "No se pudo abrir WebSocket", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	force := r.URL.Query().Get("force") == "true"

	// Mensaje inicial
	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "Conexión WS abierta, arrancando entrenamiento…",
	})

	// Cada hito del pipeline sale como mensaje de progreso.
	progress := func(phase string, detail map[string]any) {
		msg := map[string]any{"type": "progress", "phase": phase}
		for k, v := range detail {
			msg[k] = v
		}
		conn.WriteJSON(msg)
	}

	out, err := h.trainSvc.Compute(r.Context(), service.TrainOptions{Force: force, Trigger: "ws"}, progress)
	if err != nil {
		conn.WriteJSON(map[string]any{
			"type":  "error",
			"error": err.Error(),
		})
		return
	}

	status := "success"
	if out.Skipped {
		status = "skipped"
	}
	conn.WriteJSON(map[string]any{
		"type":       "result",
		"status":     status,
		"model_info": out.Meta,
	})
}

// Helper para montar rutas en main.go
func MountTrainRoutes(r chi.Router, h *TrainHandler) {
	r.Post("/recommendations/popular/compute", h.PostComputePopular)
	r.Post("/recommendations/fpgrowth/compute", h.PostComputeFPGrowth)
	r.Get("/recommendations/fpgrowth/model", h.GetModelInfo)
	r.Get("/ws/fpgrowth/compute", h.GetComputeWS)
}
