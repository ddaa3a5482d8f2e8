package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dinhln03/fsds-bwai-recs/internal/cache"
	"github.com/dinhln03/fsds-bwai-recs/internal/config"
	"github.com/dinhln03/fsds-bwai-recs/internal/metrics"
	"github.com/dinhln03/fsds-bwai-recs/internal/models"
	"github.com/dinhln03/fsds-bwai-recs/internal/recommender"
)

const (
	DefaultTopK = 10
	MaxTopK     = 100 // por seguridad, no deja pedir 1000 ítems

	// tamaño del ranking de popularidad que se precalcula; tiene que cubrir
	// MaxTopK más los rellenos
	popularPoolSize = 1000

	// cota para los accesos a Mongo en el camino de serving; si se pasa,
	// el request ve "almacén no disponible" en vez de colgarse
	storeTimeout = 10 * time.Second
)

// Interfaces mínimas sobre los repos, para poder probar el servicio sin Mongo.
type InteractionStore interface {
	FetchAll(ctx context.Context) ([]models.InteractionDoc, int, error)
	GetAllByUser(ctx context.Context, userID string) ([]models.InteractionDoc, error)
	AggregatePopularity(ctx context.Context, n int) ([]models.ItemCount, error)
}

type RecommendationLogStore interface {
	Insert(ctx context.Context, rec *models.RecommendationLog) error
}

// RecommendService sirve recomendaciones desde el snapshot en vivo; nunca
// entrena en el camino de un request.
type RecommendService struct {
	interactions InteractionStore
	recLogs      RecommendationLogStore
	snap         *recommender.SnapshotRef
	cfg          *config.Config
}

func NewRecommendService(
	interactions InteractionStore,
	recLogs RecommendationLogStore,
	snap *recommender.SnapshotRef,
	cfg *config.Config,
) *RecommendService {
	return &RecommendService{
		interactions: interactions,
		recLogs:      recLogs,
		snap:         snap,
		cfg:          cfg,
	}
}

func clampTopK(k int) int {
	if k <= 0 {
		return DefaultTopK
	}
	if k > MaxTopK {
		return MaxTopK
	}
	return k
}

// La popularidad se cachea como un solo pool (los primeros MaxTopK); cada
// request corta su top_k de ahí y el recompute reescribe el pool entero.
const popularPoolKey = "rec:popular:pool"

func fpgCacheKey(userID string, k int) string {
	return fmt.Sprintf("rec:fpg:user:%s:k:%d", userID, k)
}

// ====== Popularidad ======

type PopularRequest struct {
	UserID  string
	TopK    int
	Refresh bool
}

// Popular devuelve el top global por conteo de interacciones. El ranking se
// agrega en Mongo una sola vez y queda en el snapshot; en Redis vive el pool
// completo, del que cada llamada corta su top_k.
func (s *RecommendService) Popular(ctx context.Context, req PopularRequest) ([]models.RecItem, error) {
	req.TopK = clampTopK(req.TopK)

	if !req.Refresh {
		var pool []models.RecItem
		if ok, err := cache.GetJSON(ctx, popularPoolKey, &pool); err == nil && ok {
			metrics.CacheOps.WithLabelValues("hit").Inc()
			return slicePool(pool, req.TopK), nil
		}
		metrics.CacheOps.WithLabelValues("miss").Inc()
	}

	pop := s.snap.Current().Popular
	if pop == nil || req.Refresh {
		var err error
		pop, err = s.rebuildPopular(ctx)
		if err != nil {
			return nil, err
		}
	}

	pool := pop.TopK(MaxTopK)
	items := slicePool(pool, req.TopK)

	s.logServed(ctx, req.UserID, "popular", false, map[string]any{"top_k": req.TopK}, items)

	if err := cache.SetJSON(ctx, popularPoolKey, pool, s.cfg.PopularCacheTTL); err != nil {
		log.Printf("[rec] error cacheando populares en Redis: %v", err)
	}
	return items, nil
}

// slicePool corta los primeros k del pool; nunca devuelve nil.
func slicePool(pool []models.RecItem, k int) []models.RecItem {
	if pool == nil {
		return []models.RecItem{}
	}
	if len(pool) > k {
		return pool[:k]
	}
	return pool
}

// rebuildPopular agrega en Mongo y publica el índice nuevo en el snapshot.
func (s *RecommendService) rebuildPopular(ctx context.Context) (*recommender.PopularityIndex, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	counts, err := s.interactions.AggregatePopularity(ctxTimeout, popularPoolSize)
	if err != nil {
		return nil, err
	}
	pop := recommender.PopularityFromCounts(counts)
	s.snap.SwapPopular(pop)
	return pop, nil
}

// RecomputePopular fuerza el recálculo del ranking y reescribe el pool
// cacheado, con lo que el resultado rige para cualquier top_k que se pida.
// Devuelve cuántos ítems quedaron en el ranking.
func (s *RecommendService) RecomputePopular(ctx context.Context) (int, error) {
	pop, err := s.rebuildPopular(ctx)
	if err != nil {
		return 0, err
	}
	if err := cache.SetJSON(ctx, popularPoolKey, pop.TopK(MaxTopK), s.cfg.PopularCacheTTL); err != nil {
		log.Printf("[rec] error cacheando populares en Redis: %v", err)
	}
	return pop.Len(), nil
}

// ====== FP-Growth ======

type FPGrowthRequest struct {
	UserID  string
	Basket  []string
	TopK    int
	Refresh bool
}

// FPGrowth recomienda con las reglas del modelo en vivo. La canasta de
// contexto son los últimos ítems del usuario (o la canasta explícita del
// body); lo ya visto no se recomienda de nuevo. Sin modelo o sin reglas
// aplicables cae a popularidad: la falta de entrenamiento nunca es un 500.
func (s *RecommendService) FPGrowth(ctx context.Context, req FPGrowthRequest) ([]models.RecItem, error) {
	req.TopK = clampTopK(req.TopK)
	if req.UserID == "" && len(req.Basket) == 0 {
		return nil, &ValidationError{Msg: "se necesita user_id o una canasta"}
	}

	// Con canasta explícita no se cachea: la clave sería el contenido entero.
	cacheable := req.UserID != "" && len(req.Basket) == 0
	var cached []models.RecItem
	if cacheable && !req.Refresh {
		if ok, err := cache.GetJSON(ctx, fpgCacheKey(req.UserID, req.TopK), &cached); err == nil && ok {
			metrics.CacheOps.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.CacheOps.WithLabelValues("miss").Inc()
	}

	snap := s.snap.Current()

	basket := req.Basket
	exclude := map[string]bool{}
	if len(basket) == 0 {
		ctxTimeout, cancel := context.WithTimeout(ctx, storeTimeout)
		history, err := s.interactions.GetAllByUser(ctxTimeout, req.UserID)
		cancel()
		if err != nil {
			return nil, err
		}
		basket, exclude = contextBasket(history, s.cfg.BasketContext)
	}

	var items []models.RecItem
	if snap.Ready() && len(basket) > 0 {
		items = snap.Rules.Recommend(basket, exclude, req.TopK)
	}
	fallback := len(items) == 0

	if len(items) < req.TopK {
		pop := snap.Popular
		if pop == nil {
			var err error
			pop, err = s.rebuildPopular(ctx)
			if err != nil {
				if len(items) == 0 {
					return nil, err
				}
				// hubo reglas: se sirve lo que hay y se deja registro
				log.Printf("[rec] populares no disponibles para el relleno: %v", err)
			}
		}
		items = pop.Fill(items, exclude, req.TopK)
	}
	if len(items) > req.TopK {
		items = items[:req.TopK]
	}
	if items == nil {
		items = []models.RecItem{}
	}
	if fallback {
		metrics.FallbackServed.Inc()
	}

	s.logServed(ctx, req.UserID, "fpgrowth", fallback, map[string]any{
		"top_k":       req.TopK,
		"basket_size": len(basket),
		"explicit":    len(req.Basket) > 0,
	}, items)

	if cacheable {
		if err := cache.SetJSON(ctx, fpgCacheKey(req.UserID, req.TopK), items, s.cfg.PopularCacheTTL); err != nil {
			log.Printf("[rec] error cacheando fp-growth en Redis: %v", err)
		}
	}
	return items, nil
}

// contextBasket arma la canasta de contexto: los últimos n ítems distintos
// (el historial ya viene ordenado por timestamp desc) más el conjunto
// completo de vistos, que se excluye de las recomendaciones.
func contextBasket(history []models.InteractionDoc, n int) ([]string, map[string]bool) {
	seen := make(map[string]bool, len(history))
	var basket []string
	for _, h := range history {
		if h.ItemID == "" || seen[h.ItemID] {
			continue
		}
		seen[h.ItemID] = true
		if len(basket) < n {
			basket = append(basket, h.ItemID)
		}
	}
	return basket, seen
}

// ====== Punto de entrada unificado (GET /recommend/{user_id}) ======

type RecRequest struct {
	UserID   string
	TopK     int
	Strategy string
	Refresh  bool
}

// Recommend elige estrategia y delega; fpgrowth es el default.
func (s *RecommendService) Recommend(ctx context.Context, req RecRequest) ([]models.RecItem, error) {
	switch req.Strategy {
	case "", "fpgrowth":
		return s.FPGrowth(ctx, FPGrowthRequest{UserID: req.UserID, TopK: req.TopK, Refresh: req.Refresh})
	case "popular", "popularity":
		return s.Popular(ctx, PopularRequest{UserID: req.UserID, TopK: req.TopK, Refresh: req.Refresh})
	default:
		return nil, &ValidationError{Msg: fmt.Sprintf("estrategia desconocida: %s", req.Strategy)}
	}
}

// logServed guarda el historial en Mongo sin romper la respuesta si falla.
func (s *RecommendService) logServed(ctx context.Context, userID, algo string, fallback bool, params map[string]any, items []models.RecItem) {
	if s.recLogs == nil || userID == "" {
		return
	}
	rec := &models.RecommendationLog{
		UserID:    userID,
		Algo:      algo,
		Fallback:  fallback,
		Params:    params,
		Items:     items,
		CreatedAt: time.Now(),
	}
	if err := s.recLogs.Insert(ctx, rec); err != nil {
		log.Printf("[rec] error guardando historial en Mongo: %v", err)
	}
}
