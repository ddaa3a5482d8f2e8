package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dinhln03/fsds-bwai-recs/internal/cluster"
	"github.com/dinhln03/fsds-bwai-recs/internal/config"
	"github.com/dinhln03/fsds-bwai-recs/internal/metrics"
	"github.com/dinhln03/fsds-bwai-recs/internal/models"
	"github.com/dinhln03/fsds-bwai-recs/internal/recommender"
)

const (
	// debajo de esto las canastas reales no alcanzan y se usa el respaldo por tags
	minBaskets = 10
	// tope de ítems por transacción sintética de tags
	maxTagTxSize = 10
	// cuántos ítems del catálogo se miran para el respaldo
	tagItemsLimit = 500
)

type ItemStore interface {
	GetWithTags(ctx context.Context, limit int64) ([]models.ItemDoc, error)
}

type ModelStore interface {
	Save(ctx context.Context, doc *models.ModelDoc) error
	Load(ctx context.Context) (*models.ModelDoc, error)
	LoadMetadata(ctx context.Context) (*models.ModelMetadata, error)
}

// TrainService entrena fp-growth, persiste el modelo en Mongo y publica el
// snapshot nuevo. El serving sigue con el snapshot viejo hasta el swap.
type TrainService struct {
	interactions InteractionStore
	items        ItemStore
	modelRepo    ModelStore
	snap         *recommender.SnapshotRef
	cfg          *config.Config
}

func NewTrainService(
	interactions InteractionStore,
	items ItemStore,
	modelRepo ModelStore,
	snap *recommender.SnapshotRef,
	cfg *config.Config,
) *TrainService {
	return &TrainService{
		interactions: interactions,
		items:        items,
		modelRepo:    modelRepo,
		snap:         snap,
		cfg:          cfg,
	}
}

// TrainOptions: los ceros toman el default de configuración.
type TrainOptions struct {
	MinSupport    float64
	MinConfidence float64
	Force         bool
	Trigger       string // http | ws | ticker | remote | startup
}

// Progress recibe los hitos del entrenamiento (los streamea el canal WS);
// puede ser nil.
type Progress func(phase string, detail map[string]any)

type TrainOutcome struct {
	Meta    *models.ModelMetadata
	Skipped bool
}

// TrainFPGrowth corre el pipeline completo: carga interacciones, arma
// canastas, mina itemsets, deriva reglas, persiste y hace el swap. Si el
// modelo persistido es más nuevo que el umbral de frescura no reentrena,
// salvo force.
func (s *TrainService) TrainFPGrowth(ctx context.Context, opts TrainOptions, progress Progress) (*TrainOutcome, error) {
	if opts.MinSupport == 0 {
		opts.MinSupport = s.cfg.MinSupport
	}
	if opts.MinConfidence == 0 {
		opts.MinConfidence = s.cfg.MinConfidence
	}
	if opts.Trigger == "" {
		opts.Trigger = "http"
	}
	if opts.MinSupport <= 0 || opts.MinSupport > 1 {
		return nil, &ValidationError{Msg: fmt.Sprintf("min_support fuera de rango (0, 1]: %v", opts.MinSupport)}
	}
	if opts.MinConfidence < 0 || opts.MinConfidence > 1 {
		return nil, &ValidationError{Msg: fmt.Sprintf("min_confidence fuera de rango [0, 1]: %v", opts.MinConfidence)}
	}

	emit := func(phase string, detail map[string]any) {
		if progress != nil {
			progress(phase, detail)
		}
	}

	if !opts.Force {
		if meta, err := s.modelRepo.LoadMetadata(ctx); err == nil && meta != nil {
			age := time.Since(meta.TrainedAt)
			if age < time.Duration(s.cfg.ModelRefreshSecs)*time.Second {
				emit("skip", map[string]any{"age_seconds": int(age.Seconds())})
				metrics.TrainingRuns.WithLabelValues(opts.Trigger, "skipped").Inc()
				return &TrainOutcome{Meta: meta, Skipped: true}, nil
			}
		}
	}

	started := time.Now()
	emit("load", nil)
	interactions, skippedRecords, err := s.interactions.FetchAll(ctx)
	if err != nil {
		metrics.TrainingRuns.WithLabelValues(opts.Trigger, "error").Inc()
		return nil, err
	}

	txs, source := s.transactions(ctx, interactions)
	if len(txs) == 0 {
		metrics.TrainingRuns.WithLabelValues(opts.Trigger, "error").Inc()
		return nil, ErrNoTrainingData
	}
	emit("transactions", map[string]any{"count": len(txs), "source": source})

	// min_support llega como fracción; el minado trabaja con conteo absoluto
	minSupportCount := int(math.Ceil(opts.MinSupport * float64(len(txs))))
	if minSupportCount < 1 {
		minSupportCount = 1
	}

	// el minado y el ranking de popularidad van en paralelo
	var (
		itemsets recommender.FrequentItemsets
		rules    []recommender.Rule
		popular  *recommender.PopularityIndex
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		itemsets, err = recommender.MineFrequentItemsets(txs, minSupportCount)
		if err != nil {
			return err
		}
		emit("mine", map[string]any{"itemsets": len(itemsets)})
		rules = recommender.DeriveRules(itemsets, opts.MinConfidence)
		emit("rules", map[string]any{"rules": len(rules)})
		return nil
	})
	g.Go(func() error {
		popular = recommender.BuildPopularityIndex(interactions)
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.TrainingRuns.WithLabelValues(opts.Trigger, "error").Inc()
		return nil, err
	}

	meta := &models.ModelMetadata{
		TrainedAt:       time.Now(),
		NumTransactions: len(txs),
		MinSupport:      opts.MinSupport,
		MinSupportCount: minSupportCount,
		MinConfidence:   opts.MinConfidence,
		NumItemsets:     len(itemsets),
		NumRules:        len(rules),
		SkippedRecords:  skippedRecords,
		Source:          source,
		NodeID:          s.cfg.NodeID,
	}

	emit("persist", nil)
	if err := s.modelRepo.Save(ctx, &models.ModelDoc{Metadata: *meta, Rules: recommender.RulesToDocs(rules)}); err != nil {
		metrics.TrainingRuns.WithLabelValues(opts.Trigger, "error").Inc()
		return nil, err
	}

	s.snap.Swap(&recommender.Snapshot{
		Rules:   recommender.BuildRuleIndex(rules),
		Popular: popular,
		Meta:    meta,
	})
	emit("swap", map[string]any{"rules": len(rules)})

	metrics.TrainingRuns.WithLabelValues(opts.Trigger, "success").Inc()
	metrics.TrainingDuration.Observe(time.Since(started).Seconds())
	metrics.SetModelInfo(meta)
	log.Printf("[train] modelo fp-growth listo: %d transacciones (%s), %d itemsets, %d reglas en %s",
		len(txs), source, len(itemsets), len(rules), time.Since(started).Round(time.Millisecond))

	return &TrainOutcome{Meta: meta}, nil
}

// transactions agrupa las interacciones en canastas por usuario (mínimo dos
// ítems distintos). Si quedan muy pocas, arma transacciones sintéticas con
// los tags del catálogo para que el modelo no salga vacío en frío.
func (s *TrainService) transactions(ctx context.Context, interactions []models.InteractionDoc) ([]recommender.Transaction, string) {
	byUser := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, in := range interactions {
		if seen[in.UserID] == nil {
			seen[in.UserID] = make(map[string]bool)
		}
		if seen[in.UserID][in.ItemID] {
			continue
		}
		seen[in.UserID][in.ItemID] = true
		byUser[in.UserID] = append(byUser[in.UserID], in.ItemID)
	}

	users := make([]string, 0, len(byUser))
	for u := range byUser {
		users = append(users, u)
	}
	sort.Strings(users) // orden estable entre corridas

	var txs []recommender.Transaction
	for _, u := range users {
		if len(byUser[u]) >= 2 {
			txs = append(txs, recommender.Transaction(byUser[u]))
		}
	}
	if len(txs) < minBaskets {
		if tagTxs := s.tagTransactions(ctx); len(tagTxs) > 0 {
			return tagTxs, "tags"
		}
	}
	return txs, "baskets"
}

// tagTransactions arma canastas sintéticas: cada ítem junto a los que
// comparten algún tag, recortado a maxTagTxSize.
func (s *TrainService) tagTransactions(ctx context.Context) []recommender.Transaction {
	if s.items == nil {
		return nil
	}
	docs, err := s.items.GetWithTags(ctx, tagItemsLimit)
	if err != nil {
		log.Printf("[train] no se pudo armar el respaldo por tags: %v", err)
		return nil
	}

	byTag := make(map[string][]string)
	for _, it := range docs {
		if it.ItemID == "" {
			continue
		}
		for _, tag := range it.Tags {
			if tag == "" {
				continue
			}
			byTag[tag] = append(byTag[tag], it.ItemID)
		}
	}

	var txs []recommender.Transaction
	for _, it := range docs {
		if it.ItemID == "" {
			continue
		}
		related := make(map[string]bool)
		for _, tag := range it.Tags {
			for _, other := range byTag[tag] {
				if other != it.ItemID {
					related[other] = true
				}
			}
		}
		if len(related) < 2 {
			continue
		}
		others := make([]string, 0, len(related))
		for o := range related {
			others = append(others, o)
		}
		sort.Strings(others) // orden estable

		tx := make([]string, 0, maxTagTxSize)
		tx = append(tx, it.ItemID)
		for _, o := range others {
			if len(tx) >= maxTagTxSize {
				break
			}
			tx = append(tx, o)
		}
		txs = append(txs, tx)
	}
	return txs
}

// Compute corre un entrenamiento: si hay trainers configurados delega en el
// primero que responda y después recarga el modelo persistido; si no,
// entrena en este proceso.
func (s *TrainService) Compute(ctx context.Context, opts TrainOptions, progress Progress) (*TrainOutcome, error) {
	if len(s.cfg.TrainerAddrs) == 0 {
		return s.TrainFPGrowth(ctx, opts, progress)
	}

	task := &cluster.TrainTask{
		MinSupport:    opts.MinSupport,
		MinConfidence: opts.MinConfidence,
		Force:         opts.Force,
		RequestedBy:   s.cfg.NodeID,
	}
	var lastErr error
	for _, addr := range s.cfg.TrainerAddrs {
		if progress != nil {
			progress("delegate", map[string]any{"trainer": addr})
		}
		res, err := cluster.SendTrainTask(ctx, addr, task)
		if err != nil {
			log.Printf("[train] trainer %s no respondió: %v", addr, err)
			lastErr = err
			continue
		}
		if res.Status == "error" {
			lastErr = fmt.Errorf("trainer %s: %s", addr, res.Error)
			continue
		}
		if _, err := s.LoadPersisted(ctx); err != nil {
			log.Printf("[train] modelo remoto listo pero no se pudo recargar: %v", err)
		}
		metrics.TrainingRuns.WithLabelValues("remote", res.Status).Inc()
		return &TrainOutcome{Meta: res.Metadata, Skipped: res.Status == "skipped"}, nil
	}
	return nil, fmt.Errorf("ningún trainer disponible: %w", lastErr)
}

// LoadPersisted levanta el último modelo guardado en Mongo y lo deja en
// vivo. Devuelve false si todavía no se entrenó ninguno.
func (s *TrainService) LoadPersisted(ctx context.Context) (bool, error) {
	doc, err := s.modelRepo.Load(ctx)
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, nil
	}
	meta := doc.Metadata
	rules := recommender.BuildRuleIndex(recommender.RulesFromDocs(doc.Rules))
	s.snap.Update(func(cur *recommender.Snapshot) *recommender.Snapshot {
		return &recommender.Snapshot{
			Rules:   rules,
			Popular: cur.Popular, // el ranking en memoria sigue valiendo
			Meta:    &meta,
		}
	})
	metrics.SetModelInfo(&meta)
	log.Printf("[train] modelo cargado desde Mongo: %d reglas (entrenado %s)",
		len(doc.Rules), meta.TrainedAt.Format(time.RFC3339))
	return true, nil
}

// ModelInfo: la metadata del modelo en vivo, o la persistida si este proceso
// todavía no cargó ninguno.
func (s *TrainService) ModelInfo(ctx context.Context) (*models.ModelMetadata, error) {
	if cur := s.snap.Current(); cur.Meta != nil {
		return cur.Meta, nil
	}
	return s.modelRepo.LoadMetadata(ctx)
}

// StartRefresher revisa cada tanto si otro nodo dejó un modelo más nuevo en
// Mongo y lo recarga. Corre hasta que el contexto muera.
func (s *TrainService) StartRefresher(ctx context.Context) {
	interval := time.Duration(s.cfg.ModelRefreshSecs) * time.Second
	if interval <= 0 {
		return
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			meta, err := s.modelRepo.LoadMetadata(ctx)
			if err != nil || meta == nil {
				continue
			}
			cur := s.snap.Current()
			if cur.Meta != nil && !meta.TrainedAt.After(cur.Meta.TrainedAt) {
				continue
			}
			if _, err := s.LoadPersisted(ctx); err != nil {
				log.Printf("[train] error recargando modelo: %v", err)
			}
		}
	}()
}

// StartTicker reentrena cada interval segundos (lo usa el trainer como
// daemon; 0 = deshabilitado).
func (s *TrainService) StartTicker(ctx context.Context, intervalSecs int) {
	if intervalSecs <= 0 {
		return
	}
	go func() {
		t := time.NewTicker(time.Duration(intervalSecs) * time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			if _, err := s.TrainFPGrowth(ctx, TrainOptions{Trigger: "ticker"}, nil); err != nil {
				log.Printf("[train] entrenamiento periódico falló: %v", err)
			}
		}
	}()
}
