package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dinhln03/fsds-bwai-recs/internal/models"
)

const namespace = "recsys"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Requests HTTP por ruta, método y status.",
	}, []string{"path", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latencia por ruta.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path"})

	TrainingRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "training_runs_total",
		Help:      "Entrenamientos por disparador (http, ws, ticker, remote) y resultado.",
	}, []string{"trigger", "status"})

	TrainingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "training_duration_seconds",
		Help:      "Duración del entrenamiento completo (carga, minado, persistencia).",
		Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300},
	})

	CacheOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_ops_total",
		Help:      "Hits y misses del cache de recomendaciones.",
	}, []string{"result"})

	FallbackServed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fpgrowth_fallback_total",
		Help:      "Respuestas fp-growth que cayeron a popularidad por modelo no listo o sin reglas aplicables.",
	})

	modelRules = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "model_rules",
		Help:      "Reglas de asociación del modelo en vivo.",
	})

	modelItemsets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "model_frequent_itemsets",
		Help:      "Itemsets frecuentes del modelo en vivo.",
	})

	modelTransactions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "model_transactions",
		Help:      "Transacciones usadas en el último entrenamiento.",
	})

	modelTrainedAt = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "model_trained_at_seconds",
		Help:      "Epoch del último entrenamiento cargado.",
	})
)

// ObserveRequest registra un request HTTP terminado.
func ObserveRequest(path, method string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}

// SetModelInfo refleja en los gauges la metadata del modelo que quedó en vivo.
func SetModelInfo(meta *models.ModelMetadata) {
	if meta == nil {
		return
	}
	modelRules.Set(float64(meta.NumRules))
	modelItemsets.Set(float64(meta.NumItemsets))
	modelTransactions.Set(float64(meta.NumTransactions))
	modelTrainedAt.Set(float64(meta.TrainedAt.Unix()))
}
