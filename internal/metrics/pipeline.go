package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation pipeline Prometheus metrics.
var (
	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "designrec",
			Name:      "recommendations_total",
			Help:      "Total number of recommendation requests",
		},
		[]string{"status", "degraded"},
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "designrec",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"stage"}, // "extract" / "retrieve" / "resolve" / "compose"
	)

	CorpusReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "designrec",
			Name:      "corpus_reloads_total",
			Help:      "Total corpus reload attempts",
		},
		[]string{"status"}, // "ok" / "error"
	)

	CorpusDocuments = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "designrec",
			Name:      "corpus_documents",
			Help:      "Documents indexed per domain in the serving generation",
		},
		[]string{"domain"},
	)

	BundleCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "designrec",
			Name:      "bundle_cache_total",
			Help:      "Bundle cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers Prometheus pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecommendationsTotal)
	prometheus.MustRegister(StageDuration)
	prometheus.MustRegister(CorpusReloads)
	prometheus.MustRegister(CorpusDocuments)
	prometheus.MustRegister(BundleCacheTotal)
	pipelineMetricsRegistered = true
}
