package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors bundles the service's Prometheus metrics. Registered once and
// injected where needed.
type Collectors struct {
	TranscribeRequests *prometheus.CounterVec
	AnalysisAttempts   prometheus.Counter
	AnalysisFallbacks  prometheus.Counter
	AnalysisDuration   prometheus.Histogram
}

// NewCollectors registers the collectors on the default registry.
func NewCollectors() *Collectors {
	return &Collectors{
		TranscribeRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mscribe",
			Name:      "transcribe_requests_total",
			Help:      "Transcription requests by terminal status.",
		}, []string{"status"}),
		AnalysisAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "mscribe",
			Name:      "analysis_attempts_total",
			Help:      "Structured-rewrite attempts issued against the analysis model.",
		}),
		AnalysisFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "mscribe",
			Name:      "analysis_fallbacks_total",
			Help:      "Analyses that exhausted retries and fell back to a single turn.",
		}),
		AnalysisDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mscribe",
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of full analysis runs.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
	}
}
