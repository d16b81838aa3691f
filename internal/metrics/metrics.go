package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors del servicio sobre un registry propio.
type Metrics struct {
	registry             *prometheus.Registry
	KeywordAnalyses      prometheus.Counter
	AIRequests           *prometheus.CounterVec
	AILatency            *prometheus.HistogramVec
	AssessmentsFinalized prometheus.Counter
	HistorySaved         prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		KeywordAnalyses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "career_coach",
			Name:      "keyword_analyses_total",
			Help:      "Keyword match analyses computed.",
		}),
		AIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "career_coach",
			Name:      "ai_requests_total",
			Help:      "AI service requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		AILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "career_coach",
			Name:      "ai_request_duration_seconds",
			Help:      "AI service latency by operation.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
		}, []string{"operation"}),
		AssessmentsFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "career_coach",
			Name:      "assessments_finalized_total",
			Help:      "Personality assessments finalized.",
		}),
		HistorySaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "career_coach",
			Name:      "history_records_saved_total",
			Help:      "Analyses saved to history.",
		}),
	}
	reg.MustRegister(
		m.KeywordAnalyses,
		m.AIRequests,
		m.AILatency,
		m.AssessmentsFinalized,
		m.HistorySaved,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveAI registra el resultado y la latencia de una llamada al servicio de IA.
// Acepta receptor nil para que los servicios funcionen sin métricas.
func (m *Metrics) ObserveAI(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.AIRequests.WithLabelValues(operation, outcome).Inc()
	m.AILatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncKeywordAnalyses() {
	if m != nil {
		m.KeywordAnalyses.Inc()
	}
}

func (m *Metrics) IncAssessmentsFinalized() {
	if m != nil {
		m.AssessmentsFinalized.Inc()
	}
}

func (m *Metrics) IncHistorySaved() {
	if m != nil {
		m.HistorySaved.Inc()
	}
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
