package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "confidence_pool"

// ScoringMetrics exports scoring pass outcomes to Prometheus. It satisfies
// usecase.ScoringRecorder.
type ScoringMetrics struct {
	registry     *prometheus.Registry
	scoreWeek    *prometheus.HistogramVec
	strikes      prometheus.Counter
	eliminations prometheus.Counter
	warnings     *prometheus.CounterVec
	userFailures prometheus.Counter
}

// NewScoringMetrics registers the scoring collectors plus the Go and process
// collectors on a private registry.
func NewScoringMetrics() *ScoringMetrics {
	registry := prometheus.NewRegistry()
	m := &ScoringMetrics{
		registry: registry,
		scoreWeek: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "scoring",
			Name:      "week_duration_seconds",
			Help:      "Duration of week scoring passes by outcome.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"outcome"}),
		strikes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "survivor",
			Name:      "strikes_total",
			Help:      "Survivor strikes applied.",
		}),
		eliminations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "survivor",
			Name:      "eliminations_total",
			Help:      "Users eliminated from the survivor game.",
		}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "scoring",
			Name:      "warnings_total",
			Help:      "Scoring warnings by code.",
		}, []string{"code"}),
		userFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "scoring",
			Name:      "user_failures_total",
			Help:      "Per-user scoring failures isolated from the rest of the pass.",
		}),
	}

	registry.MustRegister(
		m.scoreWeek,
		m.strikes,
		m.eliminations,
		m.warnings,
		m.userFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *ScoringMetrics) ObserveScoreWeek(outcome string, d time.Duration) {
	m.scoreWeek.WithLabelValues(outcome).Observe(d.Seconds())
}

func (m *ScoringMetrics) AddSurvivorStrikes(n int) {
	if n > 0 {
		m.strikes.Add(float64(n))
	}
}

func (m *ScoringMetrics) AddEliminations(n int) {
	if n > 0 {
		m.eliminations.Add(float64(n))
	}
}

func (m *ScoringMetrics) AddWarnings(code string, n int) {
	if n > 0 {
		m.warnings.WithLabelValues(code).Add(float64(n))
	}
}

func (m *ScoringMetrics) AddUserFailures(n int) {
	if n > 0 {
		m.userFailures.Add(float64(n))
	}
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *ScoringMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *ScoringMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
