// Package metrics exposes Prometheus metrics for the signal scanner.
package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the scanner.
type Metrics struct {
	ScansTotal   prometheus.Counter
	ScanErrors   prometheus.Counter
	SignalsTotal *prometheus.CounterVec // labels: action
	EvalDur      prometheus.Histogram
	BarsPerEval  prometheus.Histogram
}

// NewMetrics registers and returns all scanner metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_evaluations_total",
			Help: "Total symbol evaluations run",
		}),
		ScanErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_evaluation_errors_total",
			Help: "Evaluations rejected on input validation",
		}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scanner_signals_total",
			Help: "Signals emitted by action",
		}, []string{"action"}),
		EvalDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scanner_evaluation_duration_seconds",
			Help:    "Single-symbol pipeline evaluation latency",
			Buckets: prometheus.DefBuckets,
		}),
		BarsPerEval: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scanner_bars_per_evaluation",
			Help:    "Input series length per evaluation",
			Buckets: prometheus.ExponentialBuckets(50, 2, 8),
		}),
	}

	prometheus.MustRegister(
		m.ScansTotal,
		m.ScanErrors,
		m.SignalsTotal,
		m.EvalDur,
		m.BarsPerEval,
	)
	return m
}

// ObserveEval records one completed evaluation.
func (m *Metrics) ObserveEval(action string, bars int, dur time.Duration) {
	m.ScansTotal.Inc()
	m.SignalsTotal.WithLabelValues(action).Inc()
	m.EvalDur.Observe(dur.Seconds())
	m.BarsPerEval.Observe(float64(bars))
}

// Serve starts the /metrics HTTP endpoint on addr. Blocks.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Printf("[metrics] serving on %s/metrics", addr)
	return http.ListenAndServe(addr, mux)
}
