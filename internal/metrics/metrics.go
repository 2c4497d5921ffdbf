package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for analysis runs.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeFailed  = "fetch_failed"
	OutcomeInvalid = "invalid_input"
)

// Recorder tracks analysis runs in Prometheus.
type Recorder struct {
	registry  *prometheus.Registry
	analyses  *prometheus.CounterVec
	rowsIn    *prometheus.GaugeVec
	rowsOut   *prometheus.GaugeVec
	lastClose *prometheus.GaugeVec
	duration  *prometheus.HistogramVec
}

// New creates a Recorder on its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketmath_analyses_total",
				Help: "Total number of analysis runs by outcome",
			},
			[]string{"symbol", "outcome"},
		),
		rowsIn: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "marketmath_input_rows",
				Help: "Bars received for the last analysis of a symbol",
			},
			[]string{"symbol"},
		),
		rowsOut: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "marketmath_output_rows",
				Help: "Fully populated rows produced by the last analysis of a symbol",
			},
			[]string{"symbol"},
		),
		lastClose: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "marketmath_last_close",
				Help: "Last close price seen for a symbol",
			},
			[]string{"symbol"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketmath_analysis_duration_seconds",
				Help:    "Duration of fetch plus pipeline in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"symbol"},
		),
	}
	r.registry.MustRegister(r.analyses, r.rowsIn, r.rowsOut, r.lastClose, r.duration)
	return r
}

// RecordAnalysis records one finished run.
func (r *Recorder) RecordAnalysis(symbol, outcome string, rowsIn, rowsOut int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.analyses.WithLabelValues(symbol, outcome).Inc()
	r.rowsIn.WithLabelValues(symbol).Set(float64(rowsIn))
	r.rowsOut.WithLabelValues(symbol).Set(float64(rowsOut))
	r.duration.WithLabelValues(symbol).Observe(elapsed.Seconds())
}

// RecordLastClose records the latest close price of a symbol.
func (r *Recorder) RecordLastClose(symbol string, price float64) {
	if r == nil {
		return
	}
	r.lastClose.WithLabelValues(symbol).Set(price)
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
