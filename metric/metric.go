// Package metric exposes counters of the tutorial pipelines. All methods
// of a nil *Metric do nothing, so components can be metered optionally.
package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tutorial"

// Link outcomes.
const (
	// LinkSucceeded counts new pads linked to converters.
	LinkSucceeded = "succeeded"
	// LinkFailed counts link attempts rejected by the framework.
	LinkFailed = "failed"
	// LinkSkipped counts pads ignored because converters were linked.
	LinkSkipped = "skipped"
	// LinkUnsupported counts pads of unknown media type.
	LinkUnsupported = "unsupported"
)

// Metric holds counters of a single pipeline run.
type Metric struct {
	messages *prometheus.CounterVec
	links    *prometheus.CounterVec
	padAdded prometheus.Counter
	runs     prometheus.Histogram
}

// New registers counters within provided registerer. If registerer is
// nil, the default one is used.
func New(reg prometheus.Registerer) *Metric {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metric{
		messages: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bus_messages_total",
				Help:      "Total number of messages received from the pipeline bus",
			},
			[]string{"type"},
		),
		links: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pad_links_total",
				Help:      "Total number of dynamic pad link attempts",
			},
			[]string{"media", "outcome"},
		),
		padAdded: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pads_added_total",
				Help:      "Total number of pad-added notifications",
			},
		),
		runs: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of the pipeline run from playing to teardown",
				Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60, 300},
			},
		),
	}
}

// Message counts received bus message of provided type.
func (m *Metric) Message(messageType string) {
	if m == nil {
		return
	}
	m.messages.WithLabelValues(messageType).Inc()
}

// PadAdded counts pad-added notification.
func (m *Metric) PadAdded() {
	if m == nil {
		return
	}
	m.padAdded.Inc()
}

// Link counts link attempt of provided media type with the outcome.
func (m *Metric) Link(mediaType, outcome string) {
	if m == nil {
		return
	}
	m.links.WithLabelValues(mediaType, outcome).Inc()
}

// Run returns a function that observes the run duration when called.
func (m *Metric) Run() func() {
	if m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.runs.Observe(time.Since(start).Seconds())
	}
}

// Handler serves metrics gathered by provided gatherer. If gatherer is
// nil, the default one is used.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
