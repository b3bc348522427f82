package middleware

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	rerrors "github.com/vango-dev/rating/internal/errors"
	"github.com/vango-dev/rating/pkg/dom"
	"github.com/vango-dev/rating/pkg/floating"
	"github.com/vango-dev/rating/pkg/tooltip"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "rating").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for placement duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "rating",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus metrics for tooltips and live sessions. It
// implements tooltip.Observer.
type Metrics struct {
	transitions       *prometheus.CounterVec
	placements        *prometheus.CounterVec
	placementFailures *prometheus.CounterVec
	stalePlacements   prometheus.Counter
	nullAnchors       prometheus.Counter
	placementDuration prometheus.Histogram

	activeSessions prometheus.Gauge
	messages       *prometheus.CounterVec
	patchesSent    prometheus.Counter
	wsErrors       *prometheus.CounterVec
}

var _ tooltip.Observer = (*Metrics)(nil)

// globalMetrics is the singleton created on the first call to Prometheus.
var (
	globalMetrics   *Metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *Metrics {
	factory := promauto.With(config.Registry)

	counter := func(subsystem, name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}
	}

	return &Metrics{
		transitions: factory.NewCounterVec(
			counter("tooltip", "transitions_total", "Tooltip visibility transitions by target state"),
			[]string{"to"}),

		placements: factory.NewCounterVec(
			counter("tooltip", "placements_total", "Placements applied by resolved placement"),
			[]string{"placement"}),

		placementFailures: factory.NewCounterVec(
			counter("tooltip", "placement_failures_total", "Placements that failed by error type"),
			[]string{"error_type"}),

		stalePlacements: factory.NewCounter(
			counter("tooltip", "stale_placements_total", "Placements discarded because a newer show or hide superseded them")),

		nullAnchors: factory.NewCounter(
			counter("tooltip", "null_anchor_total", "Show triggers that reached a tooltip without an anchor")),

		placementDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   "tooltip",
			Name:        "placement_duration_seconds",
			Help:        "Time from placement request to result",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   "live",
			Name:        "active_sessions",
			Help:        "Number of open live sessions",
			ConstLabels: config.ConstLabels,
		}),

		messages: factory.NewCounterVec(
			counter("live", "messages_total", "Live messages received by type and status"),
			[]string{"type", "status"}),

		patchesSent: factory.NewCounter(
			counter("live", "patches_sent_total", "Style patches sent to clients")),

		wsErrors: factory.NewCounterVec(
			counter("live", "websocket_errors_total", "WebSocket errors by type"),
			[]string{"type"}),
	}
}

// Prometheus returns the metrics, creating and registering them on first
// use. Options only apply to the first call.
//
// Metrics collected:
//   - rating_tooltip_transitions_total{to}
//   - rating_tooltip_placements_total{placement}
//   - rating_tooltip_placement_failures_total{error_type}
//   - rating_tooltip_stale_placements_total
//   - rating_tooltip_null_anchor_total
//   - rating_tooltip_placement_duration_seconds (with TimePositioner)
//   - rating_live_active_sessions
//   - rating_live_messages_total{type,status}
//   - rating_live_patches_sent_total
//   - rating_live_websocket_errors_total{type}
//
// Pass the result to tooltip.WithObserver and expose the registry with
// promhttp.
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	return globalMetrics
}

// Transition implements tooltip.Observer.
func (m *Metrics) Transition(_, to tooltip.Visibility) {
	m.transitions.WithLabelValues(to.String()).Inc()
}

// PlacementApplied implements tooltip.Observer.
func (m *Metrics) PlacementApplied(res floating.Result) {
	m.placements.WithLabelValues(string(res.Placement)).Inc()
}

// PlacementDiscarded implements tooltip.Observer.
func (m *Metrics) PlacementDiscarded() {
	m.stalePlacements.Inc()
}

// PlacementFailed implements tooltip.Observer.
func (m *Metrics) PlacementFailed(err error) {
	m.placementFailures.WithLabelValues(categorizeError(err)).Inc()
}

// NullAnchor implements tooltip.Observer.
func (m *Metrics) NullAnchor() {
	m.nullAnchors.Inc()
}

// TimePositioner records how long next takes to deliver each placement.
func (m *Metrics) TimePositioner(next tooltip.Positioner) tooltip.Positioner {
	return tooltip.PositionerFunc(func(ctx context.Context, req tooltip.Request, done func(floating.Result, error)) {
		start := time.Now()
		next.Position(ctx, req, func(res floating.Result, err error) {
			m.placementDuration.Observe(time.Since(start).Seconds())
			done(res, err)
		})
	})
}

// categorizeError returns a low-cardinality label for err.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, dom.ErrDetached):
		return "detached"
	case errors.Is(err, floating.ErrNoReference):
		return "no_reference"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	if code := rerrors.CodeOf(err); code != "" {
		return code
	}
	return "internal"
}

// The Record methods do nothing on a nil *Metrics so callers can run with
// metrics disabled.

// RecordSessionCreate records a new live session.
func (m *Metrics) RecordSessionCreate() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

// RecordSessionDestroy records a closed live session.
func (m *Metrics) RecordSessionDestroy() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

// RecordMessage records a received live message.
func (m *Metrics) RecordMessage(typ string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.messages.WithLabelValues(typ, status).Inc()
}

// RecordPatches records the number of patches sent.
func (m *Metrics) RecordPatches(count int) {
	if m == nil {
		return
	}
	m.patchesSent.Add(float64(count))
}

// RecordWebSocketError records a WebSocket error.
func (m *Metrics) RecordWebSocketError(errorType string) {
	if m == nil {
		return
	}
	m.wsErrors.WithLabelValues(errorType).Inc()
}
