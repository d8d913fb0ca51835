package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "vdom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for diff and patch durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "vdom",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records reconciliation metrics. A nil *Collector is valid and
// records nothing, so callers never need to check whether metrics are on.
type Collector struct {
	diffs            prometheus.Counter
	patches          *prometheus.CounterVec
	diffDuration     prometheus.Histogram
	patchDuration    prometheus.Histogram
	patchErrors      *prometheus.CounterVec
	eventsDispatched *prometheus.CounterVec
	registryEntries  prometheus.Gauge
	rendersCoalesced prometheus.Counter
}

// New registers the reconciliation metrics and returns their collector.
//
// Metrics registered:
//   - vdom_diffs_total: Counter of Diff calls
//   - vdom_patches_total: Counter of emitted patches by op
//   - vdom_diff_duration_seconds: Histogram of Diff duration
//   - vdom_patch_duration_seconds: Histogram of Apply duration
//   - vdom_patch_errors_total: Counter of failed Apply calls by error code
//   - vdom_events_dispatched_total: Counter of handler calls by event and mode
//   - vdom_registry_entries: Gauge of nodes with event bindings
//   - vdom_renders_coalesced_total: Counter of render requests merged into a pending one
//
// Registering twice with the same registry panics, as promauto does.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		diffs: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diffs_total",
			Help:        "Total number of virtual tree diffs",
			ConstLabels: config.ConstLabels,
		}),

		patches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_total",
			Help:        "Total number of patches emitted by op",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		diffDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diff_duration_seconds",
			Help:        "Diff duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		patchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patch_duration_seconds",
			Help:        "Patch application duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		patchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patch_errors_total",
			Help:        "Total number of patch applications rejected by the tree",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		eventsDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_dispatched_total",
			Help:        "Total number of event handler invocations",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "mode"}),

		registryEntries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "registry_entries",
			Help:        "Number of nodes with event bindings",
			ConstLabels: config.ConstLabels,
		}),

		rendersCoalesced: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_coalesced_total",
			Help:        "Total number of render requests merged into a pending render",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// ObserveDiff records one Diff call and the patches it produced.
func (c *Collector) ObserveDiff(d time.Duration, patches []vdom.Patch) {
	if c == nil {
		return
	}
	c.diffs.Inc()
	c.diffDuration.Observe(d.Seconds())
	for _, p := range patches {
		c.patches.WithLabelValues(p.Op.String()).Inc()
	}
}

// ObservePatch records one Apply call. A non-nil err is counted by its
// error code, or "unknown" if it has none.
func (c *Collector) ObservePatch(d time.Duration, err error) {
	if c == nil {
		return
	}
	c.patchDuration.Observe(d.Seconds())
	if err != nil {
		code := errors.CodeOf(err)
		if code == "" {
			code = "unknown"
		}
		c.patchErrors.WithLabelValues(code).Inc()
	}
}

// ObserveDispatch records one handler invocation. Its signature matches
// events.WithDispatchObserver.
func (c *Collector) ObserveDispatch(name vdom.EventName, delegated bool) {
	if c == nil {
		return
	}
	mode := "direct"
	if delegated {
		mode = "delegated"
	}
	c.eventsDispatched.WithLabelValues(name.Type(), mode).Inc()
}

// SetRegistryEntries sets the number of nodes with event bindings.
func (c *Collector) SetRegistryEntries(n int) {
	if c == nil {
		return
	}
	c.registryEntries.Set(float64(n))
}

// RecordCoalesced records a render request that was merged into one already
// pending.
func (c *Collector) RecordCoalesced() {
	if c == nil {
		return
	}
	c.rendersCoalesced.Inc()
}
