// Package metrics exposes Prometheus instrumentation for the router.
//
// Collection is opt-in: call Enable once at startup, then expose the
// registry with promhttp. The Record functions are nil-guarded so library
// code can call them unconditionally; with metrics disabled they cost a
// single nil check.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the router metrics.
type Config struct {
	// Namespace is the metrics namespace (default: "m4d").
	Namespace string

	// Subsystem is the metrics subsystem (default: "router").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for resolve duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Option configures the router metrics.
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

// WithBuckets sets the resolve-duration histogram buckets.
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
		Namespace: "m4d",
		Subsystem: "router",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// routerMetrics holds the Prometheus collectors.
type routerMetrics struct {
	navigationsTotal *prometheus.CounterVec
	resolveDuration  *prometheus.HistogramVec
	routeErrors      *prometheus.CounterVec
}

var (
	global   *routerMetrics
	globalMu sync.Mutex
)

func initMetrics(config Config) *routerMetrics {
	factory := promauto.With(config.Registry)

	return &routerMetrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of path resolutions by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"path", "status"}),

		resolveDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolve_duration_seconds",
			Help:        "Path resolution duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"path"}),

		routeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "route_errors_total",
			Help:        "Total number of paths that matched no route",
			ConstLabels: config.ConstLabels,
		}, []string{"path"}),
	}
}

// Enable initializes the router metrics. The first call wins; later calls
// are no-ops so libraries and applications cannot fight over configuration.
func Enable(opts ...Option) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = initMetrics(config)
	}
}

// Enabled reports whether Enable has been called.
func Enabled() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return global != nil
}

// RecordNavigation records one resolution outcome. Status is "match" or
// "no_match"; path is the matched pattern source, or the raw path when
// nothing matched.
func RecordNavigation(path, status string) {
	if m := load(); m != nil {
		m.navigationsTotal.WithLabelValues(path, status).Inc()
	}
}

// ObserveResolveDuration records the duration of one resolution.
func ObserveResolveDuration(path string, seconds float64) {
	if m := load(); m != nil {
		m.resolveDuration.WithLabelValues(path).Observe(seconds)
	}
}

// RecordRouteError records a path that matched no registered route.
func RecordRouteError(path string) {
	if m := load(); m != nil {
		m.routeErrors.WithLabelValues(path).Inc()
	}
}

func load() *routerMetrics {
	globalMu.Lock()
	defer globalMu.Unlock()
	return global
}
