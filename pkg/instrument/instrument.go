package instrument

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/filament-ui/filament/pkg/reactive"
)

// Default tracer name.
const defaultTracerName = "filament"

// Config configures runtime instrumentation.
type Config struct {
	// Namespace is the metrics namespace (default: "filament").
	Namespace string

	// Subsystem is the metrics subsystem (default: "reactive").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush duration in seconds.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// TracerName is the name of the tracer (default: "filament").
	TracerName string

	// TraceFlushes creates a span per notification flush. Off by default:
	// flushes run on every signal write outside a batch, which is far too
	// hot for most collectors.
	TraceFlushes bool
}

// Option configures runtime instrumentation.
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

// WithBuckets sets the flush duration histogram buckets.
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

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithTraceFlushes enables one span per flush.
func WithTraceFlushes(enabled bool) Option {
	return func(c *Config) {
		c.TraceFlushes = enabled
	}
}

func defaultConfig() Config {
	return Config{
		Namespace:  "filament",
		Subsystem:  "reactive",
		Buckets:    []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		Registry:   prometheus.DefaultRegisterer,
		TracerName: defaultTracerName,
	}
}

// Instrumentation owns the installed hooks and their collectors. One
// instance may be active at a time; Disable uninstalls it.
type Instrumentation struct {
	signalWrites  prometheus.Counter
	effectRuns    prometheus.Counter
	flushesTotal  prometheus.Counter
	flushPasses   prometheus.Histogram
	flushDuration prometheus.Histogram

	tracer       trace.Tracer
	traceFlushes bool

	mu   sync.Mutex
	span trace.Span
}

// Enable builds the collectors and installs hooks on the reactive runtime.
//
// Metrics collected:
//   - filament_reactive_signal_writes_total: writes that changed a value
//   - filament_reactive_effect_runs_total: effect executions
//   - filament_reactive_flushes_total: notification flushes
//   - filament_reactive_flush_passes: passes per flush
//   - filament_reactive_flush_duration_seconds: wall time per flush
//
// The tracer comes from the global OpenTelemetry provider; configure that
// in main() before calling Enable.
func Enable(opts ...Option) *Instrumentation {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	in := &Instrumentation{
		signalWrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "signal_writes_total",
			Help:        "Total number of signal writes that changed a value",
			ConstLabels: config.ConstLabels,
		}),
		effectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect executions",
			ConstLabels: config.ConstLabels,
		}),
		flushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of notification flushes",
			ConstLabels: config.ConstLabels,
		}),
		flushPasses: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_passes",
			Help:        "Number of passes each flush took to converge",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 2, 3, 5, 10, 50, 100},
		}),
		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Wall time per notification flush in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
		tracer:       otel.Tracer(config.TracerName),
		traceFlushes: config.TraceFlushes,
	}

	reactive.SetHooks(&reactive.Hooks{
		SignalWrite: in.onSignalWrite,
		EffectRun:   in.onEffectRun,
		FlushStart:  in.onFlushStart,
		FlushEnd:    in.onFlushEnd,
	})

	return in
}

// Disable removes the hooks. Collectors stay registered; re-enabling with
// the same registry requires a fresh registry or unregistration.
func (in *Instrumentation) Disable() {
	reactive.SetHooks(nil)
}

func (in *Instrumentation) onSignalWrite() {
	in.signalWrites.Inc()
}

func (in *Instrumentation) onEffectRun() {
	in.effectRuns.Inc()
}

func (in *Instrumentation) onFlushStart() {
	if !in.traceFlushes {
		return
	}
	in.mu.Lock()
	_, in.span = in.tracer.Start(context.Background(), "filament.flush",
		trace.WithSpanKind(trace.SpanKindInternal))
	in.mu.Unlock()
}

func (in *Instrumentation) onFlushEnd(passes int, d time.Duration) {
	in.flushesTotal.Inc()
	in.flushPasses.Observe(float64(passes))
	in.flushDuration.Observe(d.Seconds())

	if !in.traceFlushes {
		return
	}
	in.mu.Lock()
	span := in.span
	in.span = nil
	in.mu.Unlock()
	if span != nil {
		span.SetAttributes(attribute.Int("filament.flush_passes", passes))
		span.End()
	}
}
