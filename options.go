package colgo

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures table construction behavior.
type Option func(*options)

// WithMetricsCollector configures the metrics collector used for table
// operations. If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures the logger used for table operations.
// If nil is passed, NoopLogger() is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
