package geovec

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	noticeHandler    func(Notice)
	memoryLimit      int64
}

// Option configures Init.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring dispatch.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &geovec.BasicMetricsCollector{}
//	ctx, _ := geovec.Init(planar.New(), geovec.WithMetricsCollector(metrics))
//	// ... dispatch ufuncs ...
//	stats := metrics.GetStats()
//	fmt.Printf("Calls: %d, Notices: %d\n", stats.DispatchCount, stats.NoticeCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := geovec.NewJSONLogger(os.Stderr, slog.LevelInfo)
//	ctx, _ := geovec.Init(planar.New(), geovec.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithNoticeHandler registers a callback for engine notices. Notices are
// always logged at warn level; the callback runs after logging, on the
// dispatching goroutine.
func WithNoticeHandler(fn func(Notice)) Option {
	return func(o *options) {
		o.noticeHandler = fn
	}
}

// WithMemoryLimit caps the bytes held by coordinate sequences that are
// being filled. 0 means unlimited. Allocations over the limit fail with
// ErrAllocationFailed.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
