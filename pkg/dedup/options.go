package dedup

import (
	"log/slog"

	"filevault/pkg/metrics"
)

type options struct {
	log     *slog.Logger
	metrics *metrics.Collector
	retry   RetryPolicy
}

// Option 配置 Registry / Protocol / Reaper 的可选依赖
type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(o *options) { o.metrics = m }
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(o *options) { o.retry = p }
}

func buildOptions(opts []Option) options {
	o := options{
		log:   slog.Default(),
		retry: DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
