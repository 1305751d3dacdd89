// Package metrics 暴露去重引擎与 RPC 层的 Prometheus 指标
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "filevault"

// Collector 是一个 prometheus.Collector
// 所有方法对 nil 接收者安全，组件在未启用指标时传 nil 即可
type Collector struct {
	uploads         *prometheus.CounterVec
	directives      *prometheus.CounterVec
	orphanBytes     prometheus.Counter
	refCountRetries prometheus.Counter
	reaped          prometheus.Counter
	rpcDuration     *prometheus.HistogramVec
}

// NewCollector returns a new Collector.
func NewCollector() *Collector {
	return &Collector{
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Uploads by outcome (created a new stored object or attached to an existing one).",
			}, []string{"outcome"},
		),
		directives: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "detach_directives_total",
				Help:      "Post-commit directives produced by detach.",
			}, []string{"kind"},
		),
		orphanBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orphan_bytes_total",
				Help:      "Byte blobs left behind because a physical delete failed.",
			},
		),
		refCountRetries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "refcount_retries_total",
				Help:      "Reference count transactions retried after a conflict.",
			},
		),
		reaped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reaped_objects_total",
				Help:      "Zero-count stored objects removed by the reaper.",
			},
		),
		rpcDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rpc_duration_seconds",
				Help:      "gRPC handler latency.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"method", "code"},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.uploads.Describe(ch)
	c.directives.Describe(ch)
	c.orphanBytes.Describe(ch)
	c.refCountRetries.Describe(ch)
	c.reaped.Describe(ch)
	c.rpcDuration.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.uploads.Collect(ch)
	c.directives.Collect(ch)
	c.orphanBytes.Collect(ch)
	c.refCountRetries.Collect(ch)
	c.reaped.Collect(ch)
	c.rpcDuration.Collect(ch)
}

func (c *Collector) Upload(created bool) {
	if c == nil {
		return
	}
	outcome := "attached"
	if created {
		outcome = "created"
	}
	c.uploads.WithLabelValues(outcome).Inc()
}

func (c *Collector) Directive(kind string) {
	if c == nil {
		return
	}
	c.directives.WithLabelValues(kind).Inc()
}

func (c *Collector) OrphanBytes() {
	if c == nil {
		return
	}
	c.orphanBytes.Inc()
}

func (c *Collector) RefCountRetry() {
	if c == nil {
		return
	}
	c.refCountRetries.Inc()
}

func (c *Collector) Reaped(n int) {
	if c == nil {
		return
	}
	c.reaped.Add(float64(n))
}

func (c *Collector) ObserveRPC(method, code string, d time.Duration) {
	if c == nil {
		return
	}
	c.rpcDuration.WithLabelValues(method, code).Observe(d.Seconds())
}
