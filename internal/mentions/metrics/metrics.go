// Package metrics holds the Prometheus instruments for the mentions module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects mention pipeline counters and timings.
type Metrics struct {
	PostsParsed          prometheus.Counter
	MentionsResolved     *prometheus.CounterVec
	DispatchesStarted    prometheus.Counter
	DispatchesFailed     prometheus.Counter
	NotificationsPushed  prometheus.Counter
	RecipientsNotified   prometheus.Counter
	RecipientsSuppressed *prometheus.CounterVec
	BatchDuration        prometheus.Histogram
}

// New creates and registers all mention metrics with the default registry.
func New() *Metrics {
	return &Metrics{
		PostsParsed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mentiond_posts_parsed_total",
			Help: "Posts run through the mention rewriter",
		}),
		MentionsResolved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mentiond_mentions_resolved_total",
			Help: "Mention candidates by resolution outcome",
		}, []string{"kind"}),
		DispatchesStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mentiond_dispatches_started_total",
			Help: "Notification dispatches triggered by post creation",
		}),
		DispatchesFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mentiond_dispatches_failed_total",
			Help: "Notification dispatches aborted by a collaborator failure",
		}),
		NotificationsPushed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mentiond_notifications_pushed_total",
			Help: "Notification records pushed to the host notification API",
		}),
		RecipientsNotified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mentiond_recipients_notified_total",
			Help: "User ids delivered a mention notification",
		}),
		RecipientsSuppressed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mentiond_recipients_suppressed_total",
			Help: "Recipients dropped before delivery, by filter",
		}, []string{"reason"}),
		BatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mentiond_dispatch_batch_duration_seconds",
			Help:    "Latency of one recipient batch through the filter chain",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// ObserveBatch records the duration of one recipient batch.
func (m *Metrics) ObserveBatch(d time.Duration) {
	if m == nil {
		return
	}
	m.BatchDuration.Observe(d.Seconds())
}

// IncResolved counts a resolution outcome: "user", "group", or "none".
func (m *Metrics) IncResolved(kind string) {
	if m == nil {
		return
	}
	m.MentionsResolved.WithLabelValues(kind).Inc()
}

// IncSuppressed counts a recipient dropped by the named filter.
func (m *Metrics) IncSuppressed(reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RecipientsSuppressed.WithLabelValues(reason).Add(float64(n))
}
