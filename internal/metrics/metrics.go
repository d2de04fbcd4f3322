package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	filesAdded   *prometheus.CounterVec
	filesRemoved *prometheus.CounterVec
	syncErrors   *prometheus.CounterVec
	syncDuration *prometheus.HistogramVec
	unmatched    prometheus.Counter
}

// New registers the sync metrics with reg under namespace.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		filesAdded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_added_total",
			Help:      "Files found in a project listing that were not in the previous snapshot",
		}, []string{"project"}),

		filesRemoved: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_removed_total",
			Help:      "Files in the previous snapshot that are gone from the project listing",
		}, []string{"project"}),

		syncErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_errors_total",
			Help:      "Failed project syncs",
		}, []string{"project"}),

		syncDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "Duration of successful project syncs",
			Buckets:   prometheus.DefBuckets,
		}, []string{"project"}),

		unmatched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subtract_unmatched_total",
			Help:      "Paths subtracted from a sorted list they were not part of",
		}),
	}
}

func (m *Metrics) SyncCompleted(projectID string, d time.Duration, removed, added int) {
	m.filesRemoved.WithLabelValues(projectID).Add(float64(removed))
	m.filesAdded.WithLabelValues(projectID).Add(float64(added))
	m.syncDuration.WithLabelValues(projectID).Observe(d.Seconds())
}

func (m *Metrics) SyncFailed(projectID string) {
	m.syncErrors.WithLabelValues(projectID).Inc()
}

func (m *Metrics) Unmatched() {
	m.unmatched.Inc()
}
