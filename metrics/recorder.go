// Package metrics provides Prometheus metrics for the listing engine, the
// global search index and dataset mutations.
package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/asaidimu/go-lister/core/dataset"
	"github.com/asaidimu/go-lister/core/query"
	"github.com/asaidimu/go-lister/core/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the Prometheus metrics of one process. It implements both
// query.Observer and search.Observer.
type Recorder struct {
	QueriesTotal   prometheus.Counter
	QueryDuration  prometheus.Histogram
	QueryMatched   prometheus.Histogram
	SearchesTotal  prometheus.Counter
	SearchResults  prometheus.Histogram
	SearchTruncate prometheus.Counter
	MutationsTotal *prometheus.CounterVec
}

var (
	_ query.Observer  = (*Recorder)(nil)
	_ search.Observer = (*Recorder)(nil)
)

// NewRecorder creates the metrics and registers them on reg. A nil reg uses
// the default registerer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		QueriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "lister_queries_total",
			Help: "Total number of list queries run",
		}),
		QueryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lister_query_duration_seconds",
			Help:    "Duration of list queries in seconds",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
		}),
		QueryMatched: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lister_query_matched_records",
			Help:    "Number of records matched by a list query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		SearchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "lister_searches_total",
			Help: "Total number of non-empty global searches",
		}),
		SearchResults: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lister_search_results",
			Help:    "Number of results returned by a global search",
			Buckets: prometheus.LinearBuckets(0, 2, 8),
		}),
		SearchTruncate: factory.NewCounter(prometheus.CounterOpts{
			Name: "lister_search_truncated_total",
			Help: "Total number of global searches whose matches exceeded the result cap",
		}),
		MutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lister_dataset_mutations_total",
			Help: "Total number of dataset mutations",
		}, []string{"collection", "operation", "status"}),
	}
}

// ObserveQuery records a query run.
func (r *Recorder) ObserveQuery(total, matched int, elapsed time.Duration) {
	r.QueriesTotal.Inc()
	r.QueryDuration.Observe(elapsed.Seconds())
	r.QueryMatched.Observe(float64(matched))
}

// ObserveSearch records a global search.
func (r *Recorder) ObserveSearch(matched, returned int) {
	r.SearchesTotal.Inc()
	r.SearchResults.Observe(float64(returned))
	if matched > returned {
		r.SearchTruncate.Inc()
	}
}

var mutationEvents = []dataset.EventType{
	dataset.RecordInsertSuccess, dataset.RecordInsertFailed,
	dataset.RecordUpdateSuccess, dataset.RecordUpdateFailed,
	dataset.RecordDeleteSuccess, dataset.RecordDeleteFailed,
	dataset.DatasetReplaceSuccess, dataset.DatasetReplaceFailed,
}

// Watch subscribes the recorder to the mutation outcomes of every collection
// in store. It returns a function that removes the subscriptions.
func (r *Recorder) Watch(store *dataset.Store) func() {
	label := "metrics"
	ids := make([]string, 0, len(mutationEvents))
	for _, eventType := range mutationEvents {
		ids = append(ids, store.RegisterSubscription(dataset.RegisterSubscriptionOptions{
			Event: eventType,
			Label: &label,
			Callback: func(ctx context.Context, event dataset.Event) error {
				r.MutationsTotal.WithLabelValues(event.Collection, event.Operation, outcome(event.Type)).Inc()
				return nil
			},
		}))
	}
	return func() {
		for _, id := range ids {
			store.UnregisterSubscription(id)
		}
	}
}

func outcome(t dataset.EventType) string {
	s := string(t)
	return s[strings.LastIndex(s, ":")+1:]
}
