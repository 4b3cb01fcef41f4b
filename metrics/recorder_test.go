package metrics

import (
	"testing"
	"time"

	"github.com/asaidimu/go-lister/core/query"
	"github.com/asaidimu/go-lister/fixtures"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Queries(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	datasets, err := fixtures.Datasets()
	require.NoError(t, err)
	catalog, ok := fixtures.Find(datasets, fixtures.NameCatalog)
	require.True(t, ok)

	engine := query.NewEngine(nil).WithObserver(r)
	engine.Query(catalog.Records, query.ListQuery{Criteria: query.FilterCriteria{"category": "Development"}})
	engine.Query(catalog.Records, query.ListQuery{})

	assert.Equal(t, 2.0, testutil.ToFloat64(r.QueriesTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(r.QueryMatched))
}

func TestRecorder_Searches(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())
	index, err := fixtures.NewSearchIndex(nil, 0)
	require.NoError(t, err)
	index.WithObserver(r)

	index.Search("", 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(r.SearchesTotal), "empty queries are not observed")

	index.Search("css", 0)
	index.Search("e", 0)
	assert.Equal(t, 2.0, testutil.ToFloat64(r.SearchesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SearchTruncate))
}

func TestRecorder_Watch(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())
	store, err := fixtures.NewStore(nil)
	require.NoError(t, err)
	stop := r.Watch(store)
	assert.Len(t, store.Subscriptions(), 8)

	users, err := store.Collection(fixtures.NameUsers)
	require.NoError(t, err)
	_, err = users.Delete(5)
	require.NoError(t, err)
	_, err = users.Delete(42)
	require.Error(t, err)

	deleted := r.MutationsTotal.WithLabelValues(fixtures.NameUsers, "delete", "success")
	failed := r.MutationsTotal.WithLabelValues(fixtures.NameUsers, "delete", "failed")
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(deleted) == 1 && testutil.ToFloat64(failed) == 1
	}, 2*time.Second, 10*time.Millisecond)

	stop()
	assert.Empty(t, store.Subscriptions())
}

func TestNewRecorder_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg)
	assert.Panics(t, func() { NewRecorder(reg) })
}
