package dataset

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/asaidimu/go-lister/core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coursesShape() *schema.Shape {
	return &schema.Shape{
		Name: "courses",
		Fields: map[string]*schema.FieldDefinition{
			"id":     {Name: "id", Type: schema.FieldTypeInteger, Required: required()},
			"title":  {Name: "title", Type: schema.FieldTypeString, Required: required()},
			"status": {Name: "status", Type: schema.FieldTypeEnum, Values: []any{"active", "draft", "archived"}},
		},
	}
}

func TestStore_Create(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)

	users, err := store.Create(usersShape(), usersData(), Options{Noun: "User", LabelField: "name"})
	require.NoError(t, err)
	_, err = store.Create(coursesShape(), []schema.Record{{"id": 1, "title": "Advanced React Patterns", "status": "active"}}, Options{Noun: "Course", LabelField: "title"})
	require.NoError(t, err)

	assert.Equal(t, []string{"users", "courses"}, store.Collections())

	got, err := store.Collection("users")
	require.NoError(t, err)
	assert.Same(t, users, got)

	_, err = store.Create(usersShape(), nil, Options{})
	assert.ErrorIs(t, err, ErrCollectionExists)

	_, err = store.Collection("payments")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Drop(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)
	_, err = store.Create(usersShape(), usersData(), Options{})
	require.NoError(t, err)

	require.NoError(t, store.Drop("users"))
	assert.Empty(t, store.Collections())
	assert.ErrorIs(t, store.Drop("users"), ErrNotFound)
}

func TestStore_Subscriptions(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)
	users, err := store.Create(usersShape(), usersData(), Options{Noun: "User", LabelField: "name"})
	require.NoError(t, err)
	courses, err := store.Create(coursesShape(), []schema.Record{{"id": 1, "title": "Advanced React Patterns", "status": "active"}}, Options{Noun: "Course", LabelField: "title"})
	require.NoError(t, err)

	var mu sync.Mutex
	var seen []Event
	id := store.RegisterSubscription(RegisterSubscriptionOptions{
		Event: RecordUpdateSuccess,
		Callback: func(_ context.Context, e Event) error {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, e)
			return nil
		},
	})
	require.Len(t, store.Subscriptions(), 1)

	_, err = users.Update(2, map[string]any{"status": "inactive"})
	require.NoError(t, err)
	_, err = courses.Update(1, map[string]any{"status": "archived"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	titles := map[string]string{}
	for _, e := range seen {
		titles[e.Collection] = e.Title + ": " + e.Description
	}
	mu.Unlock()
	assert.Equal(t, "Status updated: Sarah Williams's status changed to inactive", titles["users"])
	assert.Equal(t, "Course status updated: Advanced React Patterns status changed to archived", titles["courses"])

	store.UnregisterSubscription(id)
	assert.Empty(t, store.Subscriptions())
}
