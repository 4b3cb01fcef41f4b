package dataset

import (
	"errors"
	"fmt"
	"sync"

	"github.com/asaidimu/go-events"
	"github.com/asaidimu/go-lister/core/schema"
	"go.uber.org/zap"
)

// ErrCollectionExists is returned when a collection name is already taken.
var ErrCollectionExists = errors.New("collection already exists")

// Store is the registry of every dataset the dashboard lists. All collections
// created through a store share its event bus, so store-level subscriptions
// observe changes to any collection.
type Store struct {
	logger *zap.Logger
	bus    *events.TypedEventBus[Event]
	subs   *subscriptions

	mu          sync.RWMutex
	order       []string
	collections map[string]*Collection
}

// NewStore creates an empty store with its own event bus.
func NewStore(logger *zap.Logger) (*Store, error) {
	bus, err := events.NewTypedEventBus[Event](events.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("could not initialize event bus: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		logger:      logger,
		bus:         bus,
		subs:        newSubscriptions(bus),
		collections: make(map[string]*Collection),
	}, nil
}

// Create registers a new collection named after shape and loaded with records.
func (s *Store) Create(shape *schema.Shape, records []schema.Record, opts Options) (*Collection, error) {
	opts.Bus = s.bus
	if opts.Logger == nil {
		opts.Logger = s.logger
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if shape != nil {
		if _, exists := s.collections[shape.Name]; exists {
			return nil, fmt.Errorf("failed to create collection %s: %w", shape.Name, ErrCollectionExists)
		}
	}

	collection, err := NewCollection(shape, records, opts)
	if err != nil {
		return nil, err
	}
	s.collections[collection.Name()] = collection
	s.order = append(s.order, collection.Name())

	s.logger.Info("Registered dataset", zap.String("name", collection.Name()), zap.Int("records", len(records)))
	return collection, nil
}

// Collection returns the named collection.
func (s *Store) Collection(name string) (*Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	collection, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("collection %s: %w", name, ErrNotFound)
	}
	return collection, nil
}

// Collections returns the collection names in creation order.
func (s *Store) Collections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Drop removes a collection and its subscriptions.
func (s *Store) Drop(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection, ok := s.collections[name]
	if !ok {
		return fmt.Errorf("drop %s: %w", name, ErrNotFound)
	}
	collection.subs.clear()
	delete(s.collections, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	s.logger.Info("Dropped dataset", zap.String("name", name))
	return nil
}

// RegisterSubscription registers a callback for events of every collection. It
// returns an id for UnregisterSubscription.
func (s *Store) RegisterSubscription(options RegisterSubscriptionOptions) string {
	return s.subs.register(options, options.Callback)
}

// UnregisterSubscription removes a store-level subscription.
func (s *Store) UnregisterSubscription(id string) {
	s.subs.unregister(id)
}

// Subscriptions returns the store-level subscriptions.
func (s *Store) Subscriptions() []SubscriptionInfo {
	return s.subs.list()
}
