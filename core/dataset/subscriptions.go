package dataset

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/asaidimu/go-events"
	"github.com/google/uuid"
)

// subscriptions tracks the callbacks registered on an event bus so they can be
// listed and removed by id.
type subscriptions struct {
	bus *events.TypedEventBus[Event]

	mu    sync.RWMutex
	items map[string]*SubscriptionInfo
}

func newSubscriptions(bus *events.TypedEventBus[Event]) *subscriptions {
	return &subscriptions{bus: bus, items: make(map[string]*SubscriptionInfo)}
}

// register subscribes callback to the bus and returns its id.
func (s *subscriptions) register(options RegisterSubscriptionOptions, callback EventCallback) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	unsubscribe := s.bus.Subscribe(string(options.Event), func(ctx context.Context, event Event) error {
		if callback == nil {
			return nil
		}
		return callback(ctx, event)
	})
	id := uuid.New().String()

	s.items[id] = &SubscriptionInfo{
		ID:          id,
		Event:       options.Event,
		Label:       options.Label,
		Description: options.Description,
		Unsubscribe: unsubscribe,
	}
	return id
}

// unregister removes the subscription and reports whether it existed.
func (s *subscriptions) unregister(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := s.items[id]
	if info == nil {
		return false
	}
	info.Unsubscribe()
	delete(s.items, id)
	return true
}

// list returns the active subscriptions ordered by id.
func (s *subscriptions) list() []SubscriptionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SubscriptionInfo, 0, len(s.items))
	for _, info := range s.items {
		out = append(out, *info)
	}
	slices.SortFunc(out, func(a, b SubscriptionInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func (s *subscriptions) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, info := range s.items {
		info.Unsubscribe()
		delete(s.items, id)
	}
}
