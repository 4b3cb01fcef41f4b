package dataset

import (
	"context"
	"time"

	"github.com/asaidimu/go-lister/core/schema"
)

// EventType defines the possible event types for dataset changes.
type EventType string

const (
	RecordInsertStart      EventType = "record:insert:start"
	RecordInsertSuccess    EventType = "record:insert:success"
	RecordInsertFailed     EventType = "record:insert:failed"
	RecordUpdateStart      EventType = "record:update:start"
	RecordUpdateSuccess    EventType = "record:update:success"
	RecordUpdateFailed     EventType = "record:update:failed"
	RecordDeleteStart      EventType = "record:delete:start"
	RecordDeleteSuccess    EventType = "record:delete:success"
	RecordDeleteFailed     EventType = "record:delete:failed"
	DatasetReplaceStart    EventType = "dataset:replace:start"
	DatasetReplaceSuccess  EventType = "dataset:replace:success"
	DatasetReplaceFailed   EventType = "dataset:replace:failed"
	SubscriptionRegister   EventType = "subscription:register"
	SubscriptionUnregister EventType = "subscription:unregister"
)

// Event describes a change, or attempted change, to a dataset. Title and
// Description carry the user-facing notification text for the change.
type Event struct {
	Type        EventType      `json:"type"`
	Timestamp   int64          `json:"timestamp"` // Unix milliseconds.
	Operation   string         `json:"operation"`
	Collection  string         `json:"collection"`
	Input       any            `json:"input,omitempty"`
	Output      any            `json:"output,omitempty"`
	Error       *string        `json:"error,omitempty"`
	Issues      []schema.Issue `json:"issues,omitempty"`
	Version     uint64         `json:"version"` // Dataset version after the event.
	Duration    *int64         `json:"duration,omitempty"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
}

// EventCallback is invoked for every event a subscription matches.
type EventCallback func(ctx context.Context, event Event) error

// RegisterSubscriptionOptions defines options for registering a subscription.
type RegisterSubscriptionOptions struct {
	Event       EventType `json:"event"`
	Label       *string   `json:"label,omitempty"`
	Description *string   `json:"description,omitempty"`
	Callback    EventCallback
}

// SubscriptionInfo describes an active subscription.
type SubscriptionInfo struct {
	ID          string    `json:"id"`
	Event       EventType `json:"event"`
	Label       *string   `json:"label,omitempty"`
	Description *string   `json:"description,omitempty"`
	Unsubscribe func()    `json:"-"`
}

// notice is the notification text attached to a successful change.
type notice struct {
	title       string
	description string
}

func createEvent(
	eventType EventType,
	operation string,
	collection string,
	input any,
	output any,
	err error,
	issues []schema.Issue,
	version uint64,
	n notice,
	startTime time.Time,
) Event {
	var duration *int64
	if !startTime.IsZero() {
		d := time.Since(startTime).Milliseconds()
		duration = &d
	}

	var errStr *string
	if err != nil {
		s := err.Error()
		errStr = &s
	}

	return Event{
		Type:        eventType,
		Timestamp:   time.Now().UnixMilli(),
		Operation:   operation,
		Collection:  collection,
		Input:       input,
		Output:      output,
		Error:       errStr,
		Issues:      issues,
		Version:     version,
		Duration:    duration,
		Title:       n.title,
		Description: n.description,
	}
}
