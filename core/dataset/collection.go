// Package dataset holds the mutable side of the listing engine: named record
// collections whose contents are only ever replaced, never modified in place.
// Every change builds a new slice and swaps it in, so a slice handed to an
// earlier render keeps its contents for as long as that render holds it.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/asaidimu/go-events"
	"github.com/asaidimu/go-lister/core/query"
	"github.com/asaidimu/go-lister/core/schema"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no record or collection has the given name or id.
	ErrNotFound = errors.New("not found")
	// ErrImmutableID is returned when an update tries to change a record's identifier.
	ErrImmutableID = errors.New("record identifier cannot change")
)

// Options configures a Collection.
type Options struct {
	// Noun names one record in notifications, e.g. "User" or "Course".
	Noun string
	// LabelField is the field quoted in notifications, e.g. "name" or "title".
	LabelField string
	Logger     *zap.Logger
	// Bus receives the collection's events. A private bus is created when nil.
	Bus *events.TypedEventBus[Event]
}

// Collection is a named, shape-bound dataset with copy-on-write mutation.
type Collection struct {
	name       string
	shape      *schema.Shape
	noun       string
	labelField string
	logger     *zap.Logger
	bus        *events.TypedEventBus[Event]
	subs       *subscriptions

	mu        sync.RWMutex
	validator *schema.Validator
	records   []schema.Record
	version   uint64
}

// NewCollection validates records against shape and wraps them in a Collection.
func NewCollection(shape *schema.Shape, records []schema.Record, opts Options) (*Collection, error) {
	if shape == nil {
		return nil, fmt.Errorf("collection requires a shape")
	}
	bus := opts.Bus
	if bus == nil {
		b, err := events.NewTypedEventBus[Event](events.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("could not initialize event bus: %w", err)
		}
		bus = b
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	noun := opts.Noun
	if noun == "" {
		noun = "Record"
	}
	labelField := opts.LabelField
	if labelField == "" {
		labelField = shape.Identity()
	}

	validator := schema.NewValidator(shape)
	if err := validator.ValidateDataset(records); err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", shape.Name, err)
	}

	return &Collection{
		name:       shape.Name,
		shape:      shape,
		noun:       noun,
		labelField: labelField,
		logger:     logger,
		bus:        bus,
		subs:       newSubscriptions(bus),
		validator:  validator,
		records:    slices.Clone(records),
		version:    1,
	}, nil
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Shape returns the shape every record conforms to.
func (c *Collection) Shape() *schema.Shape { return c.shape }

// Version increases every time the contents are replaced.
func (c *Collection) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Len returns the number of records.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Snapshot returns the current contents and their version. The slice is shared
// with other readers and must not be modified.
func (c *Collection) Snapshot() ([]schema.Record, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.records, c.version
}

// Records returns a copy of the current contents.
func (c *Collection) Records() []schema.Record {
	records, _ := c.Snapshot()
	return slices.Clone(records)
}

// Get returns the record with the given identifier.
func (c *Collection) Get(id any) (schema.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return c.records[i], true
}

func (c *Collection) indexOf(id any) int {
	key := schema.KeyOf(id)
	if key == "" {
		return -1
	}
	field := c.shape.Identity()
	return slices.IndexFunc(c.records, func(r schema.Record) bool {
		return schema.KeyOf(r[field]) == key
	})
}

// label returns the text quoting a record in notifications.
func (c *Collection) label(record schema.Record) string {
	if v, ok := record[c.labelField]; ok && v != nil {
		return query.ToText(v)
	}
	return fmt.Sprintf("%s %s", c.noun, query.ToText(record[c.shape.Identity()]))
}

// emitEvent is a helper method to emit events
func (c *Collection) emitEvent(event Event) {
	if c.bus != nil {
		c.bus.Emit(string(event.Type), event)
	}
}

// mutation is the outcome of a change: the record it concerns and the
// notification text for it.
type mutation struct {
	record schema.Record
	notice notice
}

// withEventEmission wraps a change with start, success and failure events.
// apply runs under the write lock and returns the next contents.
func (c *Collection) withEventEmission(
	operation string,
	startEventType EventType,
	successEventType EventType,
	failedEventType EventType,
	input any,
	apply func(current []schema.Record) ([]schema.Record, mutation, error),
) (schema.Record, error) {
	startTime := time.Now()
	c.emitEvent(createEvent(startEventType, operation, c.name, input, nil, nil, nil, c.Version(), notice{}, startTime))

	c.mu.Lock()
	next, m, err := apply(c.records)
	if err == nil {
		c.records = next
		c.version++
	}
	version := c.version
	c.mu.Unlock()

	if err != nil {
		var issues []schema.Issue
		var invalid *invalidRecordError
		if errors.As(err, &invalid) {
			issues = invalid.issues
		}
		c.logger.Warn("Dataset change rejected",
			zap.String("collection", c.name),
			zap.String("operation", operation),
			zap.Error(err),
		)
		c.emitEvent(createEvent(failedEventType, operation, c.name, input, nil, err, issues, version, notice{}, startTime))
		return nil, err
	}

	c.logger.Debug("Dataset changed",
		zap.String("collection", c.name),
		zap.String("operation", operation),
		zap.Uint64("version", version),
	)
	c.emitEvent(createEvent(successEventType, operation, c.name, input, m.record, nil, nil, version, m.notice, startTime))
	return m.record, nil
}

// Replace swaps the whole contents for records.
func (c *Collection) Replace(records []schema.Record) error {
	_, err := c.withEventEmission("replace", DatasetReplaceStart, DatasetReplaceSuccess, DatasetReplaceFailed, len(records),
		func([]schema.Record) ([]schema.Record, mutation, error) {
			if err := c.validator.ValidateDataset(records); err != nil {
				return nil, mutation{}, err
			}
			return slices.Clone(records), mutation{notice: notice{
				title:       fmt.Sprintf("%ss reloaded", c.noun),
				description: fmt.Sprintf("%d records loaded", len(records)),
			}}, nil
		})
	return err
}

// Insert appends a record.
func (c *Collection) Insert(record schema.Record) error {
	_, err := c.withEventEmission("insert", RecordInsertStart, RecordInsertSuccess, RecordInsertFailed, record,
		func(current []schema.Record) ([]schema.Record, mutation, error) {
			id, ok := record[c.shape.Identity()]
			if !ok || schema.KeyOf(id) == "" {
				return nil, mutation{}, fmt.Errorf("insert into %s: %w", c.name, schema.ErrMissingID)
			}
			if c.indexOf(id) >= 0 {
				return nil, mutation{}, fmt.Errorf("insert into %s: %w %v", c.name, schema.ErrDuplicateID, id)
			}
			if err := c.validate(record); err != nil {
				return nil, mutation{}, err
			}
			stored := record.Clone()
			next := make([]schema.Record, 0, len(current)+1)
			next = append(append(next, current...), stored)
			return next, mutation{record: stored, notice: notice{
				title:       fmt.Sprintf("%s added", c.noun),
				description: fmt.Sprintf("%s has been added", c.label(stored)),
			}}, nil
		})
	return err
}

// Update applies patch to the record with the given identifier and returns the
// new record. The previous record value is left untouched.
func (c *Collection) Update(id any, patch map[string]any) (schema.Record, error) {
	input := map[string]any{"id": id, "patch": patch}
	return c.withEventEmission("update", RecordUpdateStart, RecordUpdateSuccess, RecordUpdateFailed, input,
		func(current []schema.Record) ([]schema.Record, mutation, error) {
			i := c.indexOf(id)
			if i < 0 {
				return nil, mutation{}, fmt.Errorf("update %s %v: %w", c.name, id, ErrNotFound)
			}
			if newID, ok := patch[c.shape.Identity()]; ok && schema.KeyOf(newID) != schema.KeyOf(id) {
				return nil, mutation{}, fmt.Errorf("update %s %v: %w", c.name, id, ErrImmutableID)
			}
			updated := current[i].With(patch)
			if err := c.validate(updated); err != nil {
				return nil, mutation{}, err
			}

			next := make([]schema.Record, len(current))
			for j, r := range current {
				if j == i {
					next[j] = updated
				} else {
					next[j] = r
				}
			}
			return next, mutation{record: updated, notice: c.updateNotice(updated, patch)}, nil
		})
}

func (c *Collection) updateNotice(record schema.Record, patch map[string]any) notice {
	label := c.label(record)
	status, ok := patch["status"]
	if !ok || len(patch) != 1 {
		return notice{
			title:       fmt.Sprintf("%s updated", c.noun),
			description: fmt.Sprintf("%s has been updated", label),
		}
	}
	// People are quoted in the possessive: "Emma Davis's status changed to inactive".
	if c.labelField == "name" {
		return notice{
			title:       "Status updated",
			description: fmt.Sprintf("%s's status changed to %s", label, query.ToText(status)),
		}
	}
	return notice{
		title:       fmt.Sprintf("%s status updated", c.noun),
		description: fmt.Sprintf("%s status changed to %s", label, query.ToText(status)),
	}
}

// Delete removes the record with the given identifier and returns it.
func (c *Collection) Delete(id any) (schema.Record, error) {
	return c.withEventEmission("delete", RecordDeleteStart, RecordDeleteSuccess, RecordDeleteFailed, id,
		func(current []schema.Record) ([]schema.Record, mutation, error) {
			i := c.indexOf(id)
			if i < 0 {
				return nil, mutation{}, fmt.Errorf("delete %s %v: %w", c.name, id, ErrNotFound)
			}
			removed := current[i]
			next := make([]schema.Record, 0, len(current)-1)
			next = append(append(next, current[:i]...), current[i+1:]...)

			description := fmt.Sprintf("%s has been removed", c.label(removed))
			if c.labelField == "name" {
				description += " from the system"
			}
			return next, mutation{record: removed, notice: notice{
				title:       fmt.Sprintf("%s deleted", c.noun),
				description: description,
			}}, nil
		})
}

// invalidRecordError carries the validation issues of a rejected record.
type invalidRecordError struct {
	collection string
	issues     []schema.Issue
}

func (e *invalidRecordError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.collection, schema.ErrInvalidRecord, e.issues[0].Message)
}

func (e *invalidRecordError) Unwrap() error { return schema.ErrInvalidRecord }

// validate must be called with the write lock held.
func (c *Collection) validate(record schema.Record) error {
	result := c.validator.Validate(record, false)
	if result.Valid {
		return nil
	}
	return &invalidRecordError{collection: c.name, issues: result.Issues}
}

// RegisterSubscription registers a callback for events of this collection only.
func (c *Collection) RegisterSubscription(options RegisterSubscriptionOptions) string {
	callback := options.Callback
	id := c.subs.register(options, func(ctx context.Context, event Event) error {
		if event.Collection != c.name || callback == nil {
			return nil
		}
		return callback(ctx, event)
	})
	c.emitEvent(createEvent(SubscriptionRegister, "register_subscription", c.name,
		map[string]any{"event": options.Event, "label": options.Label},
		map[string]any{"subscriptionId": id},
		nil, nil, c.Version(), notice{}, time.Time{}))
	return id
}

// UnregisterSubscription removes a subscription registered on this collection.
func (c *Collection) UnregisterSubscription(id string) {
	if !c.subs.unregister(id) {
		return
	}
	c.emitEvent(createEvent(SubscriptionUnregister, "unregister_subscription", c.name,
		map[string]any{"subscriptionId": id}, nil, nil, nil, c.Version(), notice{}, time.Time{}))
}

// Subscriptions returns the subscriptions registered on this collection.
func (c *Collection) Subscriptions() []SubscriptionInfo {
	return c.subs.list()
}
