// Package search implements the cross-collection search behind the dashboard's
// global search box: several record collections are registered in display
// priority order and searched together by title.
package search

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/asaidimu/go-lister/core/query"
	"github.com/asaidimu/go-lister/core/schema"
	"go.uber.org/zap"
)

// DefaultLimit caps the number of results when the caller passes no limit.
const DefaultLimit = 8

var (
	// ErrUnknownPlaceholder is returned when a target template names a field
	// that a record of the collection does not carry.
	ErrUnknownPlaceholder = errors.New("unknown target placeholder")
	// ErrDuplicateCollection is returned when a collection name is registered twice.
	ErrDuplicateCollection = errors.New("collection already registered")
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Collection describes one searchable record collection.
type Collection struct {
	Name     string
	Category string
	// Icon is used for records that carry no "icon" field of their own.
	Icon string
	// TitleField is the field matched against the query and shown as the result
	// title. People collections use "name". Defaults to "title".
	TitleField string
	// Target is the navigation template, e.g. "/lesson/{courseId}/{id}". Empty
	// means the entries are informational only.
	Target  string
	Records []schema.Record
}

// Entry is a single searchable item, built once at registration.
type Entry struct {
	Source   string        `json:"source"`
	Record   schema.Record `json:"-"`
	Title    string        `json:"title"`
	Icon     string        `json:"icon,omitempty"`
	Category string        `json:"category,omitempty"`
	Target   string        `json:"target,omitempty"`
}

// HasTarget reports whether selecting the entry navigates anywhere.
func (e Entry) HasTarget() bool {
	return e.Target != ""
}

// Observer is notified after every non-empty search.
type Observer interface {
	ObserveSearch(matched, returned int)
}

// BuildEntries turns a collection into search entries, expanding the title and
// target of every record.
func BuildEntries(c Collection) ([]Entry, error) {
	titleField := c.TitleField
	if titleField == "" {
		titleField = "title"
	}
	placeholders := placeholderPattern.FindAllStringSubmatch(c.Target, -1)

	entries := make([]Entry, 0, len(c.Records))
	for i, record := range c.Records {
		target := c.Target
		for _, match := range placeholders {
			value, ok := record[match[1]]
			if !ok || value == nil {
				return nil, fmt.Errorf("collection %s record %d: %w %q", c.Name, i, ErrUnknownPlaceholder, match[0])
			}
			target = strings.ReplaceAll(target, match[0], query.ToText(value))
		}
		icon := c.Icon
		if own, ok := record["icon"].(string); ok && own != "" {
			icon = own
		}
		entries = append(entries, Entry{
			Source:   c.Name,
			Record:   record,
			Title:    query.ToText(record[titleField]),
			Icon:     icon,
			Category: c.Category,
			Target:   target,
		})
	}
	return entries, nil
}

// Search matches query against the entry titles of each collection, keeps the
// collections in the given order and truncates the concatenation to limit.
// Because truncation happens after concatenation, an early collection with
// many matches can hide every match of a later one.
func Search(collections [][]Entry, q string, limit int) []Entry {
	results, _ := search(collections, q, limit)
	return results
}

// search also returns the number of matches before truncation.
func search(collections [][]Entry, q string, limit int) ([]Entry, int) {
	needle := query.NormalizeSearch(q)
	if needle == "" {
		return []Entry{}, 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var matched []Entry
	for _, entries := range collections {
		for _, entry := range entries {
			if strings.Contains(strings.ToLower(entry.Title), needle) {
				matched = append(matched, entry)
			}
		}
	}
	total := len(matched)
	if total > limit {
		matched = matched[:limit]
	}
	if matched == nil {
		matched = []Entry{}
	}
	return matched, total
}

// Index holds the registered collections in registration order.
type Index struct {
	logger   *zap.Logger
	limit    int
	observer Observer

	mu          sync.RWMutex
	names       []string
	collections [][]Entry
}

// NewIndex creates an empty index. limit is the default result cap; values
// <= 0 select DefaultLimit.
func NewIndex(logger *zap.Logger, limit int) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Index{logger: logger, limit: limit}
}

// WithObserver attaches an observer notified after every search.
func (idx *Index) WithObserver(observer Observer) *Index {
	idx.observer = observer
	return idx
}

// Register adds a collection after all previously registered ones. Its
// position decides the display priority of its results.
func (idx *Index) Register(c Collection) error {
	entries, err := BuildEntries(c)
	if err != nil {
		return fmt.Errorf("failed to register collection %s: %w", c.Name, err)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, name := range idx.names {
		if name == c.Name {
			return fmt.Errorf("failed to register collection %s: %w", c.Name, ErrDuplicateCollection)
		}
	}
	idx.names = append(idx.names, c.Name)
	idx.collections = append(idx.collections, entries)

	idx.logger.Info("Registered search collection", zap.String("name", c.Name), zap.Int("entries", len(entries)))
	return nil
}

// Collections returns the registered collection names in priority order.
func (idx *Index) Collections() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]string(nil), idx.names...)
}

// Limit returns the default result cap.
func (idx *Index) Limit() int {
	return idx.limit
}

// Search runs q over every registered collection. limit <= 0 selects the
// index default.
func (idx *Index) Search(q string, limit int) []Entry {
	if limit <= 0 {
		limit = idx.limit
	}

	idx.mu.RLock()
	results, total := search(idx.collections, q, limit)
	idx.mu.RUnlock()

	if strings.TrimSpace(q) == "" {
		return results
	}
	idx.logger.Debug("Search completed",
		zap.String("query", q),
		zap.Int("matched", total),
		zap.Int("returned", len(results)),
	)
	if total > len(results) {
		idx.logger.Debug("Search results truncated", zap.Int("dropped", total-len(results)))
	}
	if idx.observer != nil {
		idx.observer.ObserveSearch(total, len(results))
	}
	return results
}
