// Package listing provides the query state behind a single list screen: the
// selected filters, the search text and the sort key, together with the view
// they produce over a dataset collection.
package listing

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/asaidimu/go-lister/core/dataset"
	"github.com/asaidimu/go-lister/core/query"
	"github.com/asaidimu/go-lister/core/schema"
	"github.com/asaidimu/go-lister/utils"
	"go.uber.org/zap"
)

// ErrUnknownPreset is returned by SetSortPreset for an unregistered name.
var ErrUnknownPreset = errors.New("unknown sort preset")

// Names of the default sort presets, as offered by the enrolled courses screen.
const (
	PresetRecent   = "recent"
	PresetProgress = "progress"
	PresetTitle    = "title"
)

// DefaultPresets returns the sort presets used when Config.Presets is nil. A
// nil spec keeps dataset order.
func DefaultPresets() map[string]*query.SortSpec {
	return map[string]*query.SortSpec{
		PresetRecent:   nil,
		PresetProgress: {Field: "progress", Direction: query.SortDirectionDesc, Rule: query.SortRuleNumeric},
		PresetTitle:    {Field: "title", Direction: query.SortDirectionAsc, Rule: query.SortRuleLexicographic},
	}
}

// Decoder converts a record into the item type a screen renders.
type Decoder[T any] func(schema.Record) (T, error)

// RecordDecoder returns records unchanged. It is the default for
// State[schema.Record].
func RecordDecoder(r schema.Record) (schema.Record, error) {
	return r, nil
}

// Config configures a State.
type Config[T any] struct {
	Collection *dataset.Collection
	// SearchFields defaults to the shape's search fields.
	SearchFields []string
	// Stats are recomputed on every view change.
	Stats []query.AggregateSpec
	// Decoder defaults to utils.RecordToStruct[T].
	Decoder     Decoder[T]
	DefaultSort *query.SortSpec
	// Presets maps preset names to sort keys. Defaults to DefaultPresets().
	Presets map[string]*query.SortSpec
	Engine  *query.Engine
	Logger  *zap.Logger
}

// View is what a list screen renders.
type View[T any] struct {
	Items   []T
	Records []schema.Record
	// Count is the number of records shown; Total the size of the dataset.
	Count int
	Total int
	Stats map[string]float64
	// Empty reports that nothing matched. Together with Filtered it separates
	// "no results for this query" from "nothing to list".
	Empty    bool
	Filtered bool
}

// clone copies the slices and stats map so callers never share them with the
// cached view. Records themselves are immutable and stay shared.
func (v View[T]) clone() View[T] {
	v.Items = slices.Clone(v.Items)
	v.Records = slices.Clone(v.Records)
	v.Stats = maps.Clone(v.Stats)
	return v
}

// NoResults reports whether an active query matched nothing.
func (v View[T]) NoResults() bool {
	return v.Empty && v.Filtered
}

// State is the filter, search and sort state of one list screen.
type State[T any] struct {
	collection   *dataset.Collection
	shape        *schema.Shape
	searchFields []string
	stats        []query.AggregateSpec
	decode       Decoder[T]
	defaultSort  *query.SortSpec
	presets      map[string]*query.SortSpec
	engine       *query.Engine
	memo         *query.Memo
	logger       *zap.Logger

	mu       sync.Mutex
	criteria query.FilterCriteria
	search   string
	sort     *query.SortSpec
	revision uint64

	cached        *View[T]
	cachedVersion uint64
	cachedRev     uint64
}

// New creates the state of a list screen over cfg.Collection.
func New[T any](cfg Config[T]) (*State[T], error) {
	if cfg.Collection == nil {
		return nil, fmt.Errorf("listing requires a collection")
	}
	shape := cfg.Collection.Shape()

	engine := cfg.Engine
	if engine == nil {
		engine = query.NewEngine(cfg.Logger)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	searchFields := cfg.SearchFields
	if searchFields == nil {
		searchFields = shape.SearchFields
	}
	presets := cfg.Presets
	if presets == nil {
		presets = DefaultPresets()
	}
	decode := cfg.Decoder
	if decode == nil {
		if d, ok := any(Decoder[schema.Record](RecordDecoder)).(Decoder[T]); ok {
			decode = d
		} else {
			decode = utils.RecordToStruct[T]
		}
	}

	probe := query.ListQuery{SearchFields: searchFields, Sort: cfg.DefaultSort}
	if err := probe.Validate(shape); err != nil {
		return nil, fmt.Errorf("listing %s: %w", shape.Name, err)
	}
	valid := make(map[string]*query.SortSpec, len(presets))
	for name, spec := range presets {
		if spec != nil {
			if err := (query.ListQuery{Sort: spec}).Validate(shape); err != nil {
				// Presets name fields that only some screens have.
				logger.Debug("Dropping sort preset", zap.String("listing", shape.Name), zap.String("preset", name), zap.Error(err))
				continue
			}
		}
		valid[name] = resolveSort(shape, spec)
	}

	s := &State[T]{
		collection:   cfg.Collection,
		shape:        shape,
		searchFields: slices.Clone(searchFields),
		stats:        slices.Clone(cfg.Stats),
		decode:       decode,
		defaultSort:  resolveSort(shape, cfg.DefaultSort),
		presets:      valid,
		engine:       engine,
		memo:         query.NewMemo(engine),
		logger:       logger,
		criteria:     query.FilterCriteria{},
	}
	s.sort = copySort(s.defaultSort)
	return s, nil
}

func copySort(spec *query.SortSpec) *query.SortSpec {
	if spec == nil {
		return nil
	}
	c := *spec
	return &c
}

// resolveSort copies spec with an empty rule taken from the field type.
func resolveSort(shape *schema.Shape, spec *query.SortSpec) *query.SortSpec {
	if spec == nil {
		return nil
	}
	c := spec.Resolve(shape)
	return &c
}

// changed must be called with the lock held after every state change.
func (s *State[T]) changed() {
	s.revision++
}

// SetFilter constrains field to value. Sentinel values ("all", "any", nil)
// clear the constraint instead.
func (s *State[T]) SetFilter(field string, value query.FilterValue) error {
	if query.IsWildcard(value) {
		s.ClearFilter(field)
		return nil
	}
	if !s.shape.HasField(field) {
		return fmt.Errorf("filter on %s.%s: %w", s.shape.Name, field, query.ErrUnknownField)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria[field] = value
	s.changed()
	return nil
}

// ClearFilter removes the constraint on field.
func (s *State[T]) ClearFilter(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.criteria[field]; ok {
		delete(s.criteria, field)
		s.changed()
	}
}

// SetSearch replaces the search text.
func (s *State[T]) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.search != text {
		s.search = text
		s.changed()
	}
}

// SetSort replaces the sort key.
func (s *State[T]) SetSort(spec query.SortSpec) error {
	if err := (query.ListQuery{Sort: &spec}).Validate(s.shape); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = resolveSort(s.shape, &spec)
	s.changed()
	return nil
}

// ClearSort drops the sort key so the dataset order is shown.
func (s *State[T]) ClearSort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = nil
	s.changed()
}

// SetSortPreset selects one of the configured sort presets by name.
func (s *State[T]) SetSortPreset(name string) error {
	spec, ok := s.presets[name]
	if !ok {
		return fmt.Errorf("%s: %w %q", s.shape.Name, ErrUnknownPreset, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = copySort(spec)
	s.changed()
	return nil
}

// Presets returns the names of the available sort presets in sorted order.
func (s *State[T]) Presets() []string {
	return slices.Sorted(maps.Keys(s.presets))
}

// Reset returns to no filters, no search and the default sort.
func (s *State[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = query.FilterCriteria{}
	s.search = ""
	s.sort = copySort(s.defaultSort)
	s.changed()
}

// Query returns the current state as a ListQuery.
func (s *State[T]) Query() query.ListQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryLocked()
}

func (s *State[T]) queryLocked() query.ListQuery {
	return query.ListQuery{
		Criteria:     maps.Clone(s.criteria),
		Search:       s.search,
		SearchFields: slices.Clone(s.searchFields),
		Sort:         copySort(s.sort),
	}
}

// View runs the current query against the current contents of the collection.
// Repeated calls without a state or dataset change return the same view.
func (s *State[T]) View() (View[T], error) {
	records, version := s.collection.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.cachedVersion == version && s.cachedRev == s.revision {
		return s.cached.clone(), nil
	}

	q := s.queryLocked()
	positions := s.memo.Select(records, version, q)

	view := View[T]{
		Items:    make([]T, 0, len(positions)),
		Records:  make([]schema.Record, 0, len(positions)),
		Count:    len(positions),
		Total:    len(records),
		Empty:    len(positions) == 0,
		Filtered: len(q.Criteria.Active()) > 0 || query.NormalizeSearch(q.Search) != "",
	}
	for _, pos := range positions {
		record := records[pos]
		item, err := s.decode(record)
		if err != nil {
			return View[T]{}, fmt.Errorf("listing %s: failed to decode record %d: %w", s.shape.Name, pos, err)
		}
		view.Records = append(view.Records, record)
		view.Items = append(view.Items, item)
	}
	view.Stats = s.engine.Aggregate(view.Records, records, s.stats)

	s.logger.Debug("Listing view computed",
		zap.String("listing", s.shape.Name),
		zap.Int("count", view.Count),
		zap.Int("total", view.Total),
	)

	s.cached = &view
	s.cachedVersion = version
	s.cachedRev = s.revision
	return view.clone(), nil
}
