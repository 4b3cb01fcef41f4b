package query

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/asaidimu/go-lister/core/schema"
	"go.uber.org/zap"
)

// Engine evaluates listing queries against in-memory datasets. It holds no
// per-dataset state, so one engine can serve every screen.
type Engine struct {
	logger   *zap.Logger
	observer Observer
}

// NewEngine creates a new Engine instance.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// WithObserver attaches an observer notified after every query.
func (e *Engine) WithObserver(observer Observer) *Engine {
	e.observer = observer
	return e
}

// defaultEngine backs the package-level helpers.
var defaultEngine = NewEngine(nil)

// Query is the functional form of Engine.Query for callers that hold their
// query state as separate values.
func Query(dataset []schema.Record, criteria FilterCriteria, search string, searchFields []string, sort *SortSpec) []schema.Record {
	return defaultEngine.Query(dataset, ListQuery{
		Criteria:     criteria,
		Search:       search,
		SearchFields: searchFields,
		Sort:         sort,
	})
}

// Query returns the records of dataset selected by q, in result order. The
// result is always a new slice; dataset and its records are never modified.
func (e *Engine) Query(dataset []schema.Record, q ListQuery) []schema.Record {
	positions := e.Select(dataset, q)
	result := make([]schema.Record, len(positions))
	for i, pos := range positions {
		result[i] = dataset[pos]
	}
	return result
}

// Select returns the positions in dataset of the records selected by q, in
// result order. Filters are applied first, then the search, then the stable
// sort.
func (e *Engine) Select(dataset []schema.Record, q ListQuery) []int {
	start := time.Now()

	criteria := q.Criteria.Active()
	positions := make([]int, 0, len(dataset))
	for i, record := range dataset {
		if matchesCriteria(record, criteria) {
			positions = append(positions, i)
		}
	}
	e.logger.Debug("Rows remaining after filters", zap.Int("count", len(positions)))

	if needle := NormalizeSearch(q.Search); needle != "" {
		positions = slices.DeleteFunc(positions, func(pos int) bool {
			return !matchesSearch(dataset[pos], needle, q.SearchFields)
		})
		e.logger.Debug("Rows remaining after search", zap.String("search", needle), zap.Int("count", len(positions)))
	}

	if q.Sort != nil && q.Sort.Field != "" {
		sortPositions(dataset, positions, *q.Sort)
	}

	if e.observer != nil {
		e.observer.ObserveQuery(len(dataset), len(positions), time.Since(start))
	}
	return positions
}

// Match reports whether a single record passes the filters and search of q.
func (e *Engine) Match(record schema.Record, q ListQuery) bool {
	if !matchesCriteria(record, q.Criteria.Active()) {
		return false
	}
	needle := NormalizeSearch(q.Search)
	return needle == "" || matchesSearch(record, needle, q.SearchFields)
}

// Run executes q and computes aggregates over its result, with dataset as the
// total for percentages and global specs.
func (e *Engine) Run(dataset []schema.Record, q ListQuery, specs []AggregateSpec) *QueryResult {
	records := e.Query(dataset, q)
	return &QueryResult{
		Data:         records,
		Count:        len(records),
		Total:        len(dataset),
		Aggregations: e.Aggregate(records, dataset, specs),
	}
}

// matchesCriteria applies the AND of all equality filters. Callers pass
// criteria with wildcards already removed.
func matchesCriteria(record schema.Record, criteria FilterCriteria) bool {
	for field, want := range criteria {
		got, ok := record[field]
		if !ok || !Equal(got, want) {
			return false
		}
	}
	return true
}

// matchesSearch applies the OR of substring containment over fields. needle
// must already be normalized.
func matchesSearch(record schema.Record, needle string, fields []string) bool {
	for _, field := range fields {
		value, ok := record[field]
		if !ok || value == nil {
			continue
		}
		if strings.Contains(strings.ToLower(ToText(value)), needle) {
			return true
		}
	}
	return false
}

// sortPositions stable-sorts positions by the spec's field.
func sortPositions(dataset []schema.Record, positions []int, spec SortSpec) {
	rule := spec.Rule
	if rule == "" {
		rule = inferRule(dataset, positions, spec.Field)
	}
	slices.SortStableFunc(positions, func(a, b int) int {
		c := compareValues(dataset[a][spec.Field], dataset[b][spec.Field], rule)
		if spec.Direction == SortDirectionDesc {
			return -c
		}
		return c
	})
}

// inferRule picks one rule for a whole sort: numeric when every non-nil value
// of field is a number, lexicographic otherwise.
func inferRule(dataset []schema.Record, positions []int, field string) SortRule {
	seen := false
	for _, pos := range positions {
		v := dataset[pos][field]
		if v == nil {
			continue
		}
		if _, ok := schema.Number(v); !ok {
			return SortRuleLexicographic
		}
		seen = true
	}
	if seen {
		return SortRuleNumeric
	}
	return SortRuleLexicographic
}

// compareValues orders two field values under rule.
func compareValues(a, b any, rule SortRule) int {
	if rule == SortRuleNumeric {
		x, _ := ToFloat64(a)
		y, _ := ToFloat64(b)
		return cmp.Compare(x, y)
	}
	return strings.Compare(ToText(a), ToText(b))
}
