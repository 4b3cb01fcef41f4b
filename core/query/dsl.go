// Package query defines the listing query language shared by every list
// screen: equality filters, a free-text substring search over selected fields,
// a single stable sort key and named aggregate reductions over the result.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/asaidimu/go-lister/core/schema"
)

// Errors reported by ListQuery.Validate. They describe integration mistakes
// (a screen wired to a field its shape does not have) and are never produced
// while running a query.
var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidSort  = errors.New("invalid sort specification")
)

// Sentinel filter values meaning "do not filter on this field".
const (
	AnyValue = "any"
	AllValue = "all"
)

// FilterValue represents the value used in a filter condition.
type FilterValue any

// FilterCriteria maps a field name to the value a record must equal. A record
// matches when it equals every non-wildcard entry.
type FilterCriteria map[string]FilterValue

// IsWildcard reports whether v disables its filter entry: nil, "any" or "all"
// in any letter case.
func IsWildcard(v FilterValue) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, AnyValue) || strings.EqualFold(s, AllValue)
}

// Active returns the entries that actually constrain the result.
func (c FilterCriteria) Active() FilterCriteria {
	active := make(FilterCriteria, len(c))
	for field, value := range c {
		if !IsWildcard(value) {
			active[field] = value
		}
	}
	return active
}

// Fields returns the constrained field names in sorted order.
func (c FilterCriteria) Fields() []string {
	fields := make([]string, 0, len(c))
	for field, value := range c {
		if !IsWildcard(value) {
			fields = append(fields, field)
		}
	}
	slices.Sort(fields)
	return fields
}

// SortDirection specifies the direction for sorting.
type SortDirection string

// Supported sort directions.
const (
	SortDirectionAsc  SortDirection = "asc"
	SortDirectionDesc SortDirection = "desc"
)

// SortRule selects how two field values compare.
type SortRule string

const (
	// SortRuleNumeric compares values as numbers; missing or non-numeric values count as 0.
	SortRuleNumeric SortRule = "numeric"
	// SortRuleLexicographic compares the text form of values byte-wise, independent of locale.
	SortRuleLexicographic SortRule = "lexicographic"
)

// SortSpec defines the single active sort key of a listing.
type SortSpec struct {
	Field     string
	Direction SortDirection
	Rule      SortRule
}

// ListQuery is the full query state of a list screen.
type ListQuery struct {
	Criteria     FilterCriteria `json:",omitempty"`
	Search       string         `json:",omitempty"`
	SearchFields []string       `json:",omitempty"`
	Sort         *SortSpec      `json:",omitempty"`
}

// NormalizeSearch trims and lowercases a search string.
func NormalizeSearch(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RuleFor returns the rule that orders field of shape: numeric for number and
// integer fields, lexicographic otherwise. It returns "" when the shape does
// not define the field.
func RuleFor(shape *schema.Shape, field string) SortRule {
	def := shape.FindField(field)
	if def == nil {
		return ""
	}
	switch def.Type {
	case schema.FieldTypeNumber, schema.FieldTypeInteger:
		return SortRuleNumeric
	}
	return SortRuleLexicographic
}

// Resolve returns a copy of s with an empty rule taken from the field type in
// shape.
func (s SortSpec) Resolve(shape *schema.Shape) SortSpec {
	if s.Rule == "" {
		s.Rule = RuleFor(shape, s.Field)
	}
	return s
}

// Validate checks every field the query references against the shape.
func (q ListQuery) Validate(shape *schema.Shape) error {
	for _, field := range q.Criteria.Fields() {
		if !shape.HasField(field) {
			return fmt.Errorf("filter on %s.%s: %w", shape.Name, field, ErrUnknownField)
		}
	}
	for _, field := range q.SearchFields {
		if !shape.HasField(field) {
			return fmt.Errorf("search on %s.%s: %w", shape.Name, field, ErrUnknownField)
		}
	}
	if q.Sort != nil {
		if !shape.HasField(q.Sort.Field) {
			return fmt.Errorf("sort on %s.%s: %w", shape.Name, q.Sort.Field, ErrUnknownField)
		}
		if q.Sort.Direction != SortDirectionAsc && q.Sort.Direction != SortDirectionDesc {
			return fmt.Errorf("direction %q: %w", q.Sort.Direction, ErrInvalidSort)
		}
		switch q.Sort.Rule {
		case "", SortRuleNumeric, SortRuleLexicographic:
		default:
			return fmt.Errorf("rule %q: %w", q.Sort.Rule, ErrInvalidSort)
		}
	}
	return nil
}

// Fingerprint returns a canonical string for the query. Two queries with the
// same fingerprint select the same records from the same dataset.
func (q ListQuery) Fingerprint() string {
	canonical := struct {
		Criteria FilterCriteria
		Search   string
		Fields   []string
		Sort     *SortSpec
	}{
		Criteria: q.Criteria.Active(),
		Search:   NormalizeSearch(q.Search),
		Sort:     q.Sort,
	}
	if canonical.Search != "" {
		canonical.Fields = q.SearchFields
	}
	data, err := json.Marshal(canonical)
	if err != nil {
		// Criteria values that cannot be encoded still get a usable key.
		return fmt.Sprintf("%#v", canonical)
	}
	return string(data)
}

// AggregationType specifies the type of reduction to perform.
type AggregationType string

// Supported aggregation types.
const (
	AggregationTypeCount      AggregationType = "count"
	AggregationTypeCountWhere AggregationType = "count_where"
	AggregationTypeSum        AggregationType = "sum"
	AggregationTypeAvg        AggregationType = "avg"
	AggregationTypePercentage AggregationType = "percentage"
)

// AggregateScope selects which record set a reduction runs over.
type AggregateScope string

const (
	// ScopeFiltered reduces over the current query result. This is the default.
	ScopeFiltered AggregateScope = "filtered"
	// ScopeTotal reduces over the whole dataset ("global" stats).
	ScopeTotal AggregateScope = "total"
)

// AggregateSpec defines a named reduction.
type AggregateSpec struct {
	Name  string
	Type  AggregationType
	Field string
	// Where restricts the reduction to records matching these criteria. It is
	// the predicate of percentage and count_where.
	Where FilterCriteria `json:",omitempty"`
	Scope AggregateScope `json:",omitempty"`
}

// Count counts the records of the result.
func Count(name string) AggregateSpec {
	return AggregateSpec{Name: name, Type: AggregationTypeCount}
}

// CountWhere counts the records of the result matching where.
func CountWhere(name string, where FilterCriteria) AggregateSpec {
	return AggregateSpec{Name: name, Type: AggregationTypeCountWhere, Where: where}
}

// Sum adds up a numeric field.
func Sum(name, field string) AggregateSpec {
	return AggregateSpec{Name: name, Type: AggregationTypeSum, Field: field}
}

// Avg averages a numeric field.
func Avg(name, field string) AggregateSpec {
	return AggregateSpec{Name: name, Type: AggregationTypeAvg, Field: field}
}

// Percentage is round(100 * matching / total).
func Percentage(name string, where FilterCriteria) AggregateSpec {
	return AggregateSpec{Name: name, Type: AggregationTypePercentage, Where: where}
}

// Global returns a copy of the spec evaluated over the whole dataset.
func (a AggregateSpec) Global() AggregateSpec {
	a.Scope = ScopeTotal
	return a
}

// Filter returns a copy of the spec restricted to records matching where.
func (a AggregateSpec) Filter(where FilterCriteria) AggregateSpec {
	a.Where = where
	return a
}

// QueryResult is the view-model produced for a list screen.
type QueryResult struct {
	Data         []schema.Record    `json:"data"`
	Count        int                `json:"count"`
	Total        int                `json:"total"`
	Aggregations map[string]float64 `json:",omitempty"`
}
