package query

import (
	"maps"
	"slices"
)

// QueryBuilder provides a fluent API for building ListQuery values. Screens use
// it to describe their default query and tests use it to state scenarios.
type QueryBuilder struct {
	query ListQuery
}

// NewQueryBuilder creates a new, empty query builder instance.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		query: ListQuery{Criteria: FilterCriteria{}},
	}
}

// Build returns a copy of the constructed ListQuery. Later calls on the builder
// do not affect queries already built.
func (qb *QueryBuilder) Build() ListQuery {
	return cloneQuery(qb.query)
}

// Clone creates a deep copy of the current query builder, allowing for the creation
// of new queries based on an existing one without modifying the original.
func (qb *QueryBuilder) Clone() *QueryBuilder {
	return &QueryBuilder{query: cloneQuery(qb.query)}
}

// Reset clears all configurations from the query builder, returning it to its initial state.
func (qb *QueryBuilder) Reset() *QueryBuilder {
	qb.query = ListQuery{Criteria: FilterCriteria{}}
	return qb
}

// FilterConditionBuilder is used to build a single filter condition (field = value).
type FilterConditionBuilder struct {
	parent *QueryBuilder
	field  string
}

// Where begins the construction of a filter condition for a specific field.
func (qb *QueryBuilder) Where(field string) *FilterConditionBuilder {
	return &FilterConditionBuilder{parent: qb, field: field}
}

// Eq requires the field to equal value. A sentinel value ("all", "any") or nil
// leaves the field unconstrained.
func (fcb *FilterConditionBuilder) Eq(value FilterValue) *QueryBuilder {
	fcb.parent.query.Criteria[fcb.field] = value
	return fcb.parent
}

// Any removes the condition on the field.
func (fcb *FilterConditionBuilder) Any() *QueryBuilder {
	delete(fcb.parent.query.Criteria, fcb.field)
	return fcb.parent
}

// Search sets the free-text search string.
func (qb *QueryBuilder) Search(text string) *QueryBuilder {
	qb.query.Search = text
	return qb
}

// SearchIn sets the fields the search inspects.
func (qb *QueryBuilder) SearchIn(fields ...string) *QueryBuilder {
	qb.query.SearchFields = slices.Clone(fields)
	return qb
}

// OrderBy sets the single sort key, replacing any previous one.
func (qb *QueryBuilder) OrderBy(field string, direction SortDirection, rule SortRule) *QueryBuilder {
	qb.query.Sort = &SortSpec{Field: field, Direction: direction, Rule: rule}
	return qb
}

// OrderByAsc adds an ascending sort on the field.
func (qb *QueryBuilder) OrderByAsc(field string, rule SortRule) *QueryBuilder {
	return qb.OrderBy(field, SortDirectionAsc, rule)
}

// OrderByDesc adds a descending sort on the field.
func (qb *QueryBuilder) OrderByDesc(field string, rule SortRule) *QueryBuilder {
	return qb.OrderBy(field, SortDirectionDesc, rule)
}

// Unordered drops the sort key so results keep dataset order.
func (qb *QueryBuilder) Unordered() *QueryBuilder {
	qb.query.Sort = nil
	return qb
}

func cloneQuery(q ListQuery) ListQuery {
	out := ListQuery{
		Criteria:     maps.Clone(q.Criteria),
		Search:       q.Search,
		SearchFields: slices.Clone(q.SearchFields),
	}
	if out.Criteria == nil {
		out.Criteria = FilterCriteria{}
	}
	if q.Sort != nil {
		sort := *q.Sort
		out.Sort = &sort
	}
	return out
}
