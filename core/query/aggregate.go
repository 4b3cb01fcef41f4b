package query

import (
	"math"

	"github.com/asaidimu/go-lister/core/schema"
	"go.uber.org/zap"
)

// Aggregate computes the named reductions. filtered is the current query
// result and total the full dataset; each spec runs over the set its Scope
// selects. Percentages always divide by the size of total.
func (e *Engine) Aggregate(filtered, total []schema.Record, specs []AggregateSpec) map[string]float64 {
	result := make(map[string]float64, len(specs))
	for _, spec := range specs {
		records := filtered
		if spec.Scope == ScopeTotal {
			records = total
		}
		value, ok := reduce(records, total, spec)
		if !ok {
			e.logger.Warn("Skipping unknown aggregation", zap.String("name", spec.Name), zap.String("type", string(spec.Type)))
			continue
		}
		result[spec.Name] = value
	}
	return result
}

// Aggregate is the functional form of Engine.Aggregate.
func Aggregate(filtered, total []schema.Record, specs []AggregateSpec) map[string]float64 {
	return defaultEngine.Aggregate(filtered, total, specs)
}

func reduce(records, total []schema.Record, spec AggregateSpec) (float64, bool) {
	where := spec.Where.Active()

	switch spec.Type {
	case AggregationTypeCount:
		if len(where) == 0 {
			return float64(len(records)), true
		}
		return float64(countMatching(records, where)), true

	case AggregationTypeCountWhere:
		return float64(countMatching(records, where)), true

	case AggregationTypeSum:
		sum, _ := sumField(records, spec.Field, where)
		return sum, true

	case AggregationTypeAvg:
		sum, n := sumField(records, spec.Field, where)
		if n == 0 {
			return 0, true
		}
		return sum / float64(n), true

	case AggregationTypePercentage:
		if len(total) == 0 {
			return 0, true
		}
		return math.Round(100 * float64(countMatching(records, where)) / float64(len(total))), true
	}
	return 0, false
}

func countMatching(records []schema.Record, where FilterCriteria) int {
	n := 0
	for _, record := range records {
		if matchesCriteria(record, where) {
			n++
		}
	}
	return n
}

// sumField adds up field over the records matching where. Missing or
// non-numeric values count as 0 but still count towards n.
func sumField(records []schema.Record, field string, where FilterCriteria) (sum float64, n int) {
	for _, record := range records {
		if !matchesCriteria(record, where) {
			continue
		}
		if v, ok := ToFloat64(record[field]); ok {
			sum += v
		}
		n++
	}
	return sum, n
}

// Distinct returns the distinct values of field in first-seen order. Records
// without the field are skipped.
func Distinct(records []schema.Record, field string) []any {
	seen := make(map[string]struct{})
	values := make([]any, 0)
	for _, record := range records {
		value, ok := record[field]
		if !ok || value == nil {
			continue
		}
		key := schema.KeyOf(value)
		if key == "" {
			key = ToText(value)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		values = append(values, value)
	}
	return values
}
