package query

import (
	"testing"

	"github.com/asaidimu/go-lister/core/schema"
	"github.com/stretchr/testify/assert"
)

func adminUsers() []schema.Record {
	return []schema.Record{
		{"id": 1, "name": "Alex Johnson", "role": "student", "status": "active"},
		{"id": 2, "name": "Sarah Williams", "role": "instructor", "status": "active"},
		{"id": 3, "name": "Michael Brown", "role": "student", "status": "active"},
		{"id": 4, "name": "Emma Davis", "role": "student", "status": "inactive"},
		{"id": 5, "name": "David Miller", "role": "student", "status": "inactive"},
		{"id": 6, "name": "Lisa Anderson", "role": "admin", "status": "active"},
	}
}

func TestAggregate_Percentage(t *testing.T) {
	users := adminUsers()

	t.Run("rounded share of the total", func(t *testing.T) {
		result := Aggregate(users, users, []AggregateSpec{
			Percentage("active", FilterCriteria{"status": "active"}),
		})
		assert.Equal(t, 67.0, result["active"])
	})

	t.Run("empty total yields zero", func(t *testing.T) {
		result := Aggregate(nil, nil, []AggregateSpec{
			Percentage("active", FilterCriteria{"status": "active"}),
		})
		assert.Equal(t, 0.0, result["active"])
	})

	t.Run("filtered numerator keeps total denominator", func(t *testing.T) {
		students := Query(users, FilterCriteria{"role": "student"}, "", nil, nil)
		result := Aggregate(students, users, []AggregateSpec{
			Percentage("activeStudents", FilterCriteria{"status": "active"}),
			Percentage("active", FilterCriteria{"status": "active"}).Global(),
		})
		assert.Equal(t, 33.0, result["activeStudents"])
		assert.Equal(t, 67.0, result["active"])
	})
}

func TestAggregate_Reductions(t *testing.T) {
	payments := []schema.Record{
		{"id": "PAY001", "amount": 89.99, "status": "completed"},
		{"id": "PAY002", "amount": 79.99, "status": "completed"},
		{"id": "PAY003", "amount": 94.99, "status": "pending"},
		{"id": "PAY004", "amount": 69.99, "status": "failed"},
		{"id": "PAY005", "status": "completed"},
	}

	result := Aggregate(payments, payments, []AggregateSpec{
		Count("count"),
		CountWhere("pending", FilterCriteria{"status": "pending"}),
		Sum("revenue", "amount").Filter(FilterCriteria{"status": "completed"}),
		Avg("average", "amount"),
		Count("completed").Filter(FilterCriteria{"status": "completed"}),
	})

	assert.Equal(t, 5.0, result["count"])
	assert.Equal(t, 1.0, result["pending"])
	assert.InDelta(t, 169.98, result["revenue"], 1e-9)
	assert.InDelta(t, 334.96/5, result["average"], 1e-9)
	assert.Equal(t, 3.0, result["completed"])
}

func TestAggregate_EmptySets(t *testing.T) {
	result := Aggregate(nil, nil, []AggregateSpec{
		Count("count"),
		Sum("sum", "amount"),
		Avg("avg", "amount"),
		CountWhere("where", FilterCriteria{"status": "active"}),
	})
	assert.Equal(t, map[string]float64{"count": 0, "sum": 0, "avg": 0, "where": 0}, result)
}

func TestAggregate_UnknownTypeIsSkipped(t *testing.T) {
	result := Aggregate(adminUsers(), adminUsers(), []AggregateSpec{
		{Name: "median", Type: "median", Field: "id"},
		Count("count"),
	})
	assert.NotContains(t, result, "median")
	assert.Equal(t, 6.0, result["count"])
}

func TestDistinct(t *testing.T) {
	values := Distinct(courses(), "category")
	assert.Equal(t, []any{"Development", "Design", "Data Science", "Marketing", "Business"}, values)

	assert.Empty(t, Distinct(nil, "category"))
	assert.Equal(t, []any{1}, Distinct([]schema.Record{{"n": 1}, {"n": 1.0}, {}}, "n"))
}
