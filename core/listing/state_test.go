package listing

import (
	"testing"

	"github.com/asaidimu/go-lister/core/dataset"
	"github.com/asaidimu/go-lister/core/query"
	"github.com/asaidimu/go-lister/core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enrolledCourse struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Progress float64 `json:"progress"`
	Status   string  `json:"status"`
}

func enrolledShape() *schema.Shape {
	return &schema.Shape{
		Name: "enrolled",
		Fields: map[string]*schema.FieldDefinition{
			"id":       {Name: "id", Type: schema.FieldTypeInteger},
			"title":    {Name: "title", Type: schema.FieldTypeString},
			"category": {Name: "category", Type: schema.FieldTypeString},
			"progress": {Name: "progress", Type: schema.FieldTypeNumber},
			"status":   {Name: "status", Type: schema.FieldTypeEnum, Values: []any{"in-progress", "completed"}},
		},
		SearchFields: []string{"title"},
	}
}

func enrolledData() []schema.Record {
	return []schema.Record{
		{"id": 1, "title": "Complete Web Development Bootcamp", "category": "Development", "progress": 65, "status": "in-progress"},
		{"id": 2, "title": "UI/UX Design Masterclass", "category": "Design", "progress": 100, "status": "completed"},
		{"id": 3, "title": "Advanced React Patterns", "category": "Development", "progress": 30, "status": "in-progress"},
		{"id": 4, "title": "Data Science with Python", "category": "Data Science", "progress": 100, "status": "completed"},
	}
}

func enrolledStats() []query.AggregateSpec {
	return []query.AggregateSpec{
		query.Count("shown"),
		query.CountWhere("completed", query.FilterCriteria{"status": "completed"}).Global(),
		query.CountWhere("inProgress", query.FilterCriteria{"status": "in-progress"}).Global(),
		query.Avg("avgProgress", "progress").Global(),
	}
}

func newEnrolled(t *testing.T) (*State[enrolledCourse], *dataset.Collection) {
	t.Helper()
	collection, err := dataset.NewCollection(enrolledShape(), enrolledData(), dataset.Options{Noun: "Course", LabelField: "title"})
	require.NoError(t, err)
	state, err := New(Config[enrolledCourse]{Collection: collection, Stats: enrolledStats()})
	require.NoError(t, err)
	return state, collection
}

func itemIDs(items []enrolledCourse) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestState_InitialView(t *testing.T) {
	state, _ := newEnrolled(t)
	view, err := state.View()
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4}, itemIDs(view.Items))
	assert.Equal(t, "UI/UX Design Masterclass", view.Items[1].Title)
	assert.Equal(t, 4, view.Count)
	assert.Equal(t, 4, view.Total)
	assert.False(t, view.Empty)
	assert.False(t, view.Filtered)
	assert.Equal(t, 4.0, view.Stats["shown"])
	assert.Equal(t, 2.0, view.Stats["completed"])
	assert.Equal(t, 2.0, view.Stats["inProgress"])
	assert.Equal(t, 73.75, view.Stats["avgProgress"])
}

func TestState_FiltersAndSearch(t *testing.T) {
	state, _ := newEnrolled(t)

	require.NoError(t, state.SetFilter("category", "Development"))
	view, err := state.View()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, itemIDs(view.Items))
	assert.True(t, view.Filtered)
	assert.Equal(t, 2.0, view.Stats["shown"])
	assert.Equal(t, 2.0, view.Stats["completed"], "global stats ignore the filters")

	state.SetSearch("REACT")
	view, err = state.View()
	require.NoError(t, err)
	assert.Equal(t, []int{3}, itemIDs(view.Items))

	state.SetSearch("kubernetes")
	view, err = state.View()
	require.NoError(t, err)
	assert.True(t, view.Empty)
	assert.True(t, view.NoResults())
	assert.NotNil(t, view.Items)

	require.NoError(t, state.SetFilter("category", "all"))
	state.SetSearch("")
	view, err = state.View()
	require.NoError(t, err)
	assert.Len(t, view.Items, 4)
	assert.False(t, view.Filtered)

	err = state.SetFilter("instructor", "Sarah Johnson")
	assert.ErrorIs(t, err, query.ErrUnknownField)
}

func TestState_SortPresets(t *testing.T) {
	state, _ := newEnrolled(t)
	assert.Equal(t, []string{"progress", "recent", "title"}, state.Presets())

	tests := []struct {
		preset   string
		expected []int
	}{
		{PresetProgress, []int{2, 4, 1, 3}},
		{PresetTitle, []int{3, 1, 4, 2}},
		{PresetRecent, []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			require.NoError(t, state.SetSortPreset(tt.preset))
			view, err := state.View()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, itemIDs(view.Items))
		})
	}

	assert.ErrorIs(t, state.SetSortPreset("popularity"), ErrUnknownPreset)
}

func TestState_SetSort(t *testing.T) {
	state, _ := newEnrolled(t)

	require.NoError(t, state.SetSort(query.SortSpec{Field: "progress", Direction: query.SortDirectionAsc, Rule: query.SortRuleNumeric}))
	view, err := state.View()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2, 4}, itemIDs(view.Items))

	err = state.SetSort(query.SortSpec{Field: "rating", Direction: query.SortDirectionAsc})
	assert.ErrorIs(t, err, query.ErrUnknownField)

	state.ClearSort()
	view, err = state.View()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, itemIDs(view.Items))

	t.Run("empty rule follows the field type", func(t *testing.T) {
		require.NoError(t, state.SetSort(query.SortSpec{Field: "progress", Direction: query.SortDirectionDesc}))
		assert.Equal(t, query.SortRuleNumeric, state.Query().Sort.Rule)
		view, err := state.View()
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4, 1, 3}, itemIDs(view.Items))
	})
}

func TestState_Reset(t *testing.T) {
	collection, err := dataset.NewCollection(enrolledShape(), enrolledData(), dataset.Options{})
	require.NoError(t, err)
	defaultSort := &query.SortSpec{Field: "title", Direction: query.SortDirectionAsc, Rule: query.SortRuleLexicographic}
	state, err := New(Config[enrolledCourse]{Collection: collection, DefaultSort: defaultSort})
	require.NoError(t, err)

	require.NoError(t, state.SetFilter("status", "completed"))
	state.SetSearch("design")
	state.ClearSort()
	state.Reset()

	q := state.Query()
	assert.Empty(t, q.Criteria)
	assert.Empty(t, q.Search)
	assert.Equal(t, defaultSort, q.Sort)
}

func TestState_ViewFollowsDataset(t *testing.T) {
	state, collection := newEnrolled(t)

	first, err := state.View()
	require.NoError(t, err)
	again, err := state.View()
	require.NoError(t, err)
	assert.Equal(t, first, again, "unchanged state returns the same view")

	_, err = collection.Delete(2)
	require.NoError(t, err)

	after, err := state.View()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4}, itemIDs(after.Items))
	assert.Equal(t, 3, after.Total)
	assert.Equal(t, []int{1, 2, 3, 4}, itemIDs(first.Items), "earlier views are unaffected")
}

func TestState_ViewsAreIndependent(t *testing.T) {
	collection, err := dataset.NewCollection(enrolledShape(), enrolledData(), dataset.Options{})
	require.NoError(t, err)
	state, err := New(Config[schema.Record]{Collection: collection, Stats: enrolledStats()})
	require.NoError(t, err)

	first, err := state.View()
	require.NoError(t, err)
	first.Records[0] = schema.Record{"id": 99, "title": "tampered"}
	first.Items[0] = schema.Record{"id": 99}
	first.Stats["shown"] = -1

	second, err := state.View()
	require.NoError(t, err)
	assert.Equal(t, 1, second.Records[0]["id"])
	assert.Equal(t, 1, second.Items[0]["id"])
	assert.Equal(t, float64(4), second.Stats["shown"])
}

func TestState_Records(t *testing.T) {
	collection, err := dataset.NewCollection(enrolledShape(), enrolledData(), dataset.Options{})
	require.NoError(t, err)
	state, err := New(Config[schema.Record]{Collection: collection})
	require.NoError(t, err)

	view, err := state.View()
	require.NoError(t, err)
	require.Len(t, view.Items, 4)
	assert.Equal(t, 1, view.Items[0]["id"], "records are passed through untouched")
}

func TestNew_Validation(t *testing.T) {
	collection, err := dataset.NewCollection(enrolledShape(), enrolledData(), dataset.Options{})
	require.NoError(t, err)

	_, err = New(Config[enrolledCourse]{})
	assert.Error(t, err)

	_, err = New(Config[enrolledCourse]{Collection: collection, SearchFields: []string{"instructor"}})
	assert.ErrorIs(t, err, query.ErrUnknownField)

	state, err := New(Config[enrolledCourse]{
		Collection: collection,
		Presets: map[string]*query.SortSpec{
			"rating": {Field: "rating", Direction: query.SortDirectionDesc, Rule: query.SortRuleNumeric},
			"title":  {Field: "title", Direction: query.SortDirectionAsc, Rule: query.SortRuleLexicographic},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"title"}, state.Presets(), "presets on missing fields are dropped")
}
