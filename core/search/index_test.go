package search

import (
	"fmt"
	"testing"

	"github.com/asaidimu/go-lister/core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchCourses() Collection {
	return Collection{
		Name: "courses", Category: "Course", Icon: "book", Target: "/course/{id}",
		Records: []schema.Record{
			{"id": 1, "title": "Complete Web Development Bootcamp"},
			{"id": 2, "title": "Advanced React Patterns"},
			{"id": 3, "title": "CSS Grid Mastery"},
		},
	}
}

func searchLessons() Collection {
	return Collection{
		Name: "lessons", Category: "Lesson", Icon: "play", Target: "/lesson/{courseId}/{id}",
		Records: []schema.Record{
			{"id": 101, "courseId": 1, "title": "CSS Flexbox Deep Dive"},
			{"id": 102, "courseId": 1, "title": "Introduction to CSS"},
			{"id": 201, "courseId": 2, "title": "React Hooks in Depth"},
		},
	}
}

func searchInstructors() Collection {
	return Collection{
		Name: "instructors", Category: "Instructor", Icon: "user", TitleField: "name",
		Records: []schema.Record{
			{"id": 1, "name": "Sarah Johnson"},
			{"id": 2, "name": "Michael Chen"},
		},
	}
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx := NewIndex(nil, 0)
	require.NoError(t, idx.Register(searchCourses()))
	require.NoError(t, idx.Register(searchLessons()))
	require.NoError(t, idx.Register(searchInstructors()))
	return idx
}

func titles(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

func TestBuildEntries(t *testing.T) {
	t.Run("expands target templates", func(t *testing.T) {
		entries, err := BuildEntries(searchLessons())
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "/lesson/1/101", entries[0].Target)
		assert.Equal(t, "lessons", entries[0].Source)
		assert.Equal(t, "Lesson", entries[0].Category)
		assert.Equal(t, "CSS Flexbox Deep Dive", entries[0].Title)
	})

	t.Run("people use the name field and have no target", func(t *testing.T) {
		entries, err := BuildEntries(searchInstructors())
		require.NoError(t, err)
		assert.Equal(t, "Sarah Johnson", entries[0].Title)
		assert.False(t, entries[0].HasTarget())
	})

	t.Run("unknown placeholder fails", func(t *testing.T) {
		c := searchCourses()
		c.Target = "/course/{slug}"
		_, err := BuildEntries(c)
		assert.ErrorIs(t, err, ErrUnknownPlaceholder)
	})
}

func TestIndex_Register(t *testing.T) {
	idx := newTestIndex(t)
	assert.Equal(t, []string{"courses", "lessons", "instructors"}, idx.Collections())
	assert.Equal(t, DefaultLimit, idx.Limit())

	err := idx.Register(searchCourses())
	assert.ErrorIs(t, err, ErrDuplicateCollection)
}

func TestIndex_Search(t *testing.T) {
	idx := newTestIndex(t)

	t.Run("empty query returns nothing", func(t *testing.T) {
		for _, q := range []string{"", "   "} {
			results := idx.Search(q, 8)
			assert.NotNil(t, results)
			assert.Empty(t, results)
		}
	})

	t.Run("registration order wins over relevance", func(t *testing.T) {
		results := idx.Search("css", 0)
		assert.Equal(t, []string{"CSS Grid Mastery", "CSS Flexbox Deep Dive", "Introduction to CSS"}, titles(results))
	})

	t.Run("case-insensitive title match", func(t *testing.T) {
		assert.Equal(t, titles(idx.Search("chen", 0)), titles(idx.Search("CHEN", 0)))
		assert.Equal(t, []string{"Michael Chen"}, titles(idx.Search(" Chen ", 0)))
	})

	t.Run("explicit limit", func(t *testing.T) {
		assert.Len(t, idx.Search("react", 1), 1)
		assert.Equal(t, "Advanced React Patterns", idx.Search("react", 1)[0].Title)
	})

	t.Run("no matches", func(t *testing.T) {
		results := idx.Search("kubernetes", 0)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})
}

func TestSearch_CapStarvesLaterCollections(t *testing.T) {
	collections := make([][]Entry, 3)
	for c := range collections {
		for i := 0; i < 5; i++ {
			collections[c] = append(collections[c], Entry{
				Source: fmt.Sprintf("c%d", c),
				Title:  fmt.Sprintf("match %d-%d", c, i),
			})
		}
	}

	results := Search(collections, "match", 8)
	require.Len(t, results, 8)
	for i := 0; i < 5; i++ {
		assert.Equal(t, "c0", results[i].Source)
	}
	for i := 5; i < 8; i++ {
		assert.Equal(t, "c1", results[i].Source)
	}

	assert.Len(t, Search(collections, "match", 0), DefaultLimit, "non-positive limit uses the default")
	assert.Empty(t, Search(collections, "", 8))
}

type countingObserver struct {
	matched, returned int
	calls             int
}

func (o *countingObserver) ObserveSearch(matched, returned int) {
	o.matched, o.returned = matched, returned
	o.calls++
}

func TestIndex_Observer(t *testing.T) {
	obs := &countingObserver{}
	idx := newTestIndex(t).WithObserver(obs)

	idx.Search("", 0)
	assert.Equal(t, 0, obs.calls, "empty queries are not observed")

	idx.Search("css", 2)
	assert.Equal(t, 1, obs.calls)
	assert.Equal(t, 3, obs.matched)
	assert.Equal(t, 2, obs.returned)
}

func TestBuildEntries_RecordIcon(t *testing.T) {
	c := searchCourses()
	c.Records = []schema.Record{
		{"id": 1, "title": "Complete Web Development Bootcamp", "icon": "globe"},
		{"id": 2, "title": "Advanced React Patterns", "icon": ""},
	}
	entries, err := BuildEntries(c)
	require.NoError(t, err)
	assert.Equal(t, "globe", entries[0].Icon)
	assert.Equal(t, "book", entries[1].Icon)
}
