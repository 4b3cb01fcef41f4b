package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runApp runs the CLI with a config path that does not exist, so the defaults
// and the built-in fixtures are used.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = &out
	full := append([]string{"lister", "--config", filepath.Join(t.TempDir(), "lister.toml")}, args...)
	err := app.Run(context.Background(), full)
	return out.String(), err
}

func TestQueryCommand(t *testing.T) {
	t.Run("category filter", func(t *testing.T) {
		out, err := runApp(t, "query", "--dataset", "catalog", "--filter", "category=Development", "--fields", "id", "--fields", "title")
		require.NoError(t, err)
		assert.Contains(t, out, "catalog (2 of 6)")
		assert.Contains(t, out, "Complete Web Development Bootcamp")
		assert.Contains(t, out, "React & TypeScript Advanced")
		assert.NotContains(t, out, "UI/UX Design Masterclass")
	})

	t.Run("sentinel filter and search", func(t *testing.T) {
		out, err := runApp(t, "query", "-d", "users", "-f", "role=all", "-s", "CHEN", "--fields", "name")
		require.NoError(t, err)
		assert.Contains(t, out, "users (1 of 6)")
		assert.Contains(t, out, "Dr. Sarah Chen")
		assert.Contains(t, out, "67%")
	})

	t.Run("numeric filter", func(t *testing.T) {
		out, err := runApp(t, "query", "-d", "catalog", "-f", "bestseller=true", "-f", "rating=4.9", "--fields", "title")
		require.NoError(t, err)
		assert.Contains(t, out, "catalog (2 of 6)")
	})

	t.Run("no results", func(t *testing.T) {
		out, err := runApp(t, "query", "-d", "payments", "-s", "kubernetes")
		require.NoError(t, err)
		assert.Contains(t, out, "No records match the current filters.")
	})

	t.Run("preset", func(t *testing.T) {
		out, err := runApp(t, "query", "-d", "enrolled", "--preset", "progress", "--fields", "title")
		require.NoError(t, err)
		react := bytes.Index([]byte(out), []byte("React & TypeScript Advanced"))
		marketing := bytes.Index([]byte(out), []byte("Digital Marketing Strategy"))
		require.True(t, react >= 0 && marketing >= 0)
		assert.Less(t, react, marketing, "100% progress lists before 0%")
	})

	t.Run("errors", func(t *testing.T) {
		_, err := runApp(t, "query", "-d", "grades")
		assert.Error(t, err)
		_, err = runApp(t, "query", "-d", "users", "-f", "age=30")
		assert.Error(t, err)
		_, err = runApp(t, "query", "-d", "users", "-f", "name")
		assert.Error(t, err)
		_, err = runApp(t, "query", "-d", "users", "--sort", "name", "--preset", "title")
		assert.Error(t, err)
		_, err = runApp(t, "query", "-d", "catalog", "-f", "rating=high")
		assert.Error(t, err)
	})
}

func TestSearchCommand(t *testing.T) {
	out, err := runApp(t, "search", "css")
	require.NoError(t, err)
	assert.Contains(t, out, "CSS Flexbox Deep Dive")
	assert.Contains(t, out, "Introduction to CSS")
	assert.Contains(t, out, "/lesson/1/3")

	out, err = runApp(t, "search", "--query", "flexbox", "--open")
	require.NoError(t, err)
	assert.Contains(t, out, "navigate")
	assert.Contains(t, out, "/lesson/1/3")

	out, err = runApp(t, "search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, `No results found for "zzz"`)

	out, err = runApp(t, "search", "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestStatsCommand(t *testing.T) {
	out, err := runApp(t, "stats")
	require.NoError(t, err)
	for _, name := range []string{"catalog", "enrolled", "users", "admin_courses", "payments", "leaderboard"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "39900")
	assert.Contains(t, out, "459.95")
	assert.Contains(t, out, "No statistics defined.")

	_, err = runApp(t, "stats", "-d", "grades")
	assert.Error(t, err)
}

func TestDeleteCommand(t *testing.T) {
	out, err := runApp(t, "--metrics", "delete", "-d", "users", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "User deleted")
	assert.Contains(t, out, "Emma Davis has been removed from the system")
	assert.Contains(t, out, "80%")
	assert.Contains(t, out, "metrics")

	_, err = runApp(t, "delete", "-d", "users", "99")
	assert.Error(t, err)
	_, err = runApp(t, "delete", "-d", "users")
	assert.Error(t, err)
}

func TestSeedAndDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "dashboard.db")

	out, err := runApp(t, "seed", "--out", db)
	require.NoError(t, err)
	assert.Contains(t, out, "payments")
	assert.Contains(t, out, "8 records")

	out, err = runApp(t, "--database", db, "query", "-d", "catalog", "-f", "category=Development", "--fields", "title")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog (2 of 6)")

	out, err = runApp(t, "seed", "--out", db)
	require.NoError(t, err, "seeding twice replaces the tables")
	assert.Contains(t, out, "8 records")
}

func TestMetricsFlag(t *testing.T) {
	out, err := runApp(t, "--metrics", "search", "e")
	require.NoError(t, err)
	assert.Contains(t, out, "lister_searches_total 1")
	assert.Contains(t, out, "lister_search_truncated_total 1")
}
