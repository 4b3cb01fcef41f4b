package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct {
	targets []string
	err     error
}

func (n *recordingNavigator) Navigate(target string) error {
	n.targets = append(n.targets, target)
	return n.err
}

func TestSession_Panel(t *testing.T) {
	s := NewSession(newTestIndex(t), nil)
	assert.Equal(t, PanelHidden, s.Panel())

	s.Type("flexbox")
	assert.Equal(t, PanelResults, s.Panel())
	assert.Len(t, s.Results(), 1)

	s.Type("kubernetes")
	assert.Equal(t, PanelNoResults, s.Panel())

	s.Type("  ")
	assert.Equal(t, PanelHidden, s.Panel())
	assert.Equal(t, "hidden", s.Panel().String())
}

func TestSession_Select(t *testing.T) {
	t.Run("navigates to the target and clears", func(t *testing.T) {
		nav := &recordingNavigator{}
		s := NewSession(newTestIndex(t), nav)

		results := s.Type("flexbox")
		require.Len(t, results, 1)
		require.NoError(t, s.Select(results[0]))

		assert.Equal(t, []string{"/lesson/1/101"}, nav.targets)
		assert.Empty(t, s.Query())
		assert.Empty(t, s.Results())
		assert.Equal(t, PanelHidden, s.Panel())
	})

	t.Run("entries without a target never navigate", func(t *testing.T) {
		nav := &recordingNavigator{}
		s := NewSession(newTestIndex(t), nav)

		results := s.Type("sarah")
		require.Len(t, results, 1)
		assert.NoError(t, s.Select(results[0]))
		assert.Empty(t, nav.targets)
		assert.Empty(t, s.Query())
	})

	t.Run("nil navigator", func(t *testing.T) {
		s := NewSession(newTestIndex(t), nil)
		results := s.Type("react")
		require.NotEmpty(t, results)
		assert.NoError(t, s.Select(results[0]))
		assert.Equal(t, PanelHidden, s.Panel())
	})

	t.Run("navigation errors are wrapped", func(t *testing.T) {
		boom := errors.New("route not found")
		s := NewSession(newTestIndex(t), NavigatorFunc(func(string) error { return boom }))
		results := s.Type("grid")
		require.Len(t, results, 1)
		assert.ErrorIs(t, s.Select(results[0]), boom)
		assert.Empty(t, s.Query(), "session is cleared even when navigation fails")
	})
}
