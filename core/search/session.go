package search

import (
	"fmt"
	"strings"
	"sync"
)

// Panel is the display state of the results panel.
type Panel int

const (
	// PanelHidden means there is no query; the panel is not shown at all.
	PanelHidden Panel = iota
	// PanelNoResults means a non-empty query matched nothing.
	PanelNoResults
	// PanelResults means there is at least one result to show.
	PanelResults
)

func (p Panel) String() string {
	switch p {
	case PanelHidden:
		return "hidden"
	case PanelNoResults:
		return "no-results"
	case PanelResults:
		return "results"
	}
	return fmt.Sprintf("Panel(%d)", int(p))
}

// Navigator receives the target path of a selected entry.
type Navigator interface {
	Navigate(target string) error
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(target string) error

// Navigate calls f.
func (f NavigatorFunc) Navigate(target string) error {
	return f(target)
}

// Session is the state of one search box: the text typed so far, the current
// results and whether the panel is visible.
type Session struct {
	index     *Index
	navigator Navigator

	mu      sync.Mutex
	query   string
	results []Entry
}

// NewSession creates a session over index. navigator may be nil, in which case
// selections only clear the session.
func NewSession(index *Index, navigator Navigator) *Session {
	return &Session{index: index, navigator: navigator, results: []Entry{}}
}

// Type replaces the query text and re-runs the search.
func (s *Session) Type(text string) []Entry {
	results := s.index.Search(text, 0)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = text
	s.results = results
	return results
}

// Query returns the current query text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Results returns the current results.
func (s *Session) Results() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Panel derives the panel state from the query and its results.
func (s *Session) Panel() Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return panelFor(s.query, s.results)
}

func panelFor(q string, results []Entry) Panel {
	switch {
	case len(results) > 0:
		return PanelResults
	case strings.TrimSpace(q) == "":
		return PanelHidden
	default:
		return PanelNoResults
	}
}

// Clear empties the query and results.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = ""
	s.results = []Entry{}
}

// Select handles a click on a result. The session is always cleared; the
// navigator is called only when the entry has a target.
func (s *Session) Select(entry Entry) error {
	s.Clear()
	if !entry.HasTarget() || s.navigator == nil {
		return nil
	}
	if err := s.navigator.Navigate(entry.Target); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", entry.Target, err)
	}
	return nil
}
