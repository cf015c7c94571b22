// Package session holds the per-viewer browsing state: which game is open,
// the active category, the filter flags and the current search term.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ziadkadry99/sdkview/internal/query"
	"github.com/ziadkadry99/sdkview/internal/render"
	"github.com/ziadkadry99/sdkview/internal/sdk"
)

var (
	// ErrNotFound is returned when a session or record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoGame is returned by operations that need an open game.
	ErrNoGame = errors.New("no game open")
)

// Item is one row of a category listing.
type Item struct {
	Name string `json:"name"`
	// Label is the secondary line: the category, or the offset value.
	Label string `json:"label"`
	// Copy is the value copied from the row, set for offsets only.
	Copy string `json:"copy,omitempty"`
}

// Listing is the rendered item list of a category with its first item
// selected.
type Listing struct {
	Category sdk.Category `json:"category"`
	Items    []Item       `json:"items"`
	Selected int          `json:"selected"`
	Detail   string       `json:"detail,omitempty"`
	// Message is set when the category has no data.
	Message string `json:"message,omitempty"`
}

// Session is the browsing state of one viewer. All methods are safe for
// concurrent use.
type Session struct {
	ID string

	mu       sync.Mutex
	renderer *render.Renderer
	data     *sdk.Dataset
	category sdk.Category
	flags    query.Flags
	term     string
	selected int
}

func newSession(id string, r *render.Renderer) *Session {
	return &Session{
		ID:       id,
		renderer: r,
		category: sdk.CategoryClasses,
		flags:    query.DefaultFlags(),
		selected: -1,
	}
}

// Open replaces the session's dataset and resets it to the classes category.
func (s *Session) Open(data *sdk.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.category = sdk.CategoryClasses
	s.term = ""
	s.selected = -1
}

// Home closes the open game.
func (s *Session) Home() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.term = ""
	s.selected = -1
}

// Game returns the name of the open game, or "" at home.
func (s *Session) Game() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return ""
	}
	return s.data.Game
}

// Dataset returns the open dataset, nil at home.
func (s *Session) Dataset() *sdk.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Category returns the active category.
func (s *Session) Category() sdk.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// Term returns the current search term.
func (s *Session) Term() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}

// Flags returns the current filter flags.
func (s *Session) Flags() query.Flags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags
}

// Selected returns the index of the selected record, -1 when none.
func (s *Session) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SwitchCategory activates c, clears the search term and builds the new
// listing. It returns ctx's error if the listing is not ready in time.
func (s *Session) SwitchCategory(ctx context.Context, c sdk.Category) (Listing, error) {
	s.mu.Lock()
	if s.data == nil {
		s.mu.Unlock()
		return Listing{}, ErrNoGame
	}
	s.category = c
	s.term = ""
	s.selected = -1
	data := s.data
	s.mu.Unlock()

	type result struct {
		l   Listing
		err error
	}
	done := make(chan result, 1)
	go func() {
		l, err := s.buildListing(data, c)
		done <- result{l, err}
	}()

	select {
	case <-ctx.Done():
		return Listing{}, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return Listing{}, res.err
		}
		s.mu.Lock()
		// A concurrent switch wins; keep the selection only if still current.
		if s.data == data && s.category == c {
			s.selected = res.l.Selected
		}
		s.mu.Unlock()
		return res.l, nil
	}
}

func (s *Session) buildListing(data *sdk.Dataset, c sdk.Category) (Listing, error) {
	l := Listing{Category: c, Items: []Item{}, Selected: -1}
	recs := data.Records(c)
	if len(recs) == 0 {
		l.Message = fmt.Sprintf("No %s data available", c)
		return l, nil
	}
	for i := range recs {
		l.Items = append(l.Items, listItem(c, &recs[i]))
	}
	detail, err := s.renderer.Detail(c, &recs[0])
	if err != nil {
		return Listing{}, err
	}
	l.Selected = 0
	l.Detail = detail
	return l, nil
}

func listItem(c sdk.Category, rec *sdk.Record) Item {
	it := Item{Name: rec.Name, Label: string(c)}
	if c != sdk.CategoryOffsets {
		return it
	}
	if offs := rec.Offsets(); len(offs) == 1 {
		it.Label = render.OffsetDisplay(offs[0].Value)
		it.Copy = it.Label
	}
	return it
}

// SetFlags replaces the filter flags. When a term is active the category is
// filtered again and the new result returned.
func (s *Session) SetFlags(f query.Flags) (query.FilterResult, bool) {
	s.mu.Lock()
	s.flags = f
	term := s.term
	s.mu.Unlock()
	if term == "" {
		return query.FilterResult{}, false
	}
	res, err := s.Filter(term)
	return res, err == nil
}

// Filter applies term to the active category with the session's flags. A
// non-empty term shorter than query.MinTermLength leaves the active term in
// place and returns an unapplied result.
func (s *Session) Filter(term string) (query.FilterResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return query.FilterResult{}, ErrNoGame
	}
	term = query.NormalizeTerm(term)
	if term == "" || len([]rune(term)) >= query.MinTermLength {
		s.term = term
	}
	return query.FilterCategory(s.category, s.data.Records(s.category), term, s.flags), nil
}

// SearchProperties runs the global property search over the open game.
func (s *Session) SearchProperties(q string) (query.PropertyResults, error) {
	s.mu.Lock()
	data := s.data
	s.mu.Unlock()
	if data == nil {
		return query.PropertyResults{}, ErrNoGame
	}
	return query.SearchGlobalProperties(data.Records(sdk.CategoryClasses), data.Records(sdk.CategoryStructs), q), nil
}

// Select opens the record named name in the active category and returns its
// index and detail HTML.
func (s *Session) Select(name string) (int, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return -1, "", ErrNoGame
	}
	i, rec, ok := s.data.Lookup(s.category, name)
	if !ok {
		return -1, "", fmt.Errorf("%s %q: %w", s.category, name, ErrNotFound)
	}
	detail, err := s.renderer.Detail(s.category, rec)
	if err != nil {
		return -1, "", err
	}
	s.selected = i
	return i, detail, nil
}
