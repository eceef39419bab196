// Package locator resolves free-text stop input into canonical stop IDs via
// debounced remote search. Each search form field owns one Field; an origin
// field and a destination field never share timers, caches, or buffers.
package locator

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Suggestion is one candidate stop offered for a query
type Suggestion struct {
	ID   string
	Name string
	City string
}

// SearchFunc performs the backing remote stop search
type SearchFunc func(query string) ([]Suggestion, error)

// State tracks the field's pending-request lifecycle
type State int

const (
	StateIdle State = iota
	StatePending
	StateResolved
	StateSuperseded
)

const minQueryLen = 2

// debounceDelay is a package var so tests can tighten it
var debounceDelay = 300 * time.Millisecond

// Field is one autocomplete input. All state is owned exclusively by the
// field instance; the mutex covers every mutable member.
type Field struct {
	mu          sync.Mutex
	search      SearchFunc
	cache       *gocache.Cache
	timer       *time.Timer
	seq         uint64
	text        string
	selected    *Suggestion
	suggestions []Suggestion
	state       State
	onUpdate    func([]Suggestion)
}

// NewField builds a field around the given search function. Each field gets
// its own short-lived suggestion cache so repeated keystrokes that settle on
// an earlier query don't refetch.
func NewField(search SearchFunc) *Field {
	return &Field{
		search: search,
		cache:  gocache.New(5*time.Minute, 10*time.Minute),
		state:  StateIdle,
	}
}

// SetOnUpdate registers a callback invoked (outside the lock) whenever the
// visible suggestion list changes.
func (f *Field) SetOnUpdate(fn func([]Suggestion)) {
	f.mu.Lock()
	f.onUpdate = fn
	f.mu.Unlock()
}

// SetInput records a keystroke. Any pending request timer is superseded; the
// backing search fires only after the input has been quiet for the debounce
// interval, and only the most recent request may update the suggestions.
func (f *Field) SetInput(text string) {
	f.mu.Lock()

	f.text = text
	// Editing invalidates a previously fixed selection: the ID was only a
	// cache of an exact prior match.
	if f.selected != nil && f.selected.Name != text {
		f.selected = nil
	}

	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
		f.state = StateSuperseded
	}
	f.seq++
	token := f.seq

	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minQueryLen {
		f.suggestions = nil
		f.state = StateIdle
		notify := f.onUpdate
		f.mu.Unlock()
		if notify != nil {
			notify(nil)
		}
		return
	}

	if cached, ok := f.cache.Get(trimmed); ok {
		f.suggestions = cached.([]Suggestion)
		f.state = StateResolved
		notify, suggestions := f.onUpdate, f.suggestions
		f.mu.Unlock()
		if notify != nil {
			notify(suggestions)
		}
		return
	}

	f.state = StatePending
	f.timer = time.AfterFunc(debounceDelay, func() {
		f.fire(token, trimmed)
	})
	f.mu.Unlock()
}

// fire runs the remote search for one debounced query. The token guard
// discards responses whose request has been superseded by newer input.
func (f *Field) fire(token uint64, query string) {
	f.mu.Lock()
	if token != f.seq {
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	results, err := f.search(query)

	f.mu.Lock()
	if token != f.seq {
		// Newer input arrived while the request was in flight
		f.mu.Unlock()
		slog.Debug("discarding stale stop search response", "query", query)
		return
	}

	if err != nil {
		f.suggestions = nil
		f.state = StateIdle
		f.mu.Unlock()
		slog.Warn("stop search failed", "query", query, "error", err)
		return
	}

	f.cache.Set(query, results, gocache.DefaultExpiration)
	f.suggestions = results
	f.state = StateResolved
	notify := f.onUpdate
	f.mu.Unlock()

	if notify != nil {
		notify(results)
	}
}

// Select fixes both the display text and the canonical stop ID, and closes
// the suggestion list. Any in-flight request is abandoned.
func (f *Field) Select(s Suggestion) {
	f.mu.Lock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.seq++
	f.text = s.Name
	f.selected = &s
	f.suggestions = nil
	f.state = StateResolved
	f.mu.Unlock()
}

// Clear resets the field to its initial state
func (f *Field) Clear() {
	f.mu.Lock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.seq++
	f.text = ""
	f.selected = nil
	f.suggestions = nil
	f.state = StateIdle
	f.mu.Unlock()
}

// Text returns the current display text
func (f *Field) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text
}

// SelectedID returns the fixed stop ID, if a suggestion has been selected
// and the text has not been edited since.
func (f *Field) SelectedID() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selected == nil {
		return "", false
	}
	return f.selected.ID, true
}

// Suggestions returns the currently visible suggestion list
func (f *Field) Suggestions() []Suggestion {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.suggestions
}

// State reports the pending-request lifecycle state
func (f *Field) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Swap exchanges the text and fixed IDs of two fields atomically and closes
// both suggestion lists. Both locks are held for the exchange so a
// half-swapped pair is never observable.
func Swap(a, b *Field) {
	if a == b {
		return
	}
	a.mu.Lock()
	b.mu.Lock()

	for _, f := range []*Field{a, b} {
		if f.timer != nil {
			f.timer.Stop()
			f.timer = nil
		}
		f.seq++
		f.suggestions = nil
	}

	a.text, b.text = b.text, a.text
	a.selected, b.selected = b.selected, a.selected
	a.state, b.state = StateIdle, StateIdle

	b.mu.Unlock()
	a.mu.Unlock()
}
