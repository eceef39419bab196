package locator

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// tightenDebounce shrinks the debounce window so tests settle quickly
func tightenDebounce(t *testing.T, d time.Duration) {
	t.Helper()
	original := debounceDelay
	debounceDelay = d
	t.Cleanup(func() { debounceDelay = original })
}

func TestField_ShortQueryNeverCallsBackend(t *testing.T) {
	tightenDebounce(t, 10*time.Millisecond)

	var calls int32
	field := NewField(func(query string) ([]Suggestion, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	})

	field.SetInput("")
	field.SetInput("k")
	field.SetInput(" k ") // whitespace doesn't count toward the minimum

	time.Sleep(50 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("expected zero backend calls for sub-minimum queries, got %d", got)
	}
	if got := field.Suggestions(); len(got) != 0 {
		t.Errorf("expected empty suggestion list, got %+v", got)
	}
	if field.State() != StateIdle {
		t.Errorf("expected idle state, got %v", field.State())
	}
}

func TestField_DebounceCoalescesKeystrokes(t *testing.T) {
	tightenDebounce(t, 30*time.Millisecond)

	var mu sync.Mutex
	var queries []string
	field := NewField(func(query string) ([]Suggestion, error) {
		mu.Lock()
		queries = append(queries, query)
		mu.Unlock()
		return []Suggestion{{ID: "stop-042", Name: "Kandy", City: "Kandy"}}, nil
	})

	// Rapid keystrokes all inside the debounce window
	for _, text := range []string{"ka", "kan", "kand", "kandy"} {
		field.SetInput(text)
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(queries) != 1 {
		t.Fatalf("expected exactly one backend call, got %d: %v", len(queries), queries)
	}
	if queries[0] != "kandy" {
		t.Errorf("expected the settled query 'kandy', got %q", queries[0])
	}

	if got := field.Suggestions(); len(got) != 1 || got[0].ID != "stop-042" {
		t.Errorf("expected the Kandy suggestion to be applied, got %+v", got)
	}
}

func TestField_StaleResponseDiscarded(t *testing.T) {
	tightenDebounce(t, 10*time.Millisecond)

	release := make(chan struct{})
	var calls int32
	field := NewField(func(query string) ([]Suggestion, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			// Hold the first response until after newer input has arrived
			<-release
			return []Suggestion{{ID: "stale", Name: query}}, nil
		}
		return []Suggestion{{ID: "fresh", Name: query}}, nil
	})

	field.SetInput("colom")
	time.Sleep(30 * time.Millisecond) // first request is now in flight, blocked

	field.SetInput("colombo fort")
	time.Sleep(30 * time.Millisecond) // second request resolves

	close(release)
	time.Sleep(30 * time.Millisecond)

	got := field.Suggestions()
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Fatalf("expected the fresh response to win, got %+v", got)
	}
}

func TestField_SelectFixesIDAndEditClearsIt(t *testing.T) {
	tightenDebounce(t, 10*time.Millisecond)

	field := NewField(func(query string) ([]Suggestion, error) {
		return []Suggestion{{ID: "stop-001", Name: "Colombo Fort", City: "Colombo"}}, nil
	})

	field.Select(Suggestion{ID: "stop-001", Name: "Colombo Fort", City: "Colombo"})

	if id, ok := field.SelectedID(); !ok || id != "stop-001" {
		t.Fatalf("expected fixed id stop-001, got %q (ok=%v)", id, ok)
	}
	if field.Text() != "Colombo Fort" {
		t.Errorf("expected display text to follow selection, got %q", field.Text())
	}
	if len(field.Suggestions()) != 0 {
		t.Errorf("expected suggestion list closed after selection")
	}

	// Any edit to the text invalidates the fixed id
	field.SetInput("Colombo For")
	if _, ok := field.SelectedID(); ok {
		t.Errorf("expected edit to clear the previously fixed id")
	}
}

func TestField_IndependentInstances(t *testing.T) {
	tightenDebounce(t, 10*time.Millisecond)

	var originCalls, destCalls int32
	origin := NewField(func(query string) ([]Suggestion, error) {
		atomic.AddInt32(&originCalls, 1)
		return []Suggestion{{ID: "o", Name: "Origin"}}, nil
	})
	dest := NewField(func(query string) ([]Suggestion, error) {
		atomic.AddInt32(&destCalls, 1)
		return []Suggestion{{ID: "d", Name: "Dest"}}, nil
	})

	origin.SetInput("colombo")
	dest.SetInput("kandy")
	time.Sleep(50 * time.Millisecond)

	if atomic.LoadInt32(&originCalls) != 1 || atomic.LoadInt32(&destCalls) != 1 {
		t.Fatalf("expected one call per field, got origin=%d dest=%d", originCalls, destCalls)
	}

	if got := origin.Suggestions(); len(got) != 1 || got[0].ID != "o" {
		t.Errorf("origin field received foreign results: %+v", got)
	}
	if got := dest.Suggestions(); len(got) != 1 || got[0].ID != "d" {
		t.Errorf("destination field received foreign results: %+v", got)
	}
}

func TestField_CacheShortCircuitsRepeatQuery(t *testing.T) {
	tightenDebounce(t, 10*time.Millisecond)

	var calls int32
	field := NewField(func(query string) ([]Suggestion, error) {
		atomic.AddInt32(&calls, 1)
		return []Suggestion{{ID: "stop-042", Name: "Kandy"}}, nil
	})

	field.SetInput("kandy")
	time.Sleep(50 * time.Millisecond)

	field.SetInput("kand") // diverge
	time.Sleep(50 * time.Millisecond)

	field.SetInput("kandy") // settle back on the cached query
	time.Sleep(50 * time.Millisecond)

	// Second "kandy" must come from the field's own cache
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected 2 backend calls (kandy, kand), got %d", got)
	}
	if got := field.Suggestions(); len(got) != 1 || got[0].ID != "stop-042" {
		t.Errorf("expected cached suggestions applied, got %+v", got)
	}
}

func TestSwap_ExchangesBothOrNeither(t *testing.T) {
	tightenDebounce(t, 10*time.Millisecond)

	noop := func(query string) ([]Suggestion, error) { return nil, nil }
	origin := NewField(noop)
	dest := NewField(noop)

	origin.Select(Suggestion{ID: "stop-001", Name: "Colombo Fort"})
	dest.Select(Suggestion{ID: "stop-042", Name: "Kandy"})

	Swap(origin, dest)

	if origin.Text() != "Kandy" || dest.Text() != "Colombo Fort" {
		t.Errorf("expected texts exchanged, got origin=%q dest=%q", origin.Text(), dest.Text())
	}

	originID, ok1 := origin.SelectedID()
	destID, ok2 := dest.SelectedID()
	if !ok1 || !ok2 {
		t.Fatalf("expected both fixed ids to survive the swap")
	}
	if originID != "stop-042" || destID != "stop-001" {
		t.Errorf("expected ids exchanged, got origin=%s dest=%s", originID, destID)
	}

	if len(origin.Suggestions()) != 0 || len(dest.Suggestions()) != 0 {
		t.Errorf("expected suggestion lists cleared on swap")
	}
}
