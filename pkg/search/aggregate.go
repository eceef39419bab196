package search

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Busmate-Lk/busmatectl/pkg/busapi"
)

// Criteria describes one search invocation. Constructed per search; a fresh
// Criteria (and a fresh backend call) accompanies every filter change.
type Criteria struct {
	OriginStopID      string
	DestinationStopID string
	TravelDate        time.Time
}

// BusFinder is the slice of the API client the aggregator needs
type BusFinder interface {
	FindBuses(fromStopID, toStopID string, travelDate time.Time) (*busapi.FindMyBusResponse, error)
}

// Aggregator issues the aggregated search and normalizes the response.
// It retains the most recently applied result list; overlapping searches
// resolve last-applied-wins, guarded by a generation counter.
type Aggregator struct {
	finder BusFinder

	mu      sync.Mutex
	gen     uint64
	results []BusResult
	from    string
	to      string
}

// NewAggregator builds an aggregator over the given API client
func NewAggregator(finder BusFinder) *Aggregator {
	return &Aggregator{finder: finder}
}

// Search runs one backend round trip for the criteria and returns the
// normalized candidate list. Equal origin and destination is a degenerate
// query that yields an empty list without contacting the backend. On any
// network or parse failure the previously held results are cleared so stale
// data cannot linger behind an error message.
func (a *Aggregator) Search(criteria Criteria) ([]BusResult, error) {
	if criteria.OriginStopID == criteria.DestinationStopID {
		a.apply(a.bumpGen(), nil, "", "")
		return []BusResult{}, nil
	}

	gen := a.bumpGen()

	resp, err := a.finder.FindBuses(criteria.OriginStopID, criteria.DestinationStopID, criteria.TravelDate)
	if err != nil {
		a.apply(gen, nil, "", "")
		return nil, fmt.Errorf("bus search failed: %w", err)
	}

	// The backend can surface the same trip through more than one tier;
	// the identity key keeps the first (freshest-ordered) record per entity.
	results := make([]BusResult, 0, len(resp.Results))
	seen := make(map[string]bool, len(resp.Results))
	for _, c := range resp.Results {
		r := Normalize(c)
		key := Key(r, len(results))
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, r)
	}

	var fromName, toName string
	if resp.FromStop != nil {
		fromName = resp.FromStop.Name
	}
	if resp.ToStop != nil {
		toName = resp.ToStop.Name
	}

	if !a.apply(gen, results, fromName, toName) {
		slog.Debug("discarding superseded search response",
			"from", criteria.OriginStopID, "to", criteria.DestinationStopID)
	}

	return results, nil
}

// bumpGen registers a new in-flight search and returns its generation
func (a *Aggregator) bumpGen() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	return a.gen
}

// apply stores a response if no newer search has started since; returns
// whether the response was applied.
func (a *Aggregator) apply(gen uint64, results []BusResult, fromName, toName string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		return false
	}
	a.results = results
	a.from = fromName
	a.to = toName
	return true
}

// Results returns the most recently applied result list
func (a *Aggregator) Results() []BusResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.results
}

// ResolvedStops returns the backend-resolved origin/destination names from
// the last applied search, when it supplied them.
func (a *Aggregator) ResolvedStops() (from, to string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.from, a.to
}
