package search

import (
	"sort"
	"strings"

	"github.com/Busmate-Lk/busmatectl/pkg/timefmt"
)

// SortKey selects exactly one comparator for the result list
type SortKey int

const (
	SortByDeparture SortKey = iota
	SortByDuration
	SortByDistance
	SortByTier
)

// ParseSortKey maps a user-facing flag value to a comparator
func ParseSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(s) {
	case "", "departure":
		return SortByDeparture, true
	case "duration":
		return SortByDuration, true
	case "distance":
		return SortByDistance, true
	case "tier":
		return SortByTier, true
	}
	return SortByDeparture, false
}

// FilterState holds the user's predicate and comparator configuration.
// Zero values are "unset" sentinels: an unset filter is a no-op and never
// excludes records that lack the corresponding field.
type FilterState struct {
	RouteNumber    string // substring match against the route number
	RoadType       string // NORMALWAY / EXPRESSWAY equality
	DepartureAfter string // "HH:MM" minimum departure time of day
	SortBy         SortKey
}

// Apply filters and sorts a result list. The input slice is never mutated;
// predicates are ANDed, and the sort is stable so equal-key records keep
// their relative response order across re-renders.
func Apply(results []BusResult, f FilterState) []BusResult {
	filtered := make([]BusResult, 0, len(results))
	for _, r := range results {
		if matches(r, f) {
			filtered = append(filtered, r)
		}
	}

	less := comparator(f.SortBy)
	sort.SliceStable(filtered, func(i, j int) bool {
		return less(filtered[i], filtered[j])
	})

	return filtered
}

func matches(r BusResult, f FilterState) bool {
	if f.RouteNumber != "" {
		if !strings.Contains(strings.ToLower(r.RouteNumber), strings.ToLower(f.RouteNumber)) {
			return false
		}
	}

	if f.RoadType != "" && r.RoadType != "" && !strings.EqualFold(r.RoadType, f.RoadType) {
		return false
	}

	if f.DepartureAfter != "" {
		// Records without a departure instant (static tier) can't be judged
		// against a time-of-day threshold, so they pass through.
		threshold := timefmt.ToInstant(f.DepartureAfter)
		if threshold != nil && r.Departure != nil {
			if clockMinutes(r.Departure.Hour(), r.Departure.Minute()) < clockMinutes(threshold.Hour(), threshold.Minute()) {
				return false
			}
		}
	}

	return true
}

func clockMinutes(hour, minute int) int {
	return hour*60 + minute
}

func comparator(key SortKey) func(a, b BusResult) bool {
	switch key {
	case SortByDuration:
		// Missing duration sorts as zero, i.e. first
		return func(a, b BusResult) bool {
			return a.EstimatedDurationMinutes < b.EstimatedDurationMinutes
		}
	case SortByDistance:
		return func(a, b BusResult) bool {
			return a.DistanceKm < b.DistanceKm
		}
	case SortByTier:
		return func(a, b BusResult) bool {
			return a.Tier < b.Tier
		}
	default:
		// Records with no departure instant on either side compare equal,
		// which under a stable sort means no reordering.
		return func(a, b BusResult) bool {
			if a.Departure == nil || b.Departure == nil {
				return false
			}
			return a.Departure.Before(*b.Departure)
		}
	}
}
