// Package waypoint derives a duplicate-free, distance-ordered stop list for
// map-path rendering. Backend intermediate-stop lists sometimes already
// include the origin and/or destination, so naive concatenation would plot
// the same stop twice at different distances and corrupt the polyline.
package waypoint

import "sort"

// Stop is the minimal slice of a route/trip stop the builder needs
type Stop struct {
	Name       string
	Latitude   *float64
	Longitude  *float64
	DistanceKm *float64
	// Order is the backend's stop sequence index. When present it is
	// authoritative for sequencing; array position is not.
	Order *int
}

// Waypoint is one plottable point of the route path
type Waypoint struct {
	Name       string
	DistanceKm float64
	Latitude   float64
	Longitude  float64
}

type entry struct {
	stop     Stop
	distance float64
}

// Build assembles the waypoint list. Names are deduplicated case-sensitively
// with insertion-ordered semantics, so the result is identical across calls
// on the same inputs. Stops without coordinates are dropped at the end since
// they can't be plotted. totalDistanceKm, when known, anchors a destination
// that lacks its own distance; otherwise max+1 keeps it last.
func Build(departure Stop, intermediates []Stop, arrival Stop, totalDistanceKm *float64) []Waypoint {
	seen := make(map[string]bool)
	var ordered []entry

	add := func(s Stop, distance float64) {
		if s.Name == "" || seen[s.Name] {
			return
		}
		seen[s.Name] = true
		ordered = append(ordered, entry{stop: s, distance: distance})
	}

	// Stop order is authoritative where the backend supplies it; stops
	// without one keep their relative array position under the stable sort.
	sequenced := make([]Stop, len(intermediates))
	copy(sequenced, intermediates)
	sort.SliceStable(sequenced, func(i, j int) bool {
		a, b := sequenced[i].Order, sequenced[j].Order
		if a == nil || b == nil {
			return false
		}
		return *a < *b
	})

	// The origin leads only when the intermediate list doesn't already
	// carry it; otherwise the intermediate entry (with its real distance)
	// is authoritative.
	originInIntermediates := false
	for _, s := range sequenced {
		if s.Name == departure.Name {
			originInIntermediates = true
			break
		}
	}
	if !originInIntermediates {
		add(departure, distanceOr(departure.DistanceKm, 0))
	}

	for i, s := range sequenced {
		// A stop without an explicit distance still needs a stable ordering
		// key; its sequenced position serves.
		add(s, distanceOr(s.DistanceKm, float64(i)))
	}

	if arrival.Name != departure.Name && !seen[arrival.Name] {
		add(arrival, arrivalDistance(arrival, ordered, totalDistanceKm))
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].distance < ordered[j].distance
	})

	waypoints := make([]Waypoint, 0, len(ordered))
	for _, e := range ordered {
		if e.stop.Latitude == nil || e.stop.Longitude == nil {
			continue
		}
		waypoints = append(waypoints, Waypoint{
			Name:       e.stop.Name,
			DistanceKm: e.distance,
			Latitude:   *e.stop.Latitude,
			Longitude:  *e.stop.Longitude,
		})
	}

	return waypoints
}

func distanceOr(d *float64, fallback float64) float64 {
	if d != nil {
		return *d
	}
	return fallback
}

// arrivalDistance guarantees the destination sorts last when its own
// distance is unknown
func arrivalDistance(arrival Stop, ordered []entry, totalDistanceKm *float64) float64 {
	if arrival.DistanceKm != nil {
		return *arrival.DistanceKm
	}
	if totalDistanceKm != nil {
		return *totalDistanceKm
	}
	maxSeen := 0.0
	for _, e := range ordered {
		if e.distance > maxSeen {
			maxSeen = e.distance
		}
	}
	return maxSeen + 1
}
