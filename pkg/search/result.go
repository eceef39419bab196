// Package search implements the trip-search pipeline: it fetches the
// aggregated candidate set from the passenger API, normalizes the mixed-tier
// records into one result shape, and applies the user's filter and sort
// configuration.
package search

import (
	"fmt"
	"time"

	"github.com/Busmate-Lk/busmatectl/pkg/busapi"
	"github.com/Busmate-Lk/busmatectl/pkg/timefmt"
)

// DataTier classifies a candidate's freshness. The order is meaningful:
// live trip data beats dispatched schedules beats static timetables.
type DataTier int

const (
	TierRealtime DataTier = iota
	TierSchedule
	TierStatic
)

func (t DataTier) String() string {
	switch t {
	case TierRealtime:
		return "REALTIME"
	case TierSchedule:
		return "SCHEDULE"
	default:
		return "STATIC"
	}
}

// ParseTier reads a backend-supplied tier tag
func ParseTier(s string) (DataTier, bool) {
	switch s {
	case "REALTIME":
		return TierRealtime, true
	case "SCHEDULE":
		return TierSchedule, true
	case "STATIC":
		return TierStatic, true
	}
	return TierStatic, false
}

// Road types as the backend spells them
const (
	RoadNormal     = "NORMALWAY"
	RoadExpressway = "EXPRESSWAY"
)

// BusResult is one normalized search candidate. Optionality is resolved at
// this boundary: absent strings are empty, absent numerics are zero, and the
// two instants are nil only when the tier genuinely carries no clock data.
type BusResult struct {
	TripID                   string
	ScheduleID               string
	RouteID                  string
	RouteNumber              string
	RouteName                string
	RouteThrough             string
	OperatorName             string
	BusPlateNumber           string
	BusModel                 string
	BusCapacity              int
	DistanceKm               float64
	EstimatedDurationMinutes int
	RoadType                 string
	TripStatus               string
	Tier                     DataTier
	Departure                *time.Time
	Arrival                  *time.Time
	// Timetable clocks survive only on static records, pre-formatted for
	// display since no specific trip instance exists to anchor a date.
	TimetableDeparture string
	TimetableArrival   string
	StatusMessage      string
}

// classifyTier assigns the data tier for one raw candidate. An explicit
// backend tag wins when present; otherwise the tier is inferred from which
// time fields the record populated, checked in freshness order.
func classifyTier(c busapi.BusCandidate) DataTier {
	if c.DataTier != nil {
		if tier, ok := ParseTier(*c.DataTier); ok {
			return tier
		}
	}
	if hasValue(c.ActualDepartureTime) || hasValue(c.ActualArrivalTime) {
		return TierRealtime
	}
	if hasValue(c.ScheduledDepartureTime) || hasValue(c.ScheduledArrivalTime) {
		return TierSchedule
	}
	return TierStatic
}

// selectInstants picks the departure/arrival instants appropriate for the
// tier: actual times for live trips, scheduled times for dispatched
// schedules, nothing for static timetables (only estimates are meaningful).
func selectInstants(c busapi.BusCandidate, tier DataTier) (departure, arrival *time.Time) {
	switch tier {
	case TierRealtime:
		return parseOptional(c.ActualDepartureTime), parseOptional(c.ActualArrivalTime)
	case TierSchedule:
		return parseOptional(c.ScheduledDepartureTime), parseOptional(c.ScheduledArrivalTime)
	default:
		return nil, nil
	}
}

// Normalize converts one raw candidate into the pipeline's result shape
func Normalize(c busapi.BusCandidate) BusResult {
	tier := classifyTier(c)
	departure, arrival := selectInstants(c, tier)

	var timetableDep, timetableArr string
	if tier == TierStatic {
		if hasValue(c.DepartureTimeAtOrigin) {
			timetableDep = timefmt.FormatClockString(*c.DepartureTimeAtOrigin)
		}
		if hasValue(c.ArrivalTimeAtDestination) {
			timetableArr = timefmt.FormatClockString(*c.ArrivalTimeAtDestination)
		}
	}

	return BusResult{
		TripID:                   strValue(c.TripID),
		ScheduleID:               strValue(c.ScheduleID),
		RouteID:                  strValue(c.RouteID),
		RouteNumber:              strValue(c.RouteNumber),
		RouteName:                strValue(c.RouteName),
		RouteThrough:             strValue(c.RouteThrough),
		OperatorName:             strValue(c.OperatorName),
		BusPlateNumber:           strValue(c.BusPlateNumber),
		BusModel:                 strValue(c.BusModel),
		BusCapacity:              intValue(c.BusCapacity),
		DistanceKm:               floatValue(c.DistanceKm),
		EstimatedDurationMinutes: intValue(c.EstimatedDurationMinutes),
		RoadType:                 strValue(c.RoadType),
		TripStatus:               strValue(c.TripStatus),
		Tier:                     tier,
		Departure:                departure,
		Arrival:                  arrival,
		TimetableDeparture:       timetableDep,
		TimetableArrival:         timetableArr,
		StatusMessage:            strValue(c.StatusMessage),
	}
}

// Key returns the stable identity for a result at the given list position.
// The precedence encodes real business identity: a live trip outranks its
// schedule, which outranks the bare route; static records sharing a route
// stay distinct through the positional suffix.
func Key(r BusResult, index int) string {
	if r.TripID != "" {
		return "trip:" + r.TripID
	}
	if r.ScheduleID != "" {
		return "schedule:" + r.ScheduleID
	}
	return fmt.Sprintf("route:%s#%d", r.RouteID, index)
}

func hasValue(s *string) bool {
	return s != nil && *s != ""
}

func parseOptional(s *string) *time.Time {
	if s == nil {
		return nil
	}
	return timefmt.ToInstant(*s)
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
