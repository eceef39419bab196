package busapi

// The Busmate passenger API uses partial objects throughout: every field the
// backend might omit is a pointer here, and consumers normalize at the
// boundary instead of null-checking downstream.

// StopSummary is a single entry from /api/passenger/stops/search
type StopSummary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// StopSearchResponse wraps the paged stop search result
type StopSearchResponse struct {
	Content       []StopSummary `json:"content"`
	TotalElements int           `json:"totalElements"`
}

// BusCandidate is one raw record from the aggregated find-my-bus endpoint.
// Records come from three data tiers (live trips, dispatched schedules,
// static timetables) and populate different subsets of the time fields.
type BusCandidate struct {
	TripID                   *string  `json:"tripId,omitempty"`
	ScheduleID               *string  `json:"scheduleId,omitempty"`
	RouteID                  *string  `json:"routeId,omitempty"`
	RouteNumber              *string  `json:"routeNumber,omitempty"`
	RouteName                *string  `json:"routeName,omitempty"`
	RouteThrough             *string  `json:"routeThrough,omitempty"`
	OperatorName             *string  `json:"operatorName,omitempty"`
	BusPlateNumber           *string  `json:"busPlateNumber,omitempty"`
	BusModel                 *string  `json:"busModel,omitempty"`
	BusCapacity              *int     `json:"busCapacity,omitempty"`
	DistanceKm               *float64 `json:"distanceKm,omitempty"`
	EstimatedDurationMinutes *int     `json:"estimatedDurationMinutes,omitempty"`
	RoadType                 *string  `json:"roadType,omitempty"`
	TripStatus               *string  `json:"tripStatus,omitempty"`
	DataTier                 *string  `json:"dataTier,omitempty"`
	ActualDepartureTime      *string  `json:"actualDepartureTime,omitempty"`
	ActualArrivalTime        *string  `json:"actualArrivalTime,omitempty"`
	ScheduledDepartureTime   *string  `json:"scheduledDepartureTime,omitempty"`
	ScheduledArrivalTime     *string  `json:"scheduledArrivalTime,omitempty"`
	DepartureTimeAtOrigin    *string  `json:"departureTimeAtOrigin,omitempty"`
	ArrivalTimeAtDestination *string  `json:"arrivalTimeAtDestination,omitempty"`
	StatusMessage            *string  `json:"statusMessage,omitempty"`
}

// FindMyBusResponse is the aggregated search payload
type FindMyBusResponse struct {
	FromStop *StopSummary   `json:"fromStop,omitempty"`
	ToStop   *StopSummary   `json:"toStop,omitempty"`
	Results  []BusCandidate `json:"results"`
}

// TripSummary is one entry from /api/passenger/trips/search
type TripSummary struct {
	ID                     string  `json:"id"`
	RouteID                *string `json:"routeId,omitempty"`
	RouteNumber            *string `json:"routeNumber,omitempty"`
	RouteName              *string `json:"routeName,omitempty"`
	OperatorName           *string `json:"operatorName,omitempty"`
	TripStatus             *string `json:"tripStatus,omitempty"`
	ServiceDate            *string `json:"serviceDate,omitempty"`
	ScheduledDepartureTime *string `json:"scheduledDepartureTime,omitempty"`
	ScheduledArrivalTime   *string `json:"scheduledArrivalTime,omitempty"`
}

// TripSearchResponse wraps the paged trip search result
type TripSearchResponse struct {
	Content       []TripSummary `json:"content"`
	TotalElements int           `json:"totalElements"`
}

// StopTiming is a stop along a route or trip traversal. StopOrder is the
// authoritative sequence index; array position in any response is not.
type StopTiming struct {
	StopID              *string  `json:"stopId,omitempty"`
	StopName            *string  `json:"stopName,omitempty"`
	StopOrder           *int     `json:"stopOrder,omitempty"`
	ArrivalTime         *string  `json:"arrivalTime,omitempty"`
	DepartureTime       *string  `json:"departureTime,omitempty"`
	Latitude            *float64 `json:"latitude,omitempty"`
	Longitude           *float64 `json:"longitude,omitempty"`
	DistanceFromStartKm *float64 `json:"distanceFromStartKm,omitempty"`
}

// TripDetail is the full payload of /api/passenger/trips/{tripId}
type TripDetail struct {
	ID                string       `json:"id"`
	RouteID           *string      `json:"routeId,omitempty"`
	ScheduleID        *string      `json:"scheduleId,omitempty"`
	RouteNumber       *string      `json:"routeNumber,omitempty"`
	RouteName         *string      `json:"routeName,omitempty"`
	OperatorName      *string      `json:"operatorName,omitempty"`
	BusPlateNumber    *string      `json:"busPlateNumber,omitempty"`
	TripStatus        *string      `json:"tripStatus,omitempty"`
	ServiceDate       *string      `json:"serviceDate,omitempty"`
	DepartureStop     *StopTiming  `json:"departureStop,omitempty"`
	ArrivalStop       *StopTiming  `json:"arrivalStop,omitempty"`
	IntermediateStops []StopTiming `json:"intermediateStops,omitempty"`
	OperatingDays     []string     `json:"operatingDays,omitempty"`
}

// RouteDetail is the full payload of /api/passenger/routes/{routeId},
// used as the static-timetable fallback when no live trip exists.
type RouteDetail struct {
	ID                       string       `json:"id"`
	RouteNumber              *string      `json:"routeNumber,omitempty"`
	RouteName                *string      `json:"routeName,omitempty"`
	OriginCity               *string      `json:"originCity,omitempty"`
	DestinationCity          *string      `json:"destinationCity,omitempty"`
	RoadType                 *string      `json:"roadType,omitempty"`
	TotalDistanceKm          *float64     `json:"totalDistanceKm,omitempty"`
	EstimatedDurationMinutes *int         `json:"estimatedDurationMinutes,omitempty"`
	Stops                    []StopTiming `json:"stops,omitempty"`
	OperatingDays            []string     `json:"operatingDays,omitempty"`
}
