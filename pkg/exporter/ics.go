package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Busmate-Lk/busmatectl/pkg/busapi"
	"github.com/Busmate-Lk/busmatectl/pkg/timefmt"

	ics "github.com/arran4/golang-ical"
)

// GenerateTripICS writes a calendar event for one trip to the provided writer
func GenerateTripICS(trip *busapi.TripDetail, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	// Timezone location for Sri Lanka
	loc, err := time.LoadLocation("Asia/Colombo")
	if err != nil {
		return fmt.Errorf("could not load timezone: %w", err)
	}

	serviceDate := time.Now().In(loc)
	if trip.ServiceDate != nil {
		if d, err := time.ParseInLocation("2006-01-02", *trip.ServiceDate, loc); err == nil {
			serviceDate = d
		}
	}

	start, ok := stopClockOnDate(trip.DepartureStop, serviceDate, loc, false)
	if !ok {
		return fmt.Errorf("trip %s has no departure time to export", trip.ID)
	}
	end, ok := stopClockOnDate(trip.ArrivalStop, serviceDate, loc, true)
	if !ok {
		// An open-ended event is useless in a calendar; assume a long ride
		end = start.Add(3 * time.Hour)
	}

	event := cal.AddEvent(fmt.Sprintf("busmate-trip-%s", trip.ID))
	event.SetCreatedTime(time.Now())
	event.SetDtStampTime(time.Now())
	event.SetModifiedAt(time.Now())
	event.SetStartAt(start)
	event.SetEndAt(end)

	summary := "Bus trip"
	if trip.RouteNumber != nil && trip.RouteName != nil {
		summary = fmt.Sprintf("Bus %s: %s", *trip.RouteNumber, *trip.RouteName)
	} else if trip.RouteName != nil {
		summary = "Bus: " + *trip.RouteName
	}
	event.SetSummary(summary)

	if trip.DepartureStop != nil && trip.DepartureStop.StopName != nil {
		event.SetLocation(*trip.DepartureStop.StopName)
	}

	var desc strings.Builder
	if trip.OperatorName != nil {
		fmt.Fprintf(&desc, "Operator: %s\n", *trip.OperatorName)
	}
	if trip.BusPlateNumber != nil {
		fmt.Fprintf(&desc, "Bus: %s\n", *trip.BusPlateNumber)
	}
	if len(trip.IntermediateStops) > 0 {
		desc.WriteString("Stops:\n")
		for i, s := range trip.IntermediateStops {
			if s.StopName == nil {
				continue
			}
			clock := ""
			if s.ArrivalTime != nil {
				clock = " (" + timefmt.FormatClockString(*s.ArrivalTime) + ")"
			}
			fmt.Fprintf(&desc, "%d. %s%s\n", i+1, *s.StopName, clock)
		}
	}
	event.SetDescription(desc.String())

	return cal.SerializeTo(w)
}

// stopClockOnDate anchors a stop's clock reading to the trip's service date.
// arrival selects the arrival time over the departure time.
func stopClockOnDate(stop *busapi.StopTiming, date time.Time, loc *time.Location, arrival bool) (time.Time, bool) {
	if stop == nil {
		return time.Time{}, false
	}

	raw := stop.DepartureTime
	if arrival && stop.ArrivalTime != nil {
		raw = stop.ArrivalTime
	}
	if raw == nil {
		return time.Time{}, false
	}

	instant := timefmt.ToInstant(*raw)
	if instant == nil {
		return time.Time{}, false
	}

	return time.Date(date.Year(), date.Month(), date.Day(),
		instant.Hour(), instant.Minute(), 0, 0, loc), true
}
