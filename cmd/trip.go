package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Busmate-Lk/busmatectl/pkg/busapi"
	"github.com/Busmate-Lk/busmatectl/pkg/session"
	"github.com/Busmate-Lk/busmatectl/pkg/timefmt"
	"github.com/Busmate-Lk/busmatectl/pkg/waypoint"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var tripCmd = &cobra.Command{
	Use:   "trip <tripId>",
	Short: "Show full details for one trip",
	Long:  "Fetches the trip including its intermediate stops, and the route it runs for operating days and total distance.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tripID := args[0]

		client := busapi.NewClient(session.FromEnv())

		var trip *busapi.TripDetail
		var err error
		_ = spinner.New().
			Title(fmt.Sprintf("Fetching trip %s...", tripID)).
			Action(func() {
				trip, err = client.GetTrip(tripID)
			}).
			Run()

		if err != nil {
			return err
		}

		// The route detail is secondary enrichment: if it fails we still
		// render the trip, just without operating days / total distance.
		var route *busapi.RouteDetail
		if trip.RouteID != nil {
			route, err = client.GetRoute(*trip.RouteID)
			if err != nil {
				slog.Warn("route enrichment failed, rendering trip without it",
					"tripId", tripID, "routeId", *trip.RouteID, "error", err)
				route = nil
			}
		}

		printTripDetail(trip, route)
		return nil
	},
}

func printTripDetail(trip *busapi.TripDetail, route *busapi.RouteDetail) {
	title := "Trip " + trip.ID
	if trip.RouteNumber != nil && trip.RouteName != nil {
		title = fmt.Sprintf("Bus %s: %s", *trip.RouteNumber, *trip.RouteName)
	}
	fmt.Printf("\n--- 🚌 %s ---\n", title)

	if trip.ServiceDate != nil {
		fmt.Printf("Date:      %s\n", *trip.ServiceDate)
	}
	if trip.TripStatus != nil {
		fmt.Printf("Status:    %s\n", *trip.TripStatus)
	}
	if trip.OperatorName != nil {
		fmt.Printf("Operator:  %s\n", *trip.OperatorName)
	}
	if trip.BusPlateNumber != nil {
		fmt.Printf("Bus:       %s\n", *trip.BusPlateNumber)
	}

	if trip.DepartureStop != nil && trip.DepartureStop.DepartureTime != nil {
		fmt.Printf("Departs:   %s", timefmt.FormatClockString(*trip.DepartureStop.DepartureTime))
		if trip.DepartureStop.StopName != nil {
			fmt.Printf(" from %s", *trip.DepartureStop.StopName)
		}
		fmt.Println()
	}
	if trip.ArrivalStop != nil && trip.ArrivalStop.ArrivalTime != nil {
		fmt.Printf("Arrives:   %s", timefmt.FormatClockString(*trip.ArrivalStop.ArrivalTime))
		if trip.ArrivalStop.StopName != nil {
			fmt.Printf(" at %s", *trip.ArrivalStop.StopName)
		}
		fmt.Println()
	}

	// Enriched fields, omitted when the route lookup failed
	operatingDays := trip.OperatingDays
	var totalDistance *float64
	if route != nil {
		if len(operatingDays) == 0 {
			operatingDays = route.OperatingDays
		}
		totalDistance = route.TotalDistanceKm
		if route.EstimatedDurationMinutes != nil {
			fmt.Printf("Duration:  %s\n", timefmt.FormatDuration(route.EstimatedDurationMinutes))
		}
	}
	if len(operatingDays) > 0 {
		fmt.Printf("Runs:      %s\n", strings.Join(operatingDays, ", "))
	}

	waypoints := waypoint.Build(
		stopTimingToWaypointStop(trip.DepartureStop),
		stopTimingsToWaypointStops(trip.IntermediateStops),
		stopTimingToWaypointStop(trip.ArrivalStop),
		totalDistance,
	)

	if len(waypoints) > 0 {
		fmt.Println("\nRoute path:")
		for i, w := range waypoints {
			fmt.Printf("  %2d. %s (%.1f km)\n", i+1, w.Name, w.DistanceKm)
		}
	}
	fmt.Println()
}

func stopTimingToWaypointStop(t *busapi.StopTiming) waypoint.Stop {
	if t == nil {
		return waypoint.Stop{}
	}
	name := ""
	if t.StopName != nil {
		name = *t.StopName
	}
	return waypoint.Stop{
		Name:       name,
		Latitude:   t.Latitude,
		Longitude:  t.Longitude,
		DistanceKm: t.DistanceFromStartKm,
		Order:      t.StopOrder,
	}
}

func stopTimingsToWaypointStops(timings []busapi.StopTiming) []waypoint.Stop {
	stops := make([]waypoint.Stop, 0, len(timings))
	for i := range timings {
		stops = append(stops, stopTimingToWaypointStop(&timings[i]))
	}
	return stops
}

func init() {
	rootCmd.AddCommand(tripCmd)
}
