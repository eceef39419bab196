package cmd

import (
	"fmt"
	"strings"

	"github.com/Busmate-Lk/busmatectl/pkg/busapi"
	"github.com/Busmate-Lk/busmatectl/pkg/session"
	"github.com/Busmate-Lk/busmatectl/pkg/timefmt"
	"github.com/Busmate-Lk/busmatectl/pkg/waypoint"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var routeCmd = &cobra.Command{
	Use:   "route <routeId>",
	Short: "Show the static route detail with its stop sequence",
	Long:  "The timetable-only view: useful when no live trip exists for a service.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		routeID := args[0]

		client := busapi.NewClient(session.FromEnv())

		var route *busapi.RouteDetail
		var err error
		_ = spinner.New().
			Title(fmt.Sprintf("Fetching route %s...", routeID)).
			Action(func() {
				route, err = client.GetRoute(routeID)
			}).
			Run()

		if err != nil {
			return err
		}

		printRouteDetail(route)
		return nil
	},
}

func printRouteDetail(route *busapi.RouteDetail) {
	title := "Route " + route.ID
	if route.RouteNumber != nil {
		title = "Route " + *route.RouteNumber
		if route.RouteName != nil {
			title += ": " + *route.RouteName
		}
	}
	fmt.Printf("\n--- 🛣️ %s ---\n", title)

	if route.OriginCity != nil && route.DestinationCity != nil {
		fmt.Printf("Runs:      %s -> %s\n", *route.OriginCity, *route.DestinationCity)
	}
	if route.RoadType != nil {
		fmt.Printf("Road:      %s\n", *route.RoadType)
	}
	if route.TotalDistanceKm != nil {
		fmt.Printf("Distance:  %.1f km\n", *route.TotalDistanceKm)
	}
	if route.EstimatedDurationMinutes != nil {
		fmt.Printf("Duration:  %s\n", timefmt.FormatDuration(route.EstimatedDurationMinutes))
	}
	if len(route.OperatingDays) > 0 {
		fmt.Printf("Days:      %s\n", strings.Join(route.OperatingDays, ", "))
	}

	if len(route.Stops) == 0 {
		fmt.Println()
		return
	}

	// Route stops arrive as one flat ordered list; split off the endpoints
	// so the deduplicator can do its usual work.
	first := route.Stops[0]
	last := route.Stops[len(route.Stops)-1]
	waypoints := waypoint.Build(
		stopTimingToWaypointStop(&first),
		stopTimingsToWaypointStops(route.Stops),
		stopTimingToWaypointStop(&last),
		route.TotalDistanceKm,
	)

	if len(waypoints) > 0 {
		fmt.Println("\nStop sequence:")
		for i, w := range waypoints {
			fmt.Printf("  %2d. %s (%.1f km)\n", i+1, w.Name, w.DistanceKm)
		}
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(routeCmd)
}
