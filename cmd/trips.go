package cmd

import (
	"fmt"
	"time"

	"github.com/Busmate-Lk/busmatectl/pkg/busapi"
	"github.com/Busmate-Lk/busmatectl/pkg/session"
	"github.com/Busmate-Lk/busmatectl/pkg/timefmt"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "List scheduled trips between two stops",
	Long:  "Queries the trip-tier endpoint directly, without static timetable fallback.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fromID, _ := cmd.Flags().GetString("from-id")
		toID, _ := cmd.Flags().GetString("to-id")
		dateStr, _ := cmd.Flags().GetString("date")
		status, _ := cmd.Flags().GetString("status")

		if fromID == "" || toID == "" {
			return fmt.Errorf("must specify --from-id and --to-id (find ids with 'busmatectl stops')")
		}

		travelDate := time.Now()
		if dateStr != "" {
			parsed, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", dateStr)
			}
			travelDate = parsed
		}

		client := busapi.NewClient(session.FromEnv())

		var trips []busapi.TripSummary
		var err error
		_ = spinner.New().
			Title("Fetching trips...").
			Action(func() {
				trips, err = client.SearchTrips(fromID, toID, travelDate, status)
			}).
			Run()

		if err != nil {
			return err
		}

		if len(trips) == 0 {
			fmt.Println("No trips found between these stops on that date.")
			return nil
		}

		fmt.Printf("\n--- 🚌 Trips on %s ---\n", travelDate.Format("Mon 2 Jan"))
		for _, t := range trips {
			route := strOr(t.RouteNumber, "?")
			if t.RouteName != nil {
				route += " " + *t.RouteName
			}

			dep := "N/A"
			if t.ScheduledDepartureTime != nil {
				dep = timefmt.FormatClockString(*t.ScheduledDepartureTime)
			}

			line := fmt.Sprintf("  [%s] %s", dep, route)
			if t.OperatorName != nil {
				line += " · " + *t.OperatorName
			}
			if t.TripStatus != nil {
				line += fmt.Sprintf(" (%s)", *t.TripStatus)
			}
			fmt.Println(line + "  id: " + t.ID)
		}
		fmt.Println()

		return nil
	},
}

func strOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func init() {
	rootCmd.AddCommand(tripsCmd)

	tripsCmd.Flags().String("from-id", "", "Origin stop id")
	tripsCmd.Flags().String("to-id", "", "Destination stop id")
	tripsCmd.Flags().StringP("date", "d", "", "Travel date YYYY-MM-DD (defaults to today)")
	tripsCmd.Flags().String("status", "", "Filter by trip status (e.g. SCHEDULED, DEPARTED)")
}
