package cmd

import (
	"fmt"
	"time"

	"github.com/Busmate-Lk/busmatectl/pkg/busapi"
	"github.com/Busmate-Lk/busmatectl/pkg/config"
	"github.com/Busmate-Lk/busmatectl/pkg/search"
	"github.com/Busmate-Lk/busmatectl/pkg/session"
	"github.com/Busmate-Lk/busmatectl/pkg/timefmt"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find buses between two stops",
	Long: `Runs the aggregated passenger search: live trips, dispatched schedules,
and static timetable entries between the given stops, merged into one list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fromText, _ := cmd.Flags().GetString("from")
		toText, _ := cmd.Flags().GetString("to")
		dateStr, _ := cmd.Flags().GetString("date")
		routeFilter, _ := cmd.Flags().GetString("route")
		expressway, _ := cmd.Flags().GetBool("expressway")
		after, _ := cmd.Flags().GetString("after")
		sortFlag, _ := cmd.Flags().GetString("sort")

		cfg, _ := config.Load()

		if fromText == "" && cfg != nil && cfg.DefaultOrigin != "" {
			fromText = cfg.DefaultOrigin
		}
		if toText == "" && cfg != nil && cfg.HomeStopName != "" {
			toText = cfg.HomeStopName
		}
		if fromText == "" || toText == "" {
			return fmt.Errorf("must specify both --from and --to (or configure defaults with 'busmatectl config')")
		}

		travelDate := time.Now()
		if dateStr != "" {
			parsed, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", dateStr)
			}
			travelDate = parsed
		}

		sortKey, ok := search.ParseSortKey(sortFlag)
		if !ok {
			return fmt.Errorf("unknown --sort %q (departure, duration, distance, tier)", sortFlag)
		}

		client := busapi.NewClient(session.FromEnv())

		fromStop, err := resolveStop(client, fromText)
		if err != nil {
			return err
		}
		toStop, err := resolveStop(client, toText)
		if err != nil {
			return err
		}

		agg := search.NewAggregator(client)

		var results []search.BusResult
		var searchErr error
		_ = spinner.New().
			Title(fmt.Sprintf("Finding buses from %s to %s...", fromStop.Name, toStop.Name)).
			Action(func() {
				results, searchErr = agg.Search(search.Criteria{
					OriginStopID:      fromStop.ID,
					DestinationStopID: toStop.ID,
					TravelDate:        travelDate,
				})
			}).
			Run()

		if searchErr != nil {
			return searchErr
		}

		filters := search.FilterState{
			RouteNumber:    routeFilter,
			DepartureAfter: after,
			SortBy:         sortKey,
		}
		if expressway {
			filters.RoadType = search.RoadExpressway
		}
		results = search.Apply(results, filters)

		titler := cases.Title(language.English)
		fmt.Printf("\n--- 🚌 Buses: %s -> %s (%s) ---\n",
			titler.String(fromStop.Name), titler.String(toStop.Name), travelDate.Format("Mon 2 Jan"))

		if len(results) == 0 {
			fmt.Println("No buses found for this route and date.")
			return nil
		}

		for i, r := range results {
			printResultLine(i, r)
		}
		fmt.Println()

		return nil
	},
}

// resolveStop picks the best stop match for a free-text name
func resolveStop(client *busapi.Client, text string) (*busapi.StopSummary, error) {
	stops, err := client.SearchStops(text)
	if err != nil {
		return nil, fmt.Errorf("could not look up stop %q: %w", text, err)
	}
	if len(stops) == 0 {
		return nil, fmt.Errorf("no stops matched %q", text)
	}
	if len(stops) > 1 {
		fmt.Printf("⚠️ %d stops matched %q, using '%s' (%s)\n", len(stops), text, stops[0].Name, stops[0].City)
	}
	return &stops[0], nil
}

func printResultLine(index int, r search.BusResult) {
	badge := "⚪"
	switch r.Tier {
	case search.TierRealtime:
		badge = "🟢"
	case search.TierSchedule:
		badge = "🟡"
	}

	dep := timefmt.FormatClock(r.Departure)
	arr := timefmt.FormatClock(r.Arrival)
	if r.Tier == search.TierStatic {
		if r.TimetableDeparture != "" {
			dep = r.TimetableDeparture
		}
		if r.TimetableArrival != "" {
			arr = r.TimetableArrival
		}
	}

	duration := "N/A"
	if r.EstimatedDurationMinutes > 0 {
		m := r.EstimatedDurationMinutes
		duration = timefmt.FormatDuration(&m)
	}

	fmt.Printf("%d. %s \033[1m%s\033[0m %s -> %s (%s, %s)\n",
		index+1, badge, r.RouteNumber, dep, arr, duration, r.Tier)
	if r.OperatorName != "" || r.BusPlateNumber != "" {
		fmt.Printf("     %s %s\n", r.OperatorName, r.BusPlateNumber)
	}
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("from", "f", "", "Origin stop name (defaults to your configured origin)")
	searchCmd.Flags().StringP("to", "t", "", "Destination stop name (defaults to your home stop)")
	searchCmd.Flags().StringP("date", "d", "", "Travel date YYYY-MM-DD (defaults to today)")
	searchCmd.Flags().StringP("route", "r", "", "Filter by route number (substring match)")
	searchCmd.Flags().BoolP("expressway", "e", false, "Only expressway services")
	searchCmd.Flags().StringP("after", "a", "", "Earliest departure time of day, HH:MM")
	searchCmd.Flags().StringP("sort", "s", "departure", "Sort by: departure, duration, distance, tier")
}
