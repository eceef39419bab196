package tui

import (
	"fmt"
	"time"

	"github.com/Busmate-Lk/busmatectl/pkg/busapi"
	"github.com/Busmate-Lk/busmatectl/pkg/config"
	"github.com/Busmate-Lk/busmatectl/pkg/locator"
	"github.com/Busmate-Lk/busmatectl/pkg/search"
	"github.com/Busmate-Lk/busmatectl/pkg/session"
	"github.com/Busmate-Lk/busmatectl/pkg/timefmt"
	"github.com/Busmate-Lk/busmatectl/pkg/waypoint"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// stopSearcher adapts the API client to the locator's search function
func stopSearcher(client *busapi.Client) locator.SearchFunc {
	return func(query string) ([]locator.Suggestion, error) {
		stops, err := client.SearchStops(query)
		if err != nil {
			return nil, err
		}
		suggestions := make([]locator.Suggestion, 0, len(stops))
		for _, s := range stops {
			suggestions = append(suggestions, locator.Suggestion{ID: s.ID, Name: s.Name, City: s.City})
		}
		return suggestions, nil
	}
}

// resolveStopField prompts for a free-text query, feeds it through the
// field's debounced search, and lets the user pick the matching stop.
func resolveStopField(field *locator.Field, prompt string, theme *huh.Theme) error {
	for {
		var query string
		inputForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(prompt).
					Placeholder("e.g. Colombo Fort").
					Value(&query),
			),
		).WithTheme(theme)

		if err := inputForm.Run(); err != nil {
			return err
		}

		updated := make(chan []locator.Suggestion, 1)
		field.SetOnUpdate(func(s []locator.Suggestion) {
			select {
			case updated <- s:
			default:
			}
		})
		field.SetInput(query)

		var suggestions []locator.Suggestion
		_ = spinner.New().
			Title(fmt.Sprintf("Searching stops for '%s'...", query)).
			Action(func() {
				select {
				case suggestions = <-updated:
				case <-time.After(10 * time.Second):
				}
			}).
			Run()

		if len(suggestions) == 0 {
			fmt.Println(errorStyle.Render("No stops matched. Try a longer or different query."))
			continue
		}

		options := make([]huh.Option[string], 0, len(suggestions))
		for i, s := range suggestions {
			label := s.Name
			if s.City != "" {
				label = fmt.Sprintf("%s (%s)", s.Name, s.City)
			}
			options = append(options, huh.NewOption(label, fmt.Sprintf("%d", i)))
		}

		var picked string
		pickForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Select a stop").
					Options(options...).
					Value(&picked),
			),
		).WithTheme(theme)

		if err := pickForm.Run(); err != nil {
			return err
		}

		var idx int
		fmt.Sscanf(picked, "%d", &idx)
		field.Select(suggestions[idx])
		return nil
	}
}

// RunSearchTUI walks through the full find-my-bus flow
func RunSearchTUI() error {
	theme := GetTheme()
	client := busapi.NewClient(session.FromEnv())

	origin := locator.NewField(stopSearcher(client))
	destination := locator.NewField(stopSearcher(client))

	cfg, _ := config.Load()
	if cfg != nil && cfg.HomeStopID != "" {
		destination.Select(locator.Suggestion{ID: cfg.HomeStopID, Name: cfg.HomeStopName})
		fmt.Println(dimStyle.Render("Destination pre-filled with your home stop: " + cfg.HomeStopName))
	}

	if err := resolveStopField(origin, "Where are you boarding?", theme); err != nil {
		return err
	}
	if _, ok := destination.SelectedID(); !ok {
		if err := resolveStopField(destination, "Where are you going?", theme); err != nil {
			return err
		}
	}

	var keepDirection bool
	swapForm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Search %s -> %s?", origin.Text(), destination.Text())).
				Affirmative("Search").
				Negative("Swap direction").
				Value(&keepDirection),
		),
	).WithTheme(theme)
	if err := swapForm.Run(); err != nil {
		return err
	}
	if !keepDirection {
		locator.Swap(origin, destination)
	}

	dateStr := time.Now().Format("2006-01-02")
	dateForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Travel date (YYYY-MM-DD)").
				Value(&dateStr).
				Validate(func(s string) error {
					_, err := time.Parse("2006-01-02", s)
					return err
				}),
		),
	).WithTheme(theme)
	if err := dateForm.Run(); err != nil {
		return err
	}
	travelDate, _ := time.Parse("2006-01-02", dateStr)

	originID, ok := origin.SelectedID()
	if !ok {
		fmt.Println(errorStyle.Render("Origin stop was not resolved."))
		return nil
	}
	destinationID, ok := destination.SelectedID()
	if !ok {
		fmt.Println(errorStyle.Render("Destination stop was not resolved."))
		return nil
	}

	var sortFlag string
	sortForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sort results by").
				Options(
					huh.NewOption("Departure time", "departure"),
					huh.NewOption("Journey duration", "duration"),
					huh.NewOption("Distance", "distance"),
					huh.NewOption("Data freshness", "tier"),
				).
				Value(&sortFlag),
		),
	).WithTheme(theme)
	if err := sortForm.Run(); err != nil {
		return err
	}
	sortKey, _ := search.ParseSortKey(sortFlag)

	agg := search.NewAggregator(client)

	var results []search.BusResult
	var searchErr error
	_ = spinner.New().
		Title(fmt.Sprintf("Finding buses from %s to %s...", origin.Text(), destination.Text())).
		Action(func() {
			results, searchErr = agg.Search(search.Criteria{
				OriginStopID:      originID,
				DestinationStopID: destinationID,
				TravelDate:        travelDate,
			})
		}).
		Run()

	if searchErr != nil {
		fmt.Println(errorStyle.Render("Search failed: " + searchErr.Error()))
		return nil
	}

	results = search.Apply(results, search.FilterState{SortBy: sortKey})

	if len(results) == 0 {
		fmt.Println(errorStyle.Render("No buses found for this route and date."))
		return nil
	}

	from, to := agg.ResolvedStops()
	if from == "" {
		from = origin.Text()
	}
	if to == "" {
		to = destination.Text()
	}
	printResults(from, to, results)

	return offerTripDetail(client, results, theme)
}

// printResults renders the result list grouped visually by tier badge
func printResults(from, to string, results []search.BusResult) {
	titler := cases.Title(language.English)
	fmt.Println(accentStyle.Render(fmt.Sprintf("\n--- 🚌 %s -> %s ---", titler.String(from), titler.String(to))))

	for _, r := range results {
		badge := tierBadge(r.Tier)

		route := r.RouteNumber
		if r.RouteName != "" {
			route = fmt.Sprintf("%s %s", r.RouteNumber, r.RouteName)
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

		duration := ""
		if r.EstimatedDurationMinutes > 0 {
			m := r.EstimatedDurationMinutes
			duration = " · " + timefmt.FormatDuration(&m)
		}

		fmt.Printf("\n%s %s\n", badge, routeStyle.Render(route))
		fmt.Printf("  %s -> %s%s\n", timeStyle.Render(dep), timeStyle.Render(arr), dimStyle.Render(duration))
		if r.OperatorName != "" {
			fmt.Printf("  %s\n", dimStyle.Render(r.OperatorName))
		}
		if r.StatusMessage != "" {
			fmt.Printf("  %s\n", dimStyle.Render(r.StatusMessage))
		}
	}
	fmt.Println()
}

func tierBadge(tier search.DataTier) string {
	switch tier {
	case search.TierRealtime:
		return "🟢 LIVE"
	case search.TierSchedule:
		return "🟡 SCHEDULED"
	default:
		return "⚪ TIMETABLE"
	}
}

// offerTripDetail lets the user drill into a live trip's stop sequence
func offerTripDetail(client *busapi.Client, results []search.BusResult, theme *huh.Theme) error {
	options := []huh.Option[string]{huh.NewOption("No, I'm done", "")}
	for _, r := range results {
		if r.TripID == "" {
			continue
		}
		label := fmt.Sprintf("%s (%s)", r.RouteNumber, timefmt.FormatClock(r.Departure))
		options = append(options, huh.NewOption(label, r.TripID))
	}
	if len(options) == 1 {
		return nil
	}

	var tripID string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("View stop sequence for a trip?").
				Options(options...).
				Value(&tripID),
		),
	).WithTheme(theme)
	if err := form.Run(); err != nil {
		return err
	}
	if tripID == "" {
		return nil
	}

	var trip *busapi.TripDetail
	var err error
	_ = spinner.New().
		Title("Fetching trip details...").
		Action(func() {
			trip, err = client.GetTrip(tripID)
		}).
		Run()
	if err != nil {
		fmt.Println(errorStyle.Render("Could not load trip details: " + err.Error()))
		return nil
	}

	printTripStops(trip)
	return nil
}

// printTripStops renders the deduplicated, distance-ordered waypoint list
func printTripStops(trip *busapi.TripDetail) {
	fmt.Println(accentStyle.Render("\n--- 🗺️ Route Path ---"))

	waypoints := waypoint.Build(
		timingToStop(trip.DepartureStop),
		timingsToStops(trip.IntermediateStops),
		timingToStop(trip.ArrivalStop),
		nil,
	)

	if len(waypoints) == 0 {
		fmt.Println(dimStyle.Render("No plottable stops recorded for this trip."))
		return
	}

	for i, w := range waypoints {
		fmt.Printf("%2d. %s %s\n", i+1, w.Name, dimStyle.Render(fmt.Sprintf("(%.1f km)", w.DistanceKm)))
	}
	fmt.Println()
}

func timingToStop(t *busapi.StopTiming) waypoint.Stop {
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

func timingsToStops(timings []busapi.StopTiming) []waypoint.Stop {
	stops := make([]waypoint.Stop, 0, len(timings))
	for i := range timings {
		stops = append(stops, timingToStop(&timings[i]))
	}
	return stops
}
