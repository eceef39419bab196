package tui

import (
	"fmt"

	"github.com/Busmate-Lk/busmatectl/pkg/busapi"
	"github.com/Busmate-Lk/busmatectl/pkg/config"
	"github.com/Busmate-Lk/busmatectl/pkg/session"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// RunStopSearchTUI offers a simple stop lookup with city context
func RunStopSearchTUI() error {
	theme := GetTheme()

	var query string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search for a stop").
				Placeholder("e.g. Pettah").
				Value(&query).
				Validate(func(s string) error {
					if len(s) < 2 {
						return fmt.Errorf("enter at least 2 characters")
					}
					return nil
				}),
		),
	).WithTheme(theme)

	if err := form.Run(); err != nil {
		return err
	}

	client := busapi.NewClient(session.FromEnv())

	var stops []busapi.StopSummary
	var err error
	_ = spinner.New().
		Title(fmt.Sprintf("Searching stops for '%s'...", query)).
		Action(func() {
			stops, err = client.SearchStops(query)
		}).
		Run()

	if err != nil {
		fmt.Println(errorStyle.Render("Stop search failed: " + err.Error()))
		return nil
	}

	if len(stops) == 0 {
		fmt.Println(errorStyle.Render("No stops matched your query."))
		return nil
	}

	cfg, _ := config.Load()

	fmt.Println(accentStyle.Render("\n--- 📍 Matching Stops ---"))
	for _, s := range stops {
		city := ""
		if s.City != "" {
			city = dimStyle.Render(" · " + s.City)
		}
		star := ""
		if cfg != nil && cfg.IsFavorite(s.ID) {
			star = accentStyle.Render(" ★")
		}
		fmt.Printf("  %s%s %s%s\n", s.Name, city, dimStyle.Render("("+s.ID+")"), star)
	}
	fmt.Println()

	return nil
}
