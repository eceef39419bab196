package tui

import (
	"fmt"

	"github.com/Busmate-Lk/busmatectl/pkg/busapi"
	"github.com/Busmate-Lk/busmatectl/pkg/config"
	"github.com/Busmate-Lk/busmatectl/pkg/session"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

var accentOptions = []huh.Option[string]{
	huh.NewOption("Teal (default)", "36"),
	huh.NewOption("Purple", "99"),
	huh.NewOption("Pink", "205"),
	huh.NewOption("Orange", "208"),
	huh.NewOption("Green", "82"),
}

// RunSettingsTUI edits persisted user settings interactively
func RunSettingsTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var action string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Settings").
				Options(
					huh.NewOption("🏠 Set home stop", "home"),
					huh.NewOption("🎨 Accent color", "accent"),
				).
				Value(&action),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	if action == "accent" {
		return runAccentPicker(cfg)
	}
	return runHomeStopPicker(cfg)
}

func runAccentPicker(cfg *config.AppConfig) error {
	color := cfg.AccentColor
	if color == "" {
		color = "36"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pick an accent color").
				Options(accentOptions...).
				Value(&color),
		),
	).WithTheme(GetCustomTheme(color))

	if err := form.Run(); err != nil {
		return err
	}

	cfg.AccentColor = color
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(GetCustomTheme(color).Focused.Title.Render("Accent color saved."))
	return nil
}

func runHomeStopPicker(cfg *config.AppConfig) error {
	theme := GetTheme()

	var query string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search for your home stop").
				Placeholder("e.g. Kandy").
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
		Title("Searching stops...").
		Action(func() {
			stops, err = client.SearchStops(query)
		}).
		Run()

	if err != nil {
		return fmt.Errorf("could not look up stop: %w", err)
	}
	if len(stops) == 0 {
		fmt.Println(errorStyle.Render("No stops matched your query."))
		return nil
	}

	options := make([]huh.Option[string], 0, len(stops))
	for _, s := range stops {
		label := s.Name
		if s.City != "" {
			label = fmt.Sprintf("%s (%s)", s.Name, s.City)
		}
		options = append(options, huh.NewOption(label, s.ID))
	}

	var stopID string
	pickForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select your home stop").
				Options(options...).
				Value(&stopID),
		),
	).WithTheme(theme)

	if err := pickForm.Run(); err != nil {
		return err
	}

	for _, s := range stops {
		if s.ID == stopID {
			cfg.HomeStopID = s.ID
			cfg.HomeStopName = s.Name
			break
		}
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("✅ Home stop saved as: %s\n", cfg.HomeStopName)
	return nil
}
