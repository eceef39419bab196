package cmd

import (
	"fmt"

	"github.com/Busmate-Lk/busmatectl/pkg/busapi"
	"github.com/Busmate-Lk/busmatectl/pkg/config"
	"github.com/Busmate-Lk/busmatectl/pkg/session"
	"github.com/Busmate-Lk/busmatectl/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage busmatectl configuration",
	Long:  "View or edit your local settings (home stop, default origin, accent color).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		setHome, _ := cmd.Flags().GetString("set-home")
		setOrigin, _ := cmd.Flags().GetString("set-origin")
		addFavorite, _ := cmd.Flags().GetString("add-favorite")

		if setHome != "" {
			stop, err := lookupStop(setHome)
			if err != nil {
				return err
			}
			cfg.HomeStopID = stop.ID
			cfg.HomeStopName = stop.Name
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("✅ Home stop saved as: %s (ID: %s)\n", stop.Name, stop.ID)
			return nil
		}

		if setOrigin != "" {
			stop, err := lookupStop(setOrigin)
			if err != nil {
				return err
			}
			cfg.DefaultOriginID = stop.ID
			cfg.DefaultOrigin = stop.Name
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("✅ Default origin saved as: %s (ID: %s)\n", stop.Name, stop.ID)
			return nil
		}

		if addFavorite != "" {
			stop, err := lookupStop(addFavorite)
			if err != nil {
				return err
			}
			if !cfg.AddFavorite(stop.ID) {
				fmt.Printf("'%s' is already a favorite.\n", stop.Name)
				return nil
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("⭐ Added favorite stop: %s (ID: %s)\n", stop.Name, stop.ID)
			return nil
		}

		// If no flags are given, launch the interactive settings flow
		return tui.RunSettingsTUI()
	},
}

func lookupStop(query string) (*busapi.StopSummary, error) {
	fmt.Printf("Searching stops for '%s'...\n", query)

	client := busapi.NewClient(session.FromEnv())
	stops, err := client.SearchStops(query)
	if err != nil {
		return nil, fmt.Errorf("could not look up stop: %w", err)
	}
	if len(stops) == 0 {
		return nil, fmt.Errorf("no matching stops found for '%s'", query)
	}

	// Snag the first/best match
	return &stops[0], nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("set-home", "", "Set your home stop (used as default search destination)")
	configCmd.Flags().String("set-origin", "", "Set your default origin stop")
	configCmd.Flags().String("add-favorite", "", "Add a stop to your favorites (starred in stop listings)")
}
