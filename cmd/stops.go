package cmd

import (
	"fmt"
	"strings"

	"github.com/Busmate-Lk/busmatectl/pkg/busapi"
	"github.com/Busmate-Lk/busmatectl/pkg/config"
	"github.com/Busmate-Lk/busmatectl/pkg/session"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var stopsCmd = &cobra.Command{
	Use:   "stops <query>",
	Short: "Search for bus stops by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		if len(query) < 2 {
			return fmt.Errorf("query must be at least 2 characters")
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
			return err
		}

		if len(stops) == 0 {
			fmt.Printf("No stops matched '%s'.\n", query)
			return nil
		}

		cfg, _ := config.Load()

		fmt.Printf("\n--- 📍 Stops matching '%s' ---\n", query)
		for _, s := range stops {
			city := ""
			if s.City != "" {
				city = ", " + s.City
			}
			star := ""
			if cfg != nil && cfg.IsFavorite(s.ID) {
				star = " ★"
			}
			fmt.Printf("  %s%s  (id: %s)%s\n", s.Name, city, s.ID, star)
		}
		fmt.Println()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopsCmd)
}
