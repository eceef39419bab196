package cmd

import (
	"fmt"
	"os"

	"github.com/Busmate-Lk/busmatectl/pkg/busapi"
	"github.com/Busmate-Lk/busmatectl/pkg/exporter"
	"github.com/Busmate-Lk/busmatectl/pkg/session"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a trip to an ICS calendar file",
	Long:  `Writes a calendar event for a specific trip so your journey shows up in your calendar app.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tripID, _ := cmd.Flags().GetString("trip")
		output, _ := cmd.Flags().GetString("output")

		client := busapi.NewClient(session.FromEnv())

		var trip *busapi.TripDetail
		var err error
		_ = spinner.New().
			Title(fmt.Sprintf("Exporting trip %s to %s...", tripID, output)).
			Action(func() {
				trip, err = client.GetTrip(tripID)
			}).
			Run()

		if err != nil {
			return fmt.Errorf("failed to fetch trip: %w", err)
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporter.GenerateTripICS(trip, file); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("✨ Successfully exported trip to %s\n", output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("trip", "t", "", "Trip ID to export (find one with 'busmatectl search')")
	exportCmd.Flags().StringP("output", "o", "trip.ics", "Output file path")
	exportCmd.MarkFlagRequired("trip")
}
