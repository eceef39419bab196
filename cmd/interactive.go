package cmd

import (
	"github.com/Busmate-Lk/busmatectl/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to search buses, browse stops, and manage settings interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunTUI()
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
