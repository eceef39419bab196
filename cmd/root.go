package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "busmatectl",
	Short: "A CLI and TUI for Busmate passenger bus search",
	Long: `busmatectl is a terminal client for the Busmate transit system:
search buses between stops, inspect trips and routes, and export
your journey to a calendar file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
