// Package cli wires the foodbiz commands: a server exposing the game
// API and a headless simulator that plays scripted sessions.
package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

// NewRootCommand builds the foodbiz command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "foodbiz",
		Short: "Frozen-treats vending challenge",
		Long: `foodbiz runs the frozen-treats vending challenge: a fixed-length
business game of daily location/product decisions under simulated demand.

Examples:
  foodbiz serve
  foodbiz serve --config ./config.yaml
  foodbiz simulate --strategy foodtruck --seed 42
  foodbiz simulate --strategy trolley --weather Słonecznie`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml if present)")

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewSimulateCommand())

	return rootCmd
}
