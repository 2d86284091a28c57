// Package main is the entry point for the battle server and local simulator
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-battle/cmd/server/client"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "rpg-battle",
	Short: "Turn-based battle simulator",
	Long: `rpg-battle runs turn-based battles between two armies on a grid, either
locally or behind a gRPC service that stores the reports.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging(logLevel, logFormat, os.Stderr)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
