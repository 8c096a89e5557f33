// Package main implements the roadmap CLI: render roadmaps to PDF, inspect
// their metrics, track progress and serve the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "roadmap",
	Short:         "Career roadmap PDF renderer",
	Long:          "roadmap renders a recommended career role, the skills still to learn and a weekly action plan as a paginated PDF document.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	debug      bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
