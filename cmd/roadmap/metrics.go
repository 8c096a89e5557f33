package main

import (
	"encoding/json"
	"fmt"

	"github.com/careerpath/roadmappdf/internal/report"
	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print readiness and gap progress for a role record",
	RunE:  runMetrics,
}

var (
	metricsInput     string
	metricsCompleted []string
	metricsUseStore  bool
)

func init() {
	metricsCmd.Flags().StringVarP(&metricsInput, "input", "i", "", "Path to role record file (required)")
	metricsCmd.Flags().StringSliceVar(&metricsCompleted, "completed", nil, "Completed skills, comma separated")
	metricsCmd.Flags().BoolVar(&metricsUseStore, "use-store", false, "Read completed skills from the configured progress store")

	if err := metricsCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec, err := readRecord(metricsInput)
	if err != nil {
		return err
	}
	state, err := resolveProgress(cmd.Context(), cfg, rec.Role, metricsCompleted, metricsUseStore, newLogger())
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(report.Metrics(rec, state), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
