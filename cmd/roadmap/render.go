package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a roadmap PDF from a role record",
	Long:  "Reads a role record (JSON or YAML), applies the completed skills and writes career-roadmap-<role>.pdf into the output directory.",
	RunE:  runRender,
}

var (
	renderInput     string
	renderOutDir    string
	renderCompleted []string
	renderUseStore  bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "", "Path to role record file (required)")
	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", ".", "Output directory")
	renderCmd.Flags().StringSliceVar(&renderCompleted, "completed", nil, "Completed skills, comma separated")
	renderCmd.Flags().BoolVar(&renderUseStore, "use-store", false, "Read completed skills from the configured progress store")

	if err := renderCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	rec, err := readRecord(renderInput)
	if err != nil {
		return err
	}
	state, err := resolveProgress(cmd.Context(), cfg, rec.Role, renderCompleted, renderUseStore, logger)
	if err != nil {
		return err
	}

	exporter, err := exporterFor(cfg, logger)
	if err != nil {
		return err
	}
	path, err := exporter.ExportFile(rec, state, renderOutDir)
	if err != nil {
		return fmt.Errorf("failed to render roadmap: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
