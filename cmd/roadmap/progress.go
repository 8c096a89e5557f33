package main

import (
	"fmt"
	"strings"

	"github.com/careerpath/roadmappdf/internal/model"
	"github.com/careerpath/roadmappdf/internal/progress"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect and update completed skills per role",
}

var progressShowCmd = &cobra.Command{
	Use:   "show <role>",
	Short: "List completed skills for a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s progress.Store) error {
			state, err := s.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, skill := range state.Skills() {
				fmt.Fprintln(cmd.OutOrStdout(), skill)
			}
			return nil
		})
	},
}

var progressToggleCmd = &cobra.Command{
	Use:   "toggle <role> <skill>",
	Short: "Flip the completion state of one skill",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s progress.Store) error {
			done, _, err := progress.Toggle(cmd.Context(), s, args[0], args[1])
			if err != nil {
				return err
			}
			state := "to learn"
			if done {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[1], state)
			return nil
		})
	},
}

var progressSetCmd = &cobra.Command{
	Use:   "set <role> [skill...]",
	Short: "Replace the completed skills for a role",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s progress.Store) error {
			state := model.NewProgressState(args[1:]...)
			if err := s.Save(cmd.Context(), args[0], state); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], strings.Join(state.Skills(), ", "))
			return nil
		})
	},
}

func init() {
	progressCmd.AddCommand(progressShowCmd, progressToggleCmd, progressSetCmd)
	rootCmd.AddCommand(progressCmd)
}

func withStore(cmd *cobra.Command, fn func(progress.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := progress.Open(cmd.Context(), cfg.ProgressOptions(newLogger()))
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}
