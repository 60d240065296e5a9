package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rolandbiro/Ember/internal/domain/progress"
	"github.com/rolandbiro/Ember/internal/ui"
)

var situations = []progress.Situation{
	progress.SituationOverwhelmed,
	progress.SituationExhausted,
	progress.SituationLostMotivation,
	progress.SituationAlwaysTired,
	progress.SituationPrevention,
}

var goals = []progress.Goal{
	progress.GoalRecoverEnergy,
	progress.GoalFindBalance,
	progress.GoalFeelMyself,
	progress.GoalHealthyHabits,
}

func newOnboardCmd() *cobra.Command {
	var name, situation, goal string

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Record your name, situation and goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				err := a.svc.RecordOnboarding(ctx, name, progress.Situation(situation), progress.Goal(goal))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				greeting := "Welcome to Ember."
				if n := strings.TrimSpace(name); n != "" {
					greeting = fmt.Sprintf("Welcome to Ember, %s.", n)
				}
				fmt.Fprintln(out, ui.Good.Render(greeting))
				fmt.Fprintln(out, ui.Muted.Render("Next: `ember assess --list` to choose a pace, or `ember today` to begin."))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "what Ember should call you")
	cmd.Flags().StringVar(&situation, "situation", "", "one of: "+joinValues(situations))
	cmd.Flags().StringVar(&goal, "goal", "", "one of: "+joinValues(goals))
	_ = cmd.MarkFlagRequired("situation")
	_ = cmd.MarkFlagRequired("goal")
	return cmd
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
