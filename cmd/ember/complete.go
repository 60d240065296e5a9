package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rolandbiro/Ember/internal/domain/progress"
	"github.com/rolandbiro/Ember/internal/ui"
)

func newCompleteCmd() *cobra.Command {
	var (
		options []string
		note    string
	)

	cmd := &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Complete one of today's tasks",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task id is required (see `ember today`)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				var notePtr *string
				if cmd.Flags().Changed("note") {
					notePtr = &note
				}

				res, err := a.svc.CompleteTask(ctx, args[0], options, notePtr)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Done:"), res.TaskID, ui.Stardust(res.RewardGranted))
				if res.BonusGranted > 0 {
					fmt.Fprintf(out, "%s %s\n", ui.Gold.Render("All tasks complete! Bonus"), ui.Stardust(res.BonusGranted))
				}
				fmt.Fprintln(out, ui.LabelValue("Stardust", ui.Stardust(res.Currency)))
				fmt.Fprintln(out, ui.LabelValue("Streak", streakLine(res.Streak, res.CurrentStreak)))
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVarP(&options, "option", "o", nil, "selected option id (repeatable)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "optional note")
	return cmd
}

func streakLine(outcome progress.StreakOutcome, days int) string {
	switch outcome {
	case progress.StreakStarted:
		return fmt.Sprintf("%d day, welcome", days)
	case progress.StreakExtended:
		return fmt.Sprintf("%d days %s", days, ui.Good.Render("+1"))
	case progress.StreakFrozen:
		return fmt.Sprintf("%d days %s", days, ui.Muted.Render("(freeze used)"))
	case progress.StreakReset:
		return fmt.Sprintf("%d day, a fresh start", days)
	default:
		return fmt.Sprintf("%d days", days)
	}
}
