package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rolandbiro/Ember/config"
	"github.com/rolandbiro/Ember/internal/ui"
)

func newBonusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bonus",
		Short: "Add one more task after finishing the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if !a.flags.IsEnabled(config.FeatureBonusTasks) {
					return errors.New("bonus tasks are disabled")
				}

				inst, err := a.svc.RequestBonusTask(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconBonus, "One more"))
				printInstance(out, inst, true)
				return nil
			})
		},
	}
}
