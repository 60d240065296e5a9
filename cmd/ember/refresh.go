package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rolandbiro/Ember/internal/ui"
)

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Generate today's tasks if the current set is from another day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				generated, err := a.svc.RefreshDailyTasksIfStale(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				switch {
				case generated:
					fmt.Fprintln(out, ui.Good.Render("New tasks for today are ready."))
				case len(a.svc.GetTodaysTasks()) == 0:
					fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" No tasks available."))
				default:
					fmt.Fprintln(out, ui.Muted.Render("Today's tasks are up to date."))
				}
				return nil
			})
		},
	}
}
