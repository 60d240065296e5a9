package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, stardust, streak and badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				sum := a.svc.Summary()
				p := sum.Profile
				out := cmd.OutOrStdout()

				title := "Your Ember"
				if p.Name != "" {
					title = p.Name + "'s Ember"
				}
				fmt.Fprintln(out, ui.Heading(ui.IconEmber, title))
				fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d %s", sum.Level.Level, sum.Level.Name)))
				fmt.Fprintln(out, ui.LabelValue("Stardust", ui.Stardust(p.Currency)))
				if sum.Next != nil {
					fmt.Fprintf(out, "%s %s\n", ui.ProgressBar(sum.Progress, 20),
						ui.Muted.Render(fmt.Sprintf("%d to %s", sum.ToNext, sum.Next.Name)))
				} else {
					fmt.Fprintln(out, ui.Gold.Render("Highest level reached"))
				}
				fmt.Fprintln(out, "")

				fmt.Fprintln(out, ui.H2.Render(ui.IconStreak+" Streak"))
				fmt.Fprintln(out, ui.LabelValue("Current", fmt.Sprintf("%d days", p.CurrentStreak)))
				fmt.Fprintln(out, ui.LabelValue("Longest", fmt.Sprintf("%d days", p.LongestStreak)))
				freeze := ui.Muted.Render("used this week")
				if p.StreakFreezeAvailable && !p.StreakFreezeUsedThisCycle {
					freeze = ui.Good.Render("ready")
				}
				fmt.Fprintln(out, ui.LabelValue(ui.IconFreeze+" Freeze", freeze))
				fmt.Fprintln(out, "")

				fmt.Fprintln(out, ui.H2.Render(ui.IconBadge+" Badges"))
				ids := p.EarnedBadgeIDs.IDs()
				if len(ids) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("None yet. Complete a task to earn your first."))
				}
				badges := catalog.DefaultBadges()
				for _, id := range ids {
					name := id
					if b, ok := catalog.FindBadge(badges, id); ok {
						name = b.Name
					}
					fmt.Fprintf(out, "- %s\n", name)
				}
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%d of %d earned", len(ids), len(badges))))
				fmt.Fprintln(out, "")

				fmt.Fprintln(out, ui.LabelValue("Today", fmt.Sprintf("%d/%d tasks", sum.CompletedToday, sum.TotalToday)))
				fmt.Fprintln(out, ui.LabelValue("Pace", capitalize(string(p.Pace))))

				if !p.OnboardingCompleted {
					fmt.Fprintln(out, ui.Warn.Render("Tip: run `ember onboard` to tell Ember where you are."))
				} else if !p.AssessmentCompleted {
					fmt.Fprintln(out, ui.Warn.Render("Tip: run `ember assess --list` to find a pace that fits."))
				}
				return nil
			})
		},
	}
}
