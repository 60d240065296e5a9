package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/internal/domain/daily"
	"github.com/rolandbiro/Ember/internal/ui"
)

func newTodayCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "List today's tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				tasks := a.svc.GetTodaysTasks()
				sum := a.svc.Summary()

				fmt.Fprintln(out, ui.Heading(ui.IconEmber, "Today "+ui.Muted.Render(sum.Date.String())))

				if len(tasks) == 0 {
					fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Tasks are unavailable right now."))
					fmt.Fprintln(out, ui.Muted.Render("Check the catalog with `ember catalog --reload`."))
					return nil
				}

				for _, inst := range tasks {
					printInstance(out, inst, verbose)
				}

				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.LabelValue("Done", fmt.Sprintf("%d/%d", sum.CompletedToday, sum.TotalToday)))
				if sum.TotalToday > 0 && sum.CompletedToday == sum.TotalToday {
					fmt.Fprintln(out, ui.Good.Render("All done for today.")+" "+ui.Muted.Render("Want one more? `ember bonus`"))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show descriptions and answer options")
	return cmd
}

func printInstance(out io.Writer, inst daily.Instance, verbose bool) {
	def := inst.Definition

	line := fmt.Sprintf("%s %s %s %s", ui.CheckBox(inst.Completed), ui.CategoryIcon(def.Category),
		def.Title, ui.Muted.Render("["+def.ID+"]"))
	if inst.Bonus {
		line += " " + ui.Warn.Render("bonus")
	}
	line += " " + ui.Stardust(def.Reward)
	fmt.Fprintln(out, line)

	if !verbose {
		return
	}
	indent := "    "
	if def.Description != "" {
		fmt.Fprintln(out, indent+ui.Muted.Render(def.Description))
	}
	if def.UIKind == catalog.UITimedActivity && def.DurationSeconds > 0 {
		fmt.Fprintln(out, indent+ui.Muted.Render(fmt.Sprintf("%d min", (def.DurationSeconds+59)/60)))
	}
	for _, o := range def.Options {
		fmt.Fprintf(out, "%s- %s %s\n", indent, o.Text, ui.Muted.Render("(--option "+o.ID+")"))
	}
	if def.Slider != nil {
		fmt.Fprintln(out, indent+ui.Muted.Render(fmt.Sprintf("%s %d ... %d %s (--option <value>)",
			def.Slider.MinLabel, def.Slider.Min, def.Slider.Max, def.Slider.MaxLabel)))
	}
	if def.NotePrompt != "" {
		fmt.Fprintln(out, indent+ui.Muted.Render(def.NotePrompt+" (--note)"))
	}
	if inst.Completed && len(inst.SelectedOptionIDs) > 0 {
		fmt.Fprintln(out, indent+ui.Muted.Render("answered: "+strings.Join(inst.SelectedOptionIDs, ", ")))
	}
}
