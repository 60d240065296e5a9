package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rolandbiro/Ember/config"
	"github.com/rolandbiro/Ember/internal/ui"
)

const Version = "0.3.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ember",
		Short:         "Ember - gentle burnout recovery, one small task at a time",
		Long:          "Ember picks a few small recovery tasks each day and rewards you with stardust, levels, badges and a forgiving streak.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	root.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	root.PersistentFlags().Bool("metrics", false, "print engine counters to stderr after the command")

	root.AddCommand(
		newStatusCmd(),
		newTodayCmd(),
		newCompleteCmd(),
		newBonusCmd(),
		newRefreshCmd(),
		newOnboardCmd(),
		newAssessCmd(),
		newSettingsCmd(),
		newCatalogCmd(),
	)
	return root
}

// withApp opens the engine, runs fn and prints what the command produced
// besides its own output: celebrations and, with --metrics, the counters.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, cleanup, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := fn(ctx, a); err != nil {
		return err
	}

	if a.flags.IsEnabled(config.FeatureCelebrations) {
		printCelebrations(cmd, a)
	}
	if dump, _ := cmd.Flags().GetBool("metrics"); dump {
		return dumpMetrics(cmd, a)
	}
	return nil
}

func printCelebrations(cmd *cobra.Command, a *app) {
	items := a.feed.Drain()
	if len(items) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "")
	for _, c := range items {
		line := ui.Gold.Render(ui.IconSparkle+" "+c.Title)
		if c.Detail != "" {
			line += " " + ui.Muted.Render(c.Detail)
		}
		fmt.Fprintln(out, line)
	}
}

func dumpMetrics(cmd *cobra.Command, a *app) error {
	samples, err := a.metrics.Snapshot()
	if err != nil {
		return fmt.Errorf("metrics snapshot: %w", err)
	}
	errOut := cmd.ErrOrStderr()
	for _, s := range samples {
		fmt.Fprintln(errOut, s.String())
	}
	return nil
}
