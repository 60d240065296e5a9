package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rolandbiro/Ember/internal/infrastructure/catalogfile"
	"github.com/rolandbiro/Ember/internal/ui"
)

func newCatalogCmd() *cobra.Command {
	var reload bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the task catalog and load diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				res := a.catalog

				if reload {
					fresh, err := catalogfile.Load(a.cfg.CatalogPath, a.log)
					if err != nil {
						return err
					}
					if err := a.svc.ReplaceCatalog(ctx, fresh.Catalog); err != nil {
						return err
					}
					res = fresh
					a.catalogErr = nil
					fmt.Fprintln(out, ui.Good.Render("Catalog reloaded."))
				}

				fmt.Fprintln(out, ui.Heading("", "Task catalog"))
				fmt.Fprintln(out, ui.LabelValue("Source", res.Source))
				fmt.Fprintln(out, ui.LabelValue("Version", res.Catalog.Version()))
				if a.catalogErr != nil {
					fmt.Fprintln(out, ui.Bad.Render(ui.IconWarn+" "+a.catalogErr.Error()))
				}
				fmt.Fprintln(out, "")

				tasks := res.Catalog.Tasks()
				for _, c := range res.Catalog.Categories() {
					fmt.Fprintln(out, ui.H2.Render(ui.CategoryIcon(c)+" "+c.DisplayName()))
					for _, t := range tasks {
						if t.Category != c {
							continue
						}
						fmt.Fprintf(out, "- %s %s %s\n", t.Title, ui.Muted.Render("["+t.ID+"]"), ui.Stardust(t.Reward))
					}
				}

				if len(res.Rejected) > 0 {
					fmt.Fprintln(out, "")
					fmt.Fprintln(out, ui.Warn.Render(fmt.Sprintf("%d entries skipped", len(res.Rejected))))
					for _, r := range res.Rejected {
						fmt.Fprintln(out, ui.Muted.Render("- "+r.Error()))
					}
				}
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%d tasks", res.Catalog.Len())))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&reload, "reload", false, "re-read the catalog and refill today's tasks if empty")
	return cmd
}
