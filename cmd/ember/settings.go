package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rolandbiro/Ember/internal/application/progression"
	"github.com/rolandbiro/Ember/internal/domain/progress"
	"github.com/rolandbiro/Ember/internal/ui"
)

func newSettingsCmd() *cobra.Command {
	var (
		pace         string
		reminders    bool
		streakAlerts bool
		reminderTime string
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change pace and reminder preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				flags := cmd.Flags()
				current := a.svc.GetProfile()

				var update progression.SettingsUpdate
				if flags.Changed("pace") {
					p, err := progress.ParsePace(pace)
					if err != nil {
						return err
					}
					update.Pace = &p
				}
				if flags.Changed("reminders") || flags.Changed("streak-alerts") || flags.Changed("reminder-time") {
					prefs := current.Notifications
					if flags.Changed("reminders") {
						prefs.DailyReminders = reminders
					}
					if flags.Changed("streak-alerts") {
						prefs.StreakAlerts = streakAlerts
					}
					if flags.Changed("reminder-time") {
						prefs.ReminderTime = reminderTime
					}
					update.Notifications = &prefs
				}

				profile := current
				if update.Pace != nil || update.Notifications != nil {
					updated, err := a.svc.UpdateSettings(ctx, update)
					if err != nil {
						return err
					}
					profile = updated
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading("", "Settings"))
				fmt.Fprintln(out, ui.LabelValue("Pace", fmt.Sprintf("%s (%d tasks a day)", profile.Pace, profile.Pace.DailyTaskCount())))
				fmt.Fprintln(out, ui.LabelValue("Daily reminders", onOff(profile.Notifications.DailyReminders)))
				fmt.Fprintln(out, ui.LabelValue("Streak alerts", onOff(profile.Notifications.StreakAlerts)))
				at := profile.Notifications.ReminderTime
				if at == "" {
					at = ui.Muted.Render("not set")
				}
				fmt.Fprintln(out, ui.LabelValue("Reminder time", at))
				if update.Pace != nil && *update.Pace != current.Pace {
					fmt.Fprintln(out, ui.Muted.Render("The new pace applies from the next day's tasks."))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&pace, "pace", "", "gentle, steady or active")
	cmd.Flags().BoolVar(&reminders, "reminders", true, "daily reminders")
	cmd.Flags().BoolVar(&streakAlerts, "streak-alerts", true, "streak alerts")
	cmd.Flags().StringVar(&reminderTime, "reminder-time", "", "reminder time as HH:MM")
	return cmd
}

func onOff(b bool) string {
	if b {
		return ui.Good.Render("on")
	}
	return ui.Muted.Render("off")
}
