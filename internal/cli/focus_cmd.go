package cli

import (
	"fmt"
	"time"

	"github.com/drossen/unplug/internal/cli/formatter"
	"github.com/drossen/unplug/internal/cli/watchui"
	"github.com/drossen/unplug/internal/domain"
	"github.com/spf13/cobra"
)

func newFocusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Manage focus sessions",
	}

	cmd.AddCommand(
		newFocusStartCmd(app),
		newFocusScheduleCmd(app),
		newFocusEndCmd(app),
		newFocusCancelCmd(app),
		newFocusStatusCmd(app),
		newFocusHistoryCmd(app),
		newFocusWatchCmd(app),
	)

	return cmd
}

// blockedAppsArg maps the --block flag to the manager's convention: an
// unset flag means "use the distracting-apps default", which is not the
// same as blocking nothing.
func blockedAppsArg(cmd *cobra.Command, apps []string) []string {
	if !cmd.Flags().Changed("block") {
		return nil
	}
	return apps
}

func newFocusStartCmd(app *App) *cobra.Command {
	var minutes int
	var block []string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a focus session now",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Focus.StartNow(time.Duration(minutes)*time.Minute, blockedAppsArg(cmd, block))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Focus session started for %s, blocking %d apps (%s)\n",
				formatter.Duration(s.DurationSec), len(s.BlockedApps), s.ID[:8])
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 25, "Session length in minutes")
	cmd.Flags().StringSliceVar(&block, "block", nil, "Apps to block (defaults to the distracting-apps list)")

	return cmd
}

func newFocusScheduleCmd(app *App) *cobra.Command {
	var at string
	var in time.Duration
	var minutes int
	var block []string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule a focus session for later",
		RunE: func(cmd *cobra.Command, args []string) error {
			var startAt time.Time
			switch {
			case at != "":
				parsed, err := time.ParseInLocation("2006-01-02 15:04", at, time.Local)
				if err != nil {
					return fmt.Errorf("parsing --at %q (want \"2006-01-02 15:04\"): %w", at, err)
				}
				startAt = parsed
			case in > 0:
				startAt = time.Now().Add(in)
			default:
				return fmt.Errorf("either --at or --in is required")
			}

			s, err := app.Focus.Schedule(startAt, time.Duration(minutes)*time.Minute, blockedAppsArg(cmd, block))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Focus session scheduled for %s (%s)\n",
				s.StartedAt.Local().Format("2006-01-02 15:04"), formatter.Duration(s.DurationSec))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Start time, e.g. \"2026-03-02 18:30\"")
	cmd.Flags().DurationVar(&in, "in", 0, "Start after a delay, e.g. 45m")
	cmd.Flags().IntVar(&minutes, "minutes", 25, "Session length in minutes")
	cmd.Flags().StringSliceVar(&block, "block", nil, "Apps to block (defaults to the distracting-apps list)")

	return cmd
}

func newFocusEndCmd(app *App) *cobra.Command {
	var abandon bool

	cmd := &cobra.Command{
		Use:   "end",
		Short: "End the active focus session",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ok := app.Focus.ActiveSession()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No active focus session.")
				return nil
			}
			app.Focus.End(!abandon)
			if abandon {
				fmt.Fprintln(cmd.OutOrStdout(), "Focus session abandoned.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Focus session completed.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&abandon, "abandon", false, "Record the session as not completed")

	return cmd
}

func newFocusCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the scheduled focus session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := app.Focus.ScheduledSession(); !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing scheduled.")
				return nil
			}
			app.Focus.CancelScheduled()
			fmt.Fprintln(cmd.OutOrStdout(), "Scheduled focus session canceled.")
			return nil
		},
	}
}

func newFocusStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the focus state",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Focus.Reconcile()
			out := cmd.OutOrStdout()
			state := app.Focus.CurrentState()
			fmt.Fprintln(out, formatter.StateIndicator(state))

			switch state {
			case domain.StateActive:
				s, _ := app.Focus.ActiveSession()
				remaining := int(s.Remaining(time.Now()).Seconds())
				fmt.Fprintf(out, "  %s remaining of %s\n",
					formatter.Countdown(remaining), formatter.Duration(s.DurationSec))
				fmt.Fprintf(out, "  %s\n", formatter.RenderProgress(s.PercentComplete(time.Now()), 24))
				for _, a := range s.BlockedApps {
					fmt.Fprintf(out, "  blocking %s\n", a)
				}
			case domain.StateScheduled:
				s, _ := app.Focus.ScheduledSession()
				fmt.Fprintf(out, "  starts %s for %s\n",
					s.StartedAt.Local().Format("2006-01-02 15:04"), formatter.Duration(s.DurationSec))
			}
			return nil
		},
	}
}

func newFocusHistoryCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent focus sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions := app.Focus.RecentHistory(days)
			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintf(out, "No focus sessions in the last %d days.\n", days)
				return nil
			}
			for _, s := range sessions {
				fmt.Fprintln(out, formatter.FormatSessionLine(s))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "How many days back to list")

	return cmd
}

func newFocusWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the active session count down",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("watch requires an interactive terminal")
			}
			if _, ok := app.Focus.ActiveSession(); !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No active focus session.")
				return nil
			}
			return watchui.Run(app.Focus)
		},
	}
}
