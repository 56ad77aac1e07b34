package cli

import (
	"fmt"

	"github.com/drossen/unplug/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newUsageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Track and inspect app usage",
	}

	cmd.AddCommand(
		newUsageOpenCmd(app),
		newUsageCloseCmd(app),
		newUsageTodayCmd(app),
		newUsageWeekCmd(app),
		newUsageHistoryCmd(app),
	)

	return cmd
}

func newUsageOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <app>",
		Short: "Record that an app was just opened",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if app.Focus.IsBlocked(name) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is blocked by the active focus session\n",
					formatter.StyleRed.Render("✗"), name)
			}
			if !app.Usage.RecordAppOpen(name) {
				pending, _ := app.Usage.PendingSession()
				return fmt.Errorf("already tracking %s; close it first", pending.AppName)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tracking %s\n", name)
			return nil
		},
	}
}

func newUsageCloseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "close <app>",
		Short: "Record that an app was just closed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !app.Usage.RecordAppClose(name) {
				fmt.Fprintf(cmd.OutOrStdout(), "Not tracking %s; nothing recorded.\n", name)
				return nil
			}
			current, limit, _ := app.Usage.GoalProgress()
			fmt.Fprintf(cmd.OutOrStdout(), "Closed %s. Today: %s of %s\n",
				name, formatter.Duration(current), formatter.Duration(limit))
			if app.Usage.HasExceededDailyLimit() {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleRed.Render("Daily limit exceeded."))
			}
			return nil
		},
	}
}

func newUsageTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's usage against the daily limit",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			current, limit, pct := app.Usage.GoalProgress()
			fmt.Fprintf(out, "Today: %s of %s\n", formatter.Duration(current), formatter.Duration(limit))
			if limit > 0 {
				fmt.Fprintf(out, "%s\n", formatter.RenderProgress(pct/100, 24))
			}
			if d, ok := app.Usage.Today(); ok {
				fmt.Fprint(out, formatter.FormatDailyUsage(d))
			}
			return nil
		},
	}
}

func newUsageWeekCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Compute and show this week's summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.Usage.GenerateWeeklySummary()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeeklySummary(s))
			return nil
		},
	}
}

func newUsageHistoryCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show daily usage for recent days",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			history := app.Usage.RecentUsage(days)
			if len(history) == 0 {
				fmt.Fprintf(out, "No usage recorded in the last %d days.\n", days)
				return nil
			}
			for _, d := range history {
				fmt.Fprint(out, formatter.FormatDailyUsage(d))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "How many days back to show")

	return cmd
}
