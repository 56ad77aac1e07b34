package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/drossen/unplug/internal/cli/formatter"
	"github.com/drossen/unplug/internal/domain"
	"github.com/spf13/cobra"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Show and edit the usage goal",
	}

	cmd.AddCommand(
		newGoalShowCmd(app),
		newGoalSetCmd(app),
		newGoalEditCmd(app),
	)

	return cmd
}

func newGoalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current goal and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			g := app.Usage.Goal()
			fmt.Fprintf(out, "daily limit       %s\n", formatter.Duration(g.DailyLimitSec))
			fmt.Fprintf(out, "weekly reduction  %.0f%%\n", g.WeeklyReductionTarget*100)
			if len(g.FocusApps) > 0 {
				fmt.Fprintf(out, "focus apps        %s\n", strings.Join(g.FocusApps, ", "))
			}

			current, limit, pct := app.Usage.GoalProgress()
			fmt.Fprintf(out, "today             %s of %s\n", formatter.Duration(current), formatter.Duration(limit))
			if limit > 0 {
				fmt.Fprintf(out, "%s\n", formatter.RenderProgress(pct/100, 24))
			}

			reduction, target, _ := app.Usage.WeeklyReductionProgress()
			fmt.Fprintf(out, "week over week    %s (target %.0f%%)\n", formatter.FormatReduction(reduction), target)
			return nil
		},
	}
}

func newGoalSetCmd(app *App) *cobra.Command {
	var limitMin int
	var reductionPct float64
	var focusApps []string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the usage goal from flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limitMin < 0 {
				return fmt.Errorf("daily limit must not be negative")
			}
			g := app.Usage.Goal()
			if cmd.Flags().Changed("daily-limit") {
				g.DailyLimitSec = limitMin * 60
			}
			if cmd.Flags().Changed("reduction") {
				g.WeeklyReductionTarget = reductionPct / 100
			}
			if cmd.Flags().Changed("focus-apps") {
				g.FocusApps = focusApps
			}
			app.Usage.SetGoal(g)
			fmt.Fprintln(cmd.OutOrStdout(), "Goal updated.")
			return nil
		},
	}

	cmd.Flags().IntVar(&limitMin, "daily-limit", 60, "Daily limit in minutes")
	cmd.Flags().Float64Var(&reductionPct, "reduction", 5, "Weekly reduction target in percent")
	cmd.Flags().StringSliceVar(&focusApps, "focus-apps", nil, "Apps to pay special attention to")

	return cmd
}

func newGoalEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the usage goal interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("goal edit requires an interactive terminal; use goal set")
			}

			g := app.Usage.Goal()
			limitMin := strconv.Itoa(g.DailyLimitSec / 60)
			reduction := strconv.FormatFloat(g.WeeklyReductionTarget*100, 'f', -1, 64)
			apps := strings.Join(g.FocusApps, ", ")

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Daily limit (minutes)").
						Value(&limitMin).
						Validate(validatePositiveInt),
					huh.NewInput().
						Title("Weekly reduction target (%)").
						Value(&reduction).
						Validate(validateNonNegativeFloat),
					huh.NewInput().
						Title("Focus apps (comma separated)").
						Value(&apps),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}

			limit, _ := strconv.Atoi(strings.TrimSpace(limitMin))
			target, _ := strconv.ParseFloat(strings.TrimSpace(reduction), 64)
			app.Usage.SetGoal(domain.UsageGoal{
				DailyLimitSec:         limit * 60,
				WeeklyReductionTarget: target / 100,
				FocusApps:             splitApps(apps),
			})
			fmt.Fprintln(cmd.OutOrStdout(), "Goal updated.")
			return nil
		},
	}
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}

func validateNonNegativeFloat(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

func splitApps(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
