package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBlocklistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocklist",
		Short: "Manage the default distracting-apps list",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List distracting apps",
			RunE: func(cmd *cobra.Command, args []string) error {
				apps := app.Focus.DistractingApps()
				if len(apps) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No distracting apps configured.")
					return nil
				}
				for _, a := range apps {
					fmt.Fprintln(cmd.OutOrStdout(), a)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <app>",
			Short: "Add a distracting app",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !app.Focus.AddDistractingApp(args[0]) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is already on the list.\n", args[0])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s.\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <app>",
			Short: "Remove a distracting app",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !app.Focus.RemoveDistractingApp(args[0]) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is not on the list.\n", args[0])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", args[0])
				return nil
			},
		},
	)

	return cmd
}
