package cli

import (
	"github.com/drossen/unplug/internal/focus"
	"github.com/drossen/unplug/internal/usage"
	"github.com/spf13/cobra"
)

// App holds references to the engines used by CLI commands.
type App struct {
	Focus *focus.Manager
	Usage *usage.Tracker

	// IsInteractive reports whether stdin is an interactive terminal;
	// the TUI surfaces (watch, goal edit) require it.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "unplug" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "unplug",
		Short:         "Focus sessions and screen-time tracking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newFocusCmd(app),
		newUsageCmd(app),
		newGoalCmd(app),
		newBlocklistCmd(app),
	)

	return root
}
