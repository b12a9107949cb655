package cli

import (
	"errors"
	"time"

	"github.com/alexanderramin/flashbox/internal/app"
	"github.com/spf13/cobra"
)

// ErrNotInteractive indicates a command needs a terminal on stdin.
var ErrNotInteractive = errors.New("an interactive terminal is required")

// App holds the application state and terminal hooks used by CLI commands.
type App struct {
	State *app.Context

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool

	// Confirm asks a yes/no question. Nil uses a huh confirmation form.
	Confirm func(title string) (bool, error)

	// Now is the clock for relative timestamps. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	return confirmForm(title)
}

// NewRootCmd creates the top-level "flashbox" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "flashbox",
		Short:         "Leitner-box flashcards in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTopicsCmd(a),
		newStudyCmd(a),
		newProgressCmd(a),
		newResetCmd(a),
		newWhoamiCmd(a),
		newLoginCmd(a),
		newHistoryCmd(a),
	)

	return root
}
