package cli

import (
	"fmt"

	"github.com/alexanderramin/flashbox/internal/cli/formatter"
	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/alexanderramin/flashbox/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newStudyCmd(a *App) *cobra.Command {
	var flags topicFlags

	cmd := &cobra.Command{
		Use:   "study",
		Short: "Start an interactive study session",
		Long: `Start an interactive flashcard session.

Without --topic or --all a topic picker opens first. Cards you know less
well appear more often in the deck.

Keys: space/enter/←/→ flip, 1 don't know, 2 somewhat, 3 know well.
After a session: r restart, w review weak cards, n new selection, q quit.`,
		Example: `  flashbox study --topic "Hardware/Logic gates"
  flashbox study --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.interactive() {
				return fmt.Errorf("study: %w", ErrNotInteractive)
			}
			ctx := cmd.Context()

			var (
				cards  []domain.Card
				topics []domain.TopicKey
			)
			loadErr := a.ensureCatalog(ctx)
			if loadErr == nil && !flags.empty() {
				var err error
				cards, topics, err = a.selection(ctx, flags)
				if err != nil {
					return err
				}
			}

			m := newStudyModel(ctx, a, cards, topics, loadErr)
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running study session: %w", err)
			}
			if loadErr != nil {
				return loadErr
			}

			if e := a.State.Engine; e.State() == session.Finished && e.Counts().Total() > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(e.Summary()))
			}
			return nil
		},
	}

	addTopicFlags(cmd.Flags(), &flags)
	return cmd
}
