package cli

import (
	"fmt"

	"github.com/alexanderramin/flashbox/internal/app"
	"github.com/alexanderramin/flashbox/internal/cli/formatter"
	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *App) *cobra.Command {
	var (
		limit int
		weak  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently recorded study sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.State.Reports == nil {
				return app.ErrHistoryDisabled
			}
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			ctx := cmd.Context()

			reports, err := a.State.Reports.ListRecentSessions(ctx, limit)
			if err != nil {
				return fmt.Errorf("listing sessions: %w", err)
			}
			var stats []domain.TermStat
			if weak > 0 {
				stats, err = a.State.Reports.ListWeakTerms(ctx, weak)
				if err != nil {
					return fmt.Errorf("listing weak terms: %w", err)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistory(reports, stats, a.now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of sessions to show")
	cmd.Flags().IntVar(&weak, "weak", 5, "number of weak terms to show (0 hides them)")
	return cmd
}
