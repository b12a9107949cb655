package cli

import (
	"fmt"

	"github.com/alexanderramin/flashbox/internal/cli/formatter"
	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/spf13/cobra"
)

func newTopicsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List units and subtopics with mastery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureCatalog(cmd.Context()); err != nil {
				return err
			}
			cat := a.State.Catalog
			topics := cat.Topics()
			rows := make([]formatter.TopicRow, 0, len(topics))
			for _, t := range topics {
				cards := cat.Select([]domain.TopicKey{t})
				rows = append(rows, formatter.TopicRow{
					Topic:    t,
					Progress: a.State.Store.SubtopicProgress(cards),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTopics(a.State.Config.Course, rows))
			return nil
		},
	}
}

func newProgressCmd(a *App) *cobra.Command {
	var flags topicFlags

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show how many cards sit in each box",
		Long: `Show how many cards sit in each Leitner box.

Counts cover the whole catalog unless --topic narrows them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.empty() {
				flags.all = true
			}
			cards, _, err := a.selection(cmd.Context(), flags)
			if err != nil {
				return err
			}
			counts := a.State.Store.Counts(cards)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBoxCounts(a.State.Config.Course, counts))
			return nil
		},
	}

	addTopicFlags(cmd.Flags(), &flags)
	return cmd
}
