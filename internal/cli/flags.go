package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/spf13/pflag"
)

// topicFlags is the card selection shared by study and progress.
type topicFlags struct {
	topics []string
	all    bool
}

func addTopicFlags(fs *pflag.FlagSet, f *topicFlags) {
	fs.StringArrayVarP(&f.topics, "topic", "t", nil, `subtopic to include as "Unit/Subtopic" (repeatable)`)
	fs.BoolVar(&f.all, "all", false, "include every subtopic in the catalog")
}

func (f topicFlags) empty() bool {
	return !f.all && len(f.topics) == 0
}

// selection resolves the flags against the loaded catalog.
func (a *App) selection(ctx context.Context, f topicFlags) ([]domain.Card, []domain.TopicKey, error) {
	if err := a.ensureCatalog(ctx); err != nil {
		return nil, nil, err
	}
	if f.all {
		return a.State.Catalog.All(), a.State.Catalog.Topics(), nil
	}
	topics, err := a.State.ResolveTopics(f.topics)
	if err != nil {
		return nil, nil, err
	}
	cards, err := a.State.Selection(topics, false)
	if err != nil {
		return nil, nil, err
	}
	return cards, topics, nil
}

func (a *App) ensureCatalog(ctx context.Context) error {
	if a.State.Catalog != nil {
		return nil
	}
	if err := a.State.LoadCatalog(ctx); err != nil {
		return fmt.Errorf("loading catalog from %s: %w", a.State.Config.CatalogSource, err)
	}
	return nil
}
