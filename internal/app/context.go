// Package app owns the per-process study state: catalog, progress, learner
// identity, session engine and report dispatch. Nothing here is global; a
// program or test may hold several independent contexts.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/flashbox/internal/catalog"
	"github.com/alexanderramin/flashbox/internal/config"
	"github.com/alexanderramin/flashbox/internal/db"
	"github.com/alexanderramin/flashbox/internal/deck"
	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/alexanderramin/flashbox/internal/progress"
	"github.com/alexanderramin/flashbox/internal/report"
	"github.com/alexanderramin/flashbox/internal/repository"
	"github.com/alexanderramin/flashbox/internal/session"
)

var (
	// ErrUnknownTopic indicates a requested unit/subtopic is not in the catalog.
	ErrUnknownTopic = errors.New("unknown topic")

	// ErrNoSelection indicates a study request named no topics.
	ErrNoSelection = errors.New("no topics selected")

	// ErrHistoryDisabled indicates the local history sink is not wired.
	ErrHistoryDisabled = errors.New("session history is disabled")
)

// Deps are the collaborators a Context is built from. Nil KV gives a
// memory-only progress store; nil UoW or Reports disables local history.
type Deps struct {
	KV         repository.KVRepo
	Reports    repository.ReportRepo
	UoW        db.UnitOfWork
	Logger     *slog.Logger
	HTTPClient *http.Client
}

// Context is the application state shared by the CLI and the study TUI.
type Context struct {
	Config     config.Config
	Logger     *slog.Logger
	Store      *progress.Store
	Identity   *progress.Identity
	Engine     *session.Engine
	Dispatcher *report.Dispatcher
	Reports    repository.ReportRepo

	Catalog      *domain.Catalog
	CatalogStats catalog.ParseStats

	loader *catalog.Loader
}

var _ session.Reporter = (*report.Dispatcher)(nil)

// New wires a Context from cfg and deps.
func New(cfg config.Config, deps Deps) *Context {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	prefix := cfg.Prefix()

	store := progress.NewStore(deps.KV, progress.BoxesKey(prefix), logger)
	identity := progress.NewIdentity(deps.KV, progress.StudentKey(prefix), logger)

	var sinks []report.Sink
	if cfg.ReportURL != "" {
		sinks = append(sinks, report.NewHTTPSink(cfg.ReportURL, cfg.ReportTimeout(), deps.HTTPClient))
	}
	if cfg.WorkbookPath != "" {
		sinks = append(sinks, report.NewWorkbookSink(cfg.WorkbookPath))
	}
	reports := deps.Reports
	if cfg.History && deps.UoW != nil {
		sinks = append(sinks, report.NewHistorySink(deps.UoW))
	} else {
		reports = nil
	}
	dispatcher := report.NewDispatcher(report.NewMultiSink(sinks...), identity.Email, cfg.Course, logger)

	engine := session.NewEngine(store,
		session.WithReporter(dispatcher),
		session.WithRand(deck.NewRand(cfg.Seed)),
		session.WithObserver(session.NewLogObserver(logger)),
	)

	return &Context{
		Config:     cfg,
		Logger:     logger,
		Store:      store,
		Identity:   identity,
		Engine:     engine,
		Dispatcher: dispatcher,
		Reports:    reports,
		loader:     catalog.NewLoader(deps.HTTPClient),
	}
}

// Load restores persisted progress and identity. It never fails.
func (c *Context) Load(ctx context.Context) {
	c.Store.Load(ctx)
	c.Identity.Load(ctx)
}

// LoadCatalog reads the configured catalog source. Its error is the only
// one that blocks studying.
func (c *Context) LoadCatalog(ctx context.Context) error {
	cat, stats, err := c.loader.Load(ctx, c.Config.CatalogSource)
	if err != nil {
		return err
	}
	c.Catalog = cat
	c.CatalogStats = stats
	c.Logger.DebugContext(ctx, "catalog_loaded",
		"source", c.Config.CatalogSource,
		"cards", stats.Cards,
		"dropped_terms", stats.DroppedTerms,
		"duplicate_terms", stats.DuplicateTerms,
	)
	return nil
}

// SetCatalog installs an already parsed catalog.
func (c *Context) SetCatalog(cat *domain.Catalog) {
	c.Catalog = cat
}

// ResolveTopics parses "unit/sub" arguments and checks each against the
// catalog.
func (c *Context) ResolveTopics(args []string) ([]domain.TopicKey, error) {
	topics := make([]domain.TopicKey, 0, len(args))
	for _, a := range args {
		t, err := domain.ParseTopicKey(a)
		if err != nil {
			return nil, err
		}
		if c.Catalog == nil || c.Catalog.Unit(t.Unit) == nil || c.Catalog.Unit(t.Unit).Subtopic(t.Sub) == nil {
			return nil, fmt.Errorf("%w: %s/%s", ErrUnknownTopic, t.Unit, t.Sub)
		}
		topics = append(topics, t)
	}
	return topics, nil
}

// Selection returns the annotated cards of topics, or of the whole catalog
// when all is set.
func (c *Context) Selection(topics []domain.TopicKey, all bool) ([]domain.Card, error) {
	if c.Catalog == nil {
		return nil, catalog.ErrCatalogUnavailable
	}
	if all {
		return c.Catalog.All(), nil
	}
	if len(topics) == 0 {
		return nil, ErrNoSelection
	}
	return c.Catalog.Select(topics), nil
}

// Shutdown waits for in-flight reports until ctx is done.
func (c *Context) Shutdown(ctx context.Context) {
	if !c.Dispatcher.Wait(ctx) {
		c.Logger.WarnContext(ctx, "report_dispatch_abandoned")
	}
}
