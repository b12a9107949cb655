// Package session runs one study session: it walks a deck, records ratings,
// updates mastery and hands the finished session to reporting.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/alexanderramin/flashbox/internal/deck"
	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/google/uuid"
)

// State is the engine's lifecycle position.
type State int

const (
	Idle State = iota
	InSession
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InSession:
		return "in_session"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Side is which face of the current card is showing.
type Side int

const (
	Prompt Side = iota
	Answer
)

func (s Side) String() string {
	if s == Answer {
		return "answer"
	}
	return "prompt"
}

// BoxStore is the mastery state the engine reads and writes.
type BoxStore interface {
	Box(card domain.Card) domain.Box
	Set(ctx context.Context, unit, sub, term string, box domain.Box) bool
}

// Reporter receives finished sessions. Implementations must not block and
// nothing flows back into the engine.
type Reporter interface {
	Report(ctx context.Context, outcome domain.SessionOutcome)
}

// Buckets holds the cards rated in this session, per rating, in rating order.
type Buckets struct {
	DontKnow []domain.Card
	Somewhat []domain.Card
	KnowWell []domain.Card
}

// Option configures an Engine.
type Option func(*Engine)

// WithReporter sets the sink for finished sessions.
func WithReporter(r Reporter) Option {
	return func(e *Engine) { e.reporter = r }
}

// WithRand sets the shuffle entropy source.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithObserver sets the telemetry observer.
func WithObserver(obs Observer) Option {
	return func(e *Engine) { e.observer = obs }
}

// Engine is the state machine for one study session at a time. It is not
// safe for concurrent use.
type Engine struct {
	store    BoxStore
	reporter Reporter
	rng      *rand.Rand
	now      func() time.Time
	observer Observer

	state      State
	side       Side
	mode       deck.Mode
	deck       []domain.Card
	pos        int
	topics     []domain.TopicKey
	buckets    Buckets
	counts     domain.RatingCounts
	records    []domain.RatingRecord
	id         string
	startedAt  time.Time
	finishedAt time.Time
}

// NewEngine creates an idle engine over store.
func NewEngine(store BoxStore, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		now:      time.Now,
		observer: NoopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = deck.NewRand(0)
	}
	return e
}

// Start begins a session over cards. The selection's topics are what the
// session reports as studied.
func (e *Engine) Start(ctx context.Context, cards []domain.Card, mode deck.Mode) {
	e.start(ctx, cards, mode, selectionTopics(cards))
}

func (e *Engine) start(ctx context.Context, cards []domain.Card, mode deck.Mode, topics []domain.TopicKey) {
	e.mode = mode
	e.deck = deck.Build(mode, cards, e.store.Box, e.rng)
	e.pos = 0
	e.side = Prompt
	e.topics = topics
	e.buckets = Buckets{}
	e.counts = domain.RatingCounts{}
	e.records = nil
	e.id = uuid.New().String()
	e.startedAt = e.now()
	e.finishedAt = time.Time{}
	e.state = InSession

	e.observer.ObserveSession(ctx, Event{
		Name:      "start",
		SessionID: e.id,
		Fields: map[string]any{
			"mode":  mode.String(),
			"cards": len(cards),
			"deck":  len(e.deck),
		},
	})

	if len(e.deck) == 0 {
		e.finish(ctx)
	}
}

// Flip toggles the visible side of the current card.
func (e *Engine) Flip() {
	if _, ok := e.Current(); !ok {
		return
	}
	if e.side == Prompt {
		e.side = Answer
	} else {
		e.side = Prompt
	}
}

// Rate records the learner's rating of the current card and advances.
// It is a no-op unless a card is showing.
func (e *Engine) Rate(ctx context.Context, rating domain.Rating) {
	card, ok := e.Current()
	if !ok || !rating.IsValid() {
		return
	}

	box := rating.Box()
	switch rating {
	case domain.RatingDontKnow:
		e.buckets.DontKnow = append(e.buckets.DontKnow, card)
		e.counts.DontKnow++
	case domain.RatingSomewhat:
		e.buckets.Somewhat = append(e.buckets.Somewhat, card)
		e.counts.Somewhat++
	case domain.RatingKnowWell:
		e.buckets.KnowWell = append(e.buckets.KnowWell, card)
		e.counts.KnowWell++
	}

	// Persistence is best-effort; the in-memory level is already in effect.
	_ = e.store.Set(ctx, card.Unit, card.Sub, card.Term, box)

	e.records = append(e.records, domain.RatingRecord{
		Unit:   card.Unit,
		Sub:    card.Sub,
		Term:   card.Term,
		Rating: rating,
		Box:    box,
	})
	e.pos++
	e.side = Prompt

	if e.pos >= len(e.deck) {
		e.finish(ctx)
	}
}

func (e *Engine) finish(ctx context.Context) {
	e.state = Finished
	e.finishedAt = e.now()
	outcome := e.Outcome()

	e.observer.ObserveSession(ctx, Event{
		Name:      "finish",
		SessionID: e.id,
		Duration:  e.finishedAt.Sub(e.startedAt),
		Fields: map[string]any{
			"rated":      e.counts.Total(),
			"know_well":  e.counts.KnowWell,
			"dont_know":  e.counts.DontKnow,
			"somewhat":   e.counts.Somewhat,
			"weak_cards": len(e.WeakCards()),
		},
	})

	if e.reporter == nil || e.counts.Total() == 0 {
		return
	}
	e.reporter.Report(ctx, outcome)
}

// WeakCards returns the cards rated don't-know or somewhat this session,
// deduplicated by identity with the first occurrence kept.
func (e *Engine) WeakCards() []domain.Card {
	weak := make([]domain.Card, 0, len(e.buckets.DontKnow)+len(e.buckets.Somewhat))
	weak = append(weak, e.buckets.DontKnow...)
	weak = append(weak, e.buckets.Somewhat...)
	return domain.DedupeCards(weak)
}

// ReviewWeak starts a priority-ordered session over the weak cards of the
// finished session. It reports whether a session was started.
func (e *Engine) ReviewWeak(ctx context.Context) bool {
	if e.state != Finished {
		return false
	}
	weak := e.WeakCards()
	if len(weak) == 0 {
		return false
	}
	e.start(ctx, weak, deck.Priority, e.topics)
	return true
}

// Restart begins a new weighted session over cards, or over the previous
// deck's distinct cards when cards is empty. It is a no-op unless the
// current session has finished.
func (e *Engine) Restart(ctx context.Context, cards []domain.Card) bool {
	if e.state != Finished {
		return false
	}
	if len(cards) == 0 {
		cards = domain.DedupeCards(e.deck)
		e.start(ctx, cards, deck.Weighted, e.topics)
		return true
	}
	e.Start(ctx, cards, deck.Weighted)
	return true
}

// Current returns the card at the current position.
func (e *Engine) Current() (domain.Card, bool) {
	if e.state != InSession || e.pos >= len(e.deck) {
		return domain.Card{}, false
	}
	return e.deck[e.pos], true
}

func (e *Engine) State() State { return e.state }
func (e *Engine) Side() Side { return e.side }
func (e *Engine) Mode() deck.Mode { return e.mode }
func (e *Engine) Position() int { return e.pos }
func (e *Engine) DeckLen() int { return len(e.deck) }
func (e *Engine) SessionID() string { return e.id }
func (e *Engine) Counts() domain.RatingCounts { return e.counts }
func (e *Engine) Buckets() Buckets { return e.buckets }
func (e *Engine) Topics() []domain.TopicKey { return e.topics }

// Records returns the per-card rating log in rating order.
func (e *Engine) Records() []domain.RatingRecord {
	out := make([]domain.RatingRecord, len(e.records))
	copy(out, e.records)
	return out
}

// Outcome snapshots the session for reporting.
func (e *Engine) Outcome() domain.SessionOutcome {
	finished := e.finishedAt
	if finished.IsZero() {
		finished = e.now()
	}
	return domain.SessionOutcome{
		SessionID:  e.id,
		Topics:     e.topics,
		Counts:     e.counts,
		Records:    e.Records(),
		StartedAt:  e.startedAt,
		FinishedAt: finished,
	}
}

func selectionTopics(cards []domain.Card) []domain.TopicKey {
	seen := make(map[domain.TopicKey]bool)
	var topics []domain.TopicKey
	for _, c := range cards {
		t := c.Topic()
		if seen[t] {
			continue
		}
		seen[t] = true
		topics = append(topics, t)
	}
	return topics
}
