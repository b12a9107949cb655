// Package progress keeps each card's mastery level and the learner identity
// on top of a best-effort key-value store.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/alexanderramin/flashbox/internal/repository"
)

// BoxesKey is the persistence key holding the mastery snapshot.
func BoxesKey(prefix string) string {
	return prefix + "-leitner-boxes"
}

// StudentKey is the persistence key holding the learner identity.
func StudentKey(prefix string) string {
	return prefix + "-student"
}

// Store maps card identities to mastery levels. Every mutation rewrites the
// whole snapshot; persistence failures leave the in-memory state in effect.
// A Store is owned by a single goroutine.
type Store struct {
	kv     repository.KVRepo
	key    string
	logger *slog.Logger
	boxes  map[string]domain.Box
}

// NewStore creates an empty store persisting under key. A nil kv gives a
// memory-only store whose writes report failure.
func NewStore(kv repository.KVRepo, key string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		kv:     kv,
		key:    key,
		logger: logger,
		boxes:  make(map[string]domain.Box),
	}
}

// Load replaces the in-memory state with the persisted snapshot. A missing,
// unreadable or corrupt snapshot yields an empty store.
func (s *Store) Load(ctx context.Context) {
	s.boxes = make(map[string]domain.Box)
	if s.kv == nil {
		return
	}

	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.DebugContext(ctx, "progress_load_failed", "key", s.key, "error", err)
		}
		return
	}

	var snapshot map[string]int
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		s.logger.DebugContext(ctx, "progress_snapshot_corrupt", "key", s.key, "error", err)
		return
	}
	for k, v := range snapshot {
		b := domain.Box(v)
		if !b.IsValid() {
			continue
		}
		s.boxes[k] = b
	}
}

// Get returns the stored level, or BoxUnseen when absent.
func (s *Store) Get(unit, sub, term string) domain.Box {
	return s.boxes[domain.CardKey{Unit: unit, Sub: sub, Term: term}.String()]
}

// Box returns the stored level of a card.
func (s *Store) Box(card domain.Card) domain.Box {
	return s.Get(card.Unit, card.Sub, card.Term)
}

// Set overwrites the level of a card and persists the snapshot. It reports
// whether the snapshot was persisted; an invalid box is rejected without
// changing anything.
func (s *Store) Set(ctx context.Context, unit, sub, term string, box domain.Box) bool {
	if !box.IsValid() {
		return false
	}
	s.boxes[domain.CardKey{Unit: unit, Sub: sub, Term: term}.String()] = box
	return s.persist(ctx)
}

// Clear forgets every level, in memory and in persistence.
func (s *Store) Clear(ctx context.Context) bool {
	s.boxes = make(map[string]domain.Box)
	if s.kv == nil {
		return false
	}
	if err := s.kv.Remove(ctx, s.key); err != nil {
		s.logger.DebugContext(ctx, "progress_clear_failed", "key", s.key, "error", err)
		return false
	}
	return true
}

// Len returns the number of cards with a stored level.
func (s *Store) Len() int {
	return len(s.boxes)
}

// Counts tallies the given cards per mastery level.
func (s *Store) Counts(cards []domain.Card) domain.BoxCounts {
	var counts domain.BoxCounts
	for _, c := range cards {
		counts[s.Box(c)]++
	}
	return counts
}

// TopicProgress summarizes mastery over a set of cards. Box 0 and 1 both
// count as still to learn.
type TopicProgress struct {
	Known    int
	Somewhat int
	ToLearn  int
}

// Total returns the number of cards summarized.
func (p TopicProgress) Total() int {
	return p.Known + p.Somewhat + p.ToLearn
}

// Started reports whether any card has reached box 2 or 3.
func (p TopicProgress) Started() bool {
	return p.Known > 0 || p.Somewhat > 0
}

// SubtopicProgress summarizes mastery over cards.
func (s *Store) SubtopicProgress(cards []domain.Card) TopicProgress {
	var p TopicProgress
	for _, c := range cards {
		switch s.Box(c) {
		case domain.BoxKnowWell:
			p.Known++
		case domain.BoxSomewhat:
			p.Somewhat++
		default:
			p.ToLearn++
		}
	}
	return p
}

func (s *Store) persist(ctx context.Context) bool {
	if s.kv == nil {
		return false
	}
	snapshot := make(map[string]int, len(s.boxes))
	for k, b := range s.boxes {
		snapshot[k] = int(b)
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.DebugContext(ctx, "progress_encode_failed", "error", err)
		return false
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		s.logger.DebugContext(ctx, "progress_save_failed", "key", s.key, "error", err)
		return false
	}
	return true
}
