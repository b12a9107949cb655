// Package deck turns a card selection into the ordered sequence shown in a
// study session.
package deck

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/alexanderramin/flashbox/internal/domain"
)

// Mode selects how a deck is built.
type Mode int

const (
	// Weighted replicates cards by mastery and shuffles the whole deck.
	Weighted Mode = iota
	// Priority shows each card once, weakest group first.
	Priority
)

func (m Mode) String() string {
	switch m {
	case Weighted:
		return "weighted"
	case Priority:
		return "priority"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Lookup returns the current mastery level of a card.
type Lookup func(domain.Card) domain.Box

// Copies returns how many times a card at box appears in a weighted deck:
// 4 for unseen and don't-know, 2 for somewhat, 1 for know-well.
func Copies(box domain.Box) int {
	switch box {
	case domain.BoxKnowWell:
		return 1
	case domain.BoxSomewhat:
		return 2
	default:
		return 4
	}
}

// NewRand returns the entropy source for shuffles. A zero seed uses the
// current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Build dispatches to the builder for mode.
func Build(mode Mode, cards []domain.Card, lookup Lookup, rng *rand.Rand) []domain.Card {
	if mode == Priority {
		return BuildPriority(cards, lookup, rng)
	}
	return BuildWeighted(cards, lookup, rng)
}

// BuildWeighted replicates each card Copies(box) times and shuffles the
// result uniformly.
func BuildWeighted(cards []domain.Card, lookup Lookup, rng *rand.Rand) []domain.Card {
	deck := make([]domain.Card, 0, len(cards)*4)
	for _, c := range cards {
		for range Copies(lookup(c)) {
			deck = append(deck, c)
		}
	}
	shuffle(deck, rng)
	return deck
}

// BuildPriority orders cards by box ascending:
// 1. Unseen
// 2. Don't know
// 3. Somewhat
// 4. Know well
// Each group is shuffled independently and every card appears once.
func BuildPriority(cards []domain.Card, lookup Lookup, rng *rand.Rand) []domain.Card {
	var groups [len(domain.AllBoxes)][]domain.Card
	for _, c := range cards {
		b := lookup(c)
		if !b.IsValid() {
			b = domain.BoxUnseen
		}
		groups[b] = append(groups[b], c)
	}

	deck := make([]domain.Card, 0, len(cards))
	for _, g := range groups {
		shuffle(g, rng)
		deck = append(deck, g...)
	}
	return deck
}

// shuffle is an in-place Fisher-Yates shuffle.
func shuffle(cards []domain.Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
