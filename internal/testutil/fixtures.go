package testutil

import (
	"fmt"

	"github.com/alexanderramin/flashbox/internal/domain"
)

// CardOption customizes a test card.
type CardOption func(*domain.Card)

func WithDef(def string) CardOption {
	return func(c *domain.Card) {
		c.Def = def
	}
}

func WithTopic(unit, sub string) CardOption {
	return func(c *domain.Card) {
		c.Unit = unit
		c.Sub = sub
	}
}

// NewTestCard returns a card in unit "Unit 1", subtopic "Basics" unless
// overridden.
func NewTestCard(term string, opts ...CardOption) domain.Card {
	c := domain.Card{
		Unit: "Unit 1",
		Sub:  "Basics",
		Term: term,
		Def:  "Definition of " + term,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// NewTestCards returns n cards named "T1".."Tn" in the default topic.
func NewTestCards(n int, opts ...CardOption) []domain.Card {
	cards := make([]domain.Card, 0, n)
	for i := 1; i <= n; i++ {
		cards = append(cards, NewTestCard(fmt.Sprintf("T%d", i), opts...))
	}
	return cards
}

// NewTestCatalog builds a catalog with the given number of cards in each
// subtopic of two units.
func NewTestCatalog(perTopic int) *domain.Catalog {
	cat := domain.NewCatalog()
	for _, unit := range []string{"Hardware", "Networks"} {
		u := cat.EnsureUnit(unit)
		for _, sub := range []string{"Basics", "Advanced"} {
			s := u.EnsureSubtopic(sub)
			for i := 1; i <= perTopic; i++ {
				s.Add(domain.Card{
					Term: fmt.Sprintf("%s %s %d", unit, sub, i),
					Def:  fmt.Sprintf("Definition %d", i),
				})
			}
		}
	}
	return cat
}
