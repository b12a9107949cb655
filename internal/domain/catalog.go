package domain

import (
	"fmt"
	"strings"
)

// TopicKey identifies a subtopic within a unit.
type TopicKey struct {
	Unit string
	Sub  string
}

func (t TopicKey) String() string {
	return t.Unit + KeySeparator + t.Sub
}

// ParseTopicKey accepts either "unit|||sub" or the shorter "unit/sub" form
// used on the command line.
func ParseTopicKey(s string) (TopicKey, error) {
	if unit, sub, ok := strings.Cut(s, KeySeparator); ok {
		return newTopicKey(unit, sub, s)
	}
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return newTopicKey(s[:i], s[i+1:], s)
	}
	return TopicKey{}, fmt.Errorf("topic %q: expected unit/subtopic", s)
}

func newTopicKey(unit, sub, raw string) (TopicKey, error) {
	unit, sub = strings.TrimSpace(unit), strings.TrimSpace(sub)
	if unit == "" || sub == "" {
		return TopicKey{}, fmt.Errorf("topic %q: unit and subtopic are required", raw)
	}
	return TopicKey{Unit: unit, Sub: sub}, nil
}

// Subtopic is an ordered group of cards under a unit.
type Subtopic struct {
	Name  string
	Cards []Card
}

// Unit is an ordered group of subtopics.
type Unit struct {
	Name      string
	Subtopics []*Subtopic
}

// Catalog is the static set of parsed cards, grouped by unit and subtopic in
// source order.
type Catalog struct {
	Units []*Unit
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Unit returns the named unit, or nil.
func (c *Catalog) Unit(name string) *Unit {
	for _, u := range c.Units {
		if u.Name == name {
			return u
		}
	}
	return nil
}

// Subtopic returns the named subtopic within unit, or nil.
func (u *Unit) Subtopic(name string) *Subtopic {
	for _, s := range u.Subtopics {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// EnsureUnit returns the named unit, appending it when missing. A repeated
// unit header continues the existing unit.
func (c *Catalog) EnsureUnit(name string) *Unit {
	if u := c.Unit(name); u != nil {
		return u
	}
	u := &Unit{Name: name}
	c.Units = append(c.Units, u)
	return u
}

// EnsureSubtopic returns the named subtopic within u, appending it when missing.
func (u *Unit) EnsureSubtopic(name string) *Subtopic {
	if s := u.Subtopic(name); s != nil {
		return s
	}
	s := &Subtopic{Name: name}
	u.Subtopics = append(u.Subtopics, s)
	return s
}

// Add appends a card to its subtopic. It reports false when a card with the
// same identity already exists.
func (s *Subtopic) Add(card Card) bool {
	for _, existing := range s.Cards {
		if existing.Term == card.Term {
			return false
		}
	}
	s.Cards = append(s.Cards, card)
	return true
}

// Cards returns the cards of a subtopic, or nil if it does not exist.
func (c *Catalog) Cards(unit, sub string) []Card {
	u := c.Unit(unit)
	if u == nil {
		return nil
	}
	s := u.Subtopic(sub)
	if s == nil {
		return nil
	}
	return s.Cards
}

// Topics lists every unit/subtopic pair in source order.
func (c *Catalog) Topics() []TopicKey {
	var topics []TopicKey
	for _, u := range c.Units {
		for _, s := range u.Subtopics {
			topics = append(topics, TopicKey{Unit: u.Name, Sub: s.Name})
		}
	}
	return topics
}

// TotalCards counts every card in the catalog.
func (c *Catalog) TotalCards() int {
	n := 0
	for _, u := range c.Units {
		for _, s := range u.Subtopics {
			n += len(s.Cards)
		}
	}
	return n
}

// Select copies the cards of the given topics, in selection order, each
// annotated with its unit and subtopic. Unknown topics are ignored.
func (c *Catalog) Select(topics []TopicKey) []Card {
	var cards []Card
	for _, t := range topics {
		for _, card := range c.Cards(t.Unit, t.Sub) {
			card.Unit, card.Sub = t.Unit, t.Sub
			cards = append(cards, card)
		}
	}
	return cards
}

// All returns every card in the catalog.
func (c *Catalog) All() []Card {
	return c.Select(c.Topics())
}
