package domain

import (
	"fmt"
	"strings"
)

// KeySeparator joins the identity fields of a card into a single key.
// It must not appear in plausible unit, subtopic or term text.
const KeySeparator = "|||"

// CardKey is the identity of a card: unit, subtopic and term.
type CardKey struct {
	Unit string
	Sub  string
	Term string
}

// String returns the composite persistence key "unit|||sub|||term".
func (k CardKey) String() string {
	return k.Unit + KeySeparator + k.Sub + KeySeparator + k.Term
}

// ParseCardKey splits a composite key produced by CardKey.String.
func ParseCardKey(s string) (CardKey, error) {
	parts := strings.Split(s, KeySeparator)
	if len(parts) != 3 {
		return CardKey{}, fmt.Errorf("%w: malformed key %q", ErrInvalidCard, s)
	}
	return CardKey{Unit: parts[0], Sub: parts[1], Term: parts[2]}, nil
}

// Card is an immutable catalog entry. Cards pulled into a selection carry
// their source unit and subtopic.
type Card struct {
	Unit string
	Sub  string
	Term string
	Def  string
}

// NewCard builds a card, rejecting empty identity fields.
func NewCard(unit, sub, term, def string) (Card, error) {
	unit, sub, term = strings.TrimSpace(unit), strings.TrimSpace(sub), strings.TrimSpace(term)
	switch {
	case unit == "":
		return Card{}, fmt.Errorf("%w: unit is required", ErrInvalidCard)
	case sub == "":
		return Card{}, fmt.Errorf("%w: subtopic is required", ErrInvalidCard)
	case term == "":
		return Card{}, fmt.Errorf("%w: term is required", ErrInvalidCard)
	}
	return Card{Unit: unit, Sub: sub, Term: term, Def: strings.TrimSpace(def)}, nil
}

// Key returns the card's identity.
func (c Card) Key() CardKey {
	return CardKey{Unit: c.Unit, Sub: c.Sub, Term: c.Term}
}

// Topic returns the unit/subtopic pair the card belongs to.
func (c Card) Topic() TopicKey {
	return TopicKey{Unit: c.Unit, Sub: c.Sub}
}

// DedupeCards returns cards with repeated identities removed, keeping the
// first occurrence and preserving order.
func DedupeCards(cards []Card) []Card {
	seen := make(map[CardKey]bool, len(cards))
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		k := c.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}
