package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	hw := c.EnsureUnit("Hardware")
	cpu := hw.EnsureSubtopic("CPU")
	require.True(t, cpu.Add(Card{Term: "ALU", Def: "Arithmetic logic unit"}))
	require.True(t, cpu.Add(Card{Term: "PC", Def: "Program counter"}))
	mem := hw.EnsureSubtopic("Memory")
	require.True(t, mem.Add(Card{Term: "RAM", Def: "Random access memory"}))
	net := c.EnsureUnit("Networks").EnsureSubtopic("Protocols")
	require.True(t, net.Add(Card{Term: "TCP", Def: "Transmission control protocol"}))
	return c
}

func TestNewCard_RejectsEmptyIdentity(t *testing.T) {
	_, err := NewCard("", "sub", "term", "def")
	assert.ErrorIs(t, err, ErrInvalidCard)
	_, err = NewCard("unit", " ", "term", "def")
	assert.ErrorIs(t, err, ErrInvalidCard)
	_, err = NewCard("unit", "sub", "", "def")
	assert.ErrorIs(t, err, ErrInvalidCard)

	c, err := NewCard(" unit ", "sub", " term", "def ")
	require.NoError(t, err)
	assert.Equal(t, Card{Unit: "unit", Sub: "sub", Term: "term", Def: "def"}, c)
}

func TestCardKey_RoundTrip(t *testing.T) {
	k := CardKey{Unit: "Hardware", Sub: "CPU", Term: "ALU"}
	assert.Equal(t, "Hardware|||CPU|||ALU", k.String())

	parsed, err := ParseCardKey(k.String())
	require.NoError(t, err)
	assert.Equal(t, k, parsed)

	_, err = ParseCardKey("no separator")
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestSubtopic_AddRejectsDuplicateTerm(t *testing.T) {
	s := &Subtopic{Name: "CPU"}
	assert.True(t, s.Add(Card{Term: "ALU", Def: "first"}))
	assert.False(t, s.Add(Card{Term: "ALU", Def: "second"}))
	require.Len(t, s.Cards, 1)
	assert.Equal(t, "first", s.Cards[0].Def)
}

func TestCatalog_SelectAnnotatesCopies(t *testing.T) {
	c := buildCatalog(t)

	cards := c.Select([]TopicKey{
		{Unit: "Networks", Sub: "Protocols"},
		{Unit: "Hardware", Sub: "CPU"},
		{Unit: "Hardware", Sub: "Missing"},
	})

	require.Len(t, cards, 3)
	assert.Equal(t, Card{Unit: "Networks", Sub: "Protocols", Term: "TCP", Def: "Transmission control protocol"}, cards[0])
	assert.Equal(t, "Hardware", cards[1].Unit)
	assert.Equal(t, "CPU", cards[1].Sub)
	assert.Equal(t, "ALU", cards[1].Term)

	// Catalog entries stay untouched.
	assert.Empty(t, c.Cards("Hardware", "CPU")[0].Unit)
}

func TestCatalog_TopicsAndTotals(t *testing.T) {
	c := buildCatalog(t)

	assert.Equal(t, 4, c.TotalCards())
	assert.Equal(t, []TopicKey{
		{Unit: "Hardware", Sub: "CPU"},
		{Unit: "Hardware", Sub: "Memory"},
		{Unit: "Networks", Sub: "Protocols"},
	}, c.Topics())
	assert.Len(t, c.All(), 4)
	assert.Nil(t, c.Cards("Nope", "CPU"))
}

func TestParseTopicKey(t *testing.T) {
	k, err := ParseTopicKey("Hardware/CPU")
	require.NoError(t, err)
	assert.Equal(t, TopicKey{Unit: "Hardware", Sub: "CPU"}, k)

	k, err = ParseTopicKey("Data/Storage|||Units of storage")
	require.NoError(t, err)
	assert.Equal(t, TopicKey{Unit: "Data/Storage", Sub: "Units of storage"}, k)

	_, err = ParseTopicKey("Hardware")
	assert.Error(t, err)
	_, err = ParseTopicKey("/CPU")
	assert.Error(t, err)
}

func TestDedupeCards_FirstOccurrenceWins(t *testing.T) {
	a := Card{Unit: "U", Sub: "S", Term: "A"}
	b := Card{Unit: "U", Sub: "S", Term: "B"}
	c := Card{Unit: "U", Sub: "S", Term: "C"}

	assert.Equal(t, []Card{a, b, c}, DedupeCards([]Card{a, b, b, c, a}))
	assert.Empty(t, DedupeCards(nil))
}
