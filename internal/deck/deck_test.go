package deck

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/alexanderramin/flashbox/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(boxes map[string]domain.Box) Lookup {
	return func(c domain.Card) domain.Box {
		return boxes[c.Term]
	}
}

func countByTerm(cards []domain.Card) map[string]int {
	counts := make(map[string]int)
	for _, c := range cards {
		counts[c.Term]++
	}
	return counts
}

func TestCopies(t *testing.T) {
	assert.Equal(t, 4, Copies(domain.BoxUnseen))
	assert.Equal(t, 4, Copies(domain.BoxDontKnow))
	assert.Equal(t, 2, Copies(domain.BoxSomewhat))
	assert.Equal(t, 1, Copies(domain.BoxKnowWell))
}

func TestBuildWeighted_ReplicatesByBox(t *testing.T) {
	cards := testutil.NewTestCards(4)
	lookup := lookupFrom(map[string]domain.Box{
		"T1": domain.BoxUnseen,
		"T2": domain.BoxDontKnow,
		"T3": domain.BoxSomewhat,
		"T4": domain.BoxKnowWell,
	})

	deck := BuildWeighted(cards, lookup, rand.New(rand.NewSource(1)))

	assert.Len(t, deck, 11)
	assert.Equal(t, map[string]int{"T1": 4, "T2": 4, "T3": 2, "T4": 1}, countByTerm(deck))
}

func TestBuildWeighted_EmptyInput(t *testing.T) {
	deck := BuildWeighted(nil, lookupFrom(nil), rand.New(rand.NewSource(1)))
	assert.Empty(t, deck)
}

func TestBuildWeighted_SameSeedSameOrder(t *testing.T) {
	cards := testutil.NewTestCards(10)
	lookup := lookupFrom(nil)

	a := BuildWeighted(cards, lookup, rand.New(rand.NewSource(7)))
	b := BuildWeighted(cards, lookup, rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}

// TestBuildWeighted_Invariants_DeckIsPermutationOfReplicas property-tests
// that the deck length equals the sum of copies and each card appears
// exactly Copies(box) times.
func TestBuildWeighted_Invariants_DeckIsPermutationOfReplicas(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(20)
		cards := testutil.NewTestCards(n)
		boxes := make(map[string]domain.Box, n)
		want := make(map[string]int, n)
		wantLen := 0
		for _, c := range cards {
			b := domain.AllBoxes[rng.Intn(len(domain.AllBoxes))]
			boxes[c.Term] = b
			want[c.Term] = Copies(b)
			wantLen += Copies(b)
		}

		deck := BuildWeighted(cards, lookupFrom(boxes), rng)

		assert.Len(t, deck, wantLen, "trial %d", trial)
		if n > 0 {
			assert.Equal(t, want, countByTerm(deck), "trial %d", trial)
		}
	}
}

func TestBuildWeighted_ShuffleIsNotIdentity(t *testing.T) {
	cards := testutil.NewTestCards(20)
	lookup := lookupFrom(nil)
	replicas := make([]string, 0, 80)
	for _, c := range cards {
		for range 4 {
			replicas = append(replicas, c.Term)
		}
	}

	rng := rand.New(rand.NewSource(3))
	moved := false
	for range 5 {
		deck := BuildWeighted(cards, lookup, rng)
		for i, c := range deck {
			if c.Term != replicas[i] {
				moved = true
			}
		}
	}
	assert.True(t, moved)
}

func TestBuildPriority_GroupsAscendingWithoutReplication(t *testing.T) {
	cards := testutil.NewTestCards(8)
	boxes := map[string]domain.Box{
		"T1": domain.BoxKnowWell,
		"T2": domain.BoxSomewhat,
		"T3": domain.BoxDontKnow,
		"T4": domain.BoxUnseen,
		"T5": domain.BoxKnowWell,
		"T6": domain.BoxDontKnow,
		"T7": domain.BoxSomewhat,
		"T8": domain.BoxUnseen,
	}

	deck := BuildPriority(cards, lookupFrom(boxes), rand.New(rand.NewSource(5)))

	require.Len(t, deck, 8)
	var seq []domain.Box
	for _, c := range deck {
		seq = append(seq, boxes[c.Term])
	}
	assert.True(t, sort.SliceIsSorted(seq, func(i, j int) bool { return seq[i] < seq[j] }),
		"boxes must be non-decreasing, got %v", seq)

	terms := make([]string, 0, len(deck))
	for _, c := range deck {
		terms = append(terms, c.Term)
	}
	assert.ElementsMatch(t, []string{"T1", "T2", "T3", "T4", "T5", "T6", "T7", "T8"}, terms)
}

func TestBuildPriority_Invariants_PartitionPreserved(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(15)
		cards := testutil.NewTestCards(n)
		boxes := make(map[string]domain.Box, n)
		for _, c := range cards {
			boxes[c.Term] = domain.AllBoxes[rng.Intn(len(domain.AllBoxes))]
		}

		deck := BuildPriority(cards, lookupFrom(boxes), rng)

		require.Len(t, deck, n, "trial %d", trial)
		for i := 1; i < len(deck); i++ {
			assert.LessOrEqual(t, boxes[deck[i-1].Term], boxes[deck[i].Term], "trial %d position %d", trial, i)
		}
		for term, count := range countByTerm(deck) {
			assert.Equal(t, 1, count, "trial %d term %s", trial, term)
		}
	}
}

func TestBuild_DispatchesOnMode(t *testing.T) {
	cards := testutil.NewTestCards(3)
	lookup := lookupFrom(nil)

	assert.Len(t, Build(Weighted, cards, lookup, rand.New(rand.NewSource(1))), 12)
	assert.Len(t, Build(Priority, cards, lookup, rand.New(rand.NewSource(1))), 3)
	assert.Equal(t, "priority", Priority.String())
}
