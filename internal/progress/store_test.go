package progress

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/alexanderramin/flashbox/internal/repository"
	"github.com/alexanderramin/flashbox/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "cs0478-leitner-boxes", BoxesKey("cs0478"))
	assert.Equal(t, "cs0478-student", StudentKey("cs0478"))
}

func TestStore_SetGetRoundTripsThroughPersistence(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewSQLiteKVRepo(testutil.NewTestDB(t))

	s := NewStore(kv, BoxesKey("cs"), nil)
	s.Load(ctx)
	assert.Equal(t, domain.BoxUnseen, s.Get("U", "S", "T"))

	assert.True(t, s.Set(ctx, "U", "S", "T", domain.BoxSomewhat))
	assert.Equal(t, domain.BoxSomewhat, s.Get("U", "S", "T"))

	reloaded := NewStore(kv, BoxesKey("cs"), nil)
	reloaded.Load(ctx)
	assert.Equal(t, domain.BoxSomewhat, reloaded.Get("U", "S", "T"))
	assert.Equal(t, 1, reloaded.Len())
}

func TestStore_SnapshotUsesCompositeKeys(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKVRepo()
	s := NewStore(kv, "k", nil)

	require.True(t, s.Set(ctx, "Hardware", "CPU", "ALU", domain.BoxKnowWell))

	raw, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	var snapshot map[string]int
	require.NoError(t, json.Unmarshal([]byte(raw), &snapshot))
	assert.Equal(t, map[string]int{"Hardware|||CPU|||ALU": 3}, snapshot)
}

func TestStore_DowngradeOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore(repository.NewMemoryKVRepo(), "k", nil)

	s.Set(ctx, "U", "S", "T", domain.BoxKnowWell)
	s.Set(ctx, "U", "S", "T", domain.BoxDontKnow)
	assert.Equal(t, domain.BoxDontKnow, s.Get("U", "S", "T"))
}

func TestStore_RejectsInvalidBox(t *testing.T) {
	ctx := context.Background()
	s := NewStore(repository.NewMemoryKVRepo(), "k", nil)

	assert.False(t, s.Set(ctx, "U", "S", "T", domain.Box(4)))
	assert.Equal(t, 0, s.Len())
}

func TestStore_LoadToleratesBadData(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"not json", "{{{", 0},
		{"wrong shape", `["a","b"]`, 0},
		{"out of range boxes dropped", `{"U|||S|||A":2,"U|||S|||B":7,"U|||S|||C":-1}`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(&testutil.FailingKV{Value: tt.value}, "k", nil)
			s.Load(context.Background())
			assert.Equal(t, tt.want, s.Len())
		})
	}
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	s := NewStore(repository.NewMemoryKVRepo(), "k", nil)
	s.Load(context.Background())
	assert.Equal(t, 0, s.Len())
}

func TestStore_FailingPersistenceKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	kv := &testutil.FailingKV{}
	s := NewStore(kv, "k", nil)
	s.Load(ctx)

	assert.False(t, s.Set(ctx, "U", "S", "T", domain.BoxKnowWell))
	assert.Equal(t, domain.BoxKnowWell, s.Get("U", "S", "T"))
	assert.Equal(t, 1, kv.Writes)
}

func TestStore_NilKVIsMemoryOnly(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, "k", nil)
	s.Load(ctx)

	assert.False(t, s.Set(ctx, "U", "S", "T", domain.BoxSomewhat))
	assert.Equal(t, domain.BoxSomewhat, s.Get("U", "S", "T"))
	assert.False(t, s.Clear(ctx))
	assert.Equal(t, 0, s.Len())
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKVRepo()
	s := NewStore(kv, "k", nil)
	s.Set(ctx, "U", "S", "T", domain.BoxKnowWell)

	assert.True(t, s.Clear(ctx))
	assert.Equal(t, domain.BoxUnseen, s.Get("U", "S", "T"))

	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_CountsAndProgress(t *testing.T) {
	ctx := context.Background()
	s := NewStore(repository.NewMemoryKVRepo(), "k", nil)
	cards := testutil.NewTestCards(5)

	s.Set(ctx, cards[0].Unit, cards[0].Sub, cards[0].Term, domain.BoxKnowWell)
	s.Set(ctx, cards[1].Unit, cards[1].Sub, cards[1].Term, domain.BoxSomewhat)
	s.Set(ctx, cards[2].Unit, cards[2].Sub, cards[2].Term, domain.BoxDontKnow)

	assert.Equal(t, domain.BoxCounts{2, 1, 1, 1}, s.Counts(cards))

	p := s.SubtopicProgress(cards)
	assert.Equal(t, TopicProgress{Known: 1, Somewhat: 1, ToLearn: 3}, p)
	assert.Equal(t, 5, p.Total())
	assert.True(t, p.Started())
	assert.False(t, s.SubtopicProgress(cards[2:]).Started())
}
