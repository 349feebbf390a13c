package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/game-session/internal/actor"
)

func TestStatusPredicates(t *testing.T) {
	assert.True(t, IsConcluded(Concluded{Outcome: Won}))
	assert.False(t, IsConcluded(RoundReady{}))
	assert.True(t, InFlight(AwaitingRoundStart{}))
	assert.True(t, InFlight(AwaitingGuessCheck{}))
	assert.False(t, InFlight(Idle{}))
	assert.Equal(t, "concluded_lost", Concluded{Outcome: Lost}.String())
}

func TestBeginRoundResets(t *testing.T) {
	r := Record{Generation: "old", Tries: 4, Status: Concluded{Outcome: Lost}, Resume: "x", PendingInbound: "in0"}
	r.BeginRound("new", "in", "out")

	assert.Equal(t, Generation("new"), r.Generation)
	assert.Zero(t, r.Tries)
	assert.Equal(t, AwaitingRoundStart{}, r.Status)
	assert.Nil(t, r.Resume)
	assert.True(t, r.Correlates("out"))
	assert.False(t, r.Correlates("other"))
	assert.NoError(t, r.Validate())
}

func TestSettleAndResume(t *testing.T) {
	r := NewRecord()
	r.BeginRound("g", "in", "out")
	r.Settle(RoundReady{}, "started")

	assert.False(t, r.Correlates("out"), "settled reply must not correlate twice")
	assert.True(t, r.Busy())
	assert.True(t, r.Resuming("in"))
	assert.False(t, r.Resuming("other"))

	assert.Equal(t, "started", r.TakeResume())
	assert.False(t, r.Busy())
	assert.Empty(t, r.PendingInbound)
	assert.NoError(t, r.Validate())
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Record{}.Validate(), ErrInvalidRecord)
	assert.ErrorIs(t, Record{Status: RoundReady{}, Tries: TriesLimit + 1}.Validate(), ErrInvalidRecord)
	assert.ErrorIs(t, Record{Status: AwaitingGuessCheck{}}.Validate(), ErrInvalidRecord)
	assert.ErrorIs(t, Record{Status: RoundReady{}, Resume: "x"}.Validate(), ErrInvalidRecord)
	assert.NoError(t, NewRecord().Validate())
}

func TestStoreLookupDoesNotCreate(t *testing.T) {
	s := NewStore()
	r := s.Lookup("alice")
	assert.Equal(t, Idle{}, r.Status)
	assert.Zero(t, s.Len())

	_, ok := s.Get("alice")
	assert.False(t, ok)
}

func TestStorePutRejectsInvalid(t *testing.T) {
	s := NewStore()
	err := s.Put("alice", Record{Status: AwaitingRoundStart{}})
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.Zero(t, s.Len())
}

func TestStoreSnapshotIsOrderedCopy(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Put("carol", NewRecord()))
	require.NoError(t, s.Put("alice", NewRecord()))
	require.NoError(t, s.Put("bob", NewRecord()))

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, []actor.ID{"alice", "bob", "carol"}, []actor.ID{snap[0].User, snap[1].User, snap[2].User})

	snap[0].Record.Tries = 3
	got, _ := s.Get("alice")
	assert.Zero(t, got.Tries)
}

func TestRecordJSON(t *testing.T) {
	r := Record{Generation: "g1", Tries: 2, Status: Concluded{Outcome: Won}}
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"generation":"g1","tries":2,"status":"concluded_won"}`, string(b))
}
