// internal/session/store.go
//
// In-memory session store keyed by player identity.
//
// Characteristics:
//   - Records are values; Lookup hands out a copy and Put commits it, so a
//     handler that fails before Put leaves the store untouched.
//   - Entries are created on first Put and never removed.
//   - Not synchronized: the store is owned by the single scheduler worker.

package session

import (
	"fmt"
	"sort"

	"github.com/robalobadob/wordle/apps/game-session/internal/actor"
)

// Store maps players to their session records.
type Store struct {
	records map[actor.ID]Record
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{records: make(map[actor.ID]Record)}
}

// Get returns the record for user, if any.
func (s *Store) Get(user actor.ID) (Record, bool) {
	r, ok := s.records[user]
	return r, ok
}

// Lookup returns the record for user, or a fresh Idle record.
func (s *Store) Lookup(user actor.ID) Record {
	if r, ok := s.records[user]; ok {
		return r
	}
	return NewRecord()
}

// Put validates and stores r for user.
func (s *Store) Put(user actor.ID, r Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("put %s: %w", user, err)
	}
	s.records[user] = r
	return nil
}

// Len returns the number of known players.
func (s *Store) Len() int { return len(s.records) }

// Entry is one player's record in a snapshot.
type Entry struct {
	User   actor.ID `json:"user"`
	Record Record   `json:"session"`
}

// Snapshot returns every record ordered by player identity.
func (s *Store) Snapshot() []Entry {
	out := make([]Entry, 0, len(s.records))
	for user, r := range s.records {
		out = append(out, Entry{User: user, Record: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].User < out[j].User })
	return out
}
