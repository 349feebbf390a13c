// internal/session/record.go
//
// Per-player session record and its invariant-preserving mutators.
// A Record carries:
//   - the round generation (invalidates stale watchdog checks),
//   - the correlation pair: parked inbound request / outstanding outbound
//     request to the guess service,
//   - the number of scored guesses in the current round,
//   - the current Status,
//   - the answer waiting to be handed back to the parked request.

package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/game-session/internal/actor"
)

// TriesLimit is the number of scored guesses after which a round is lost.
const TriesLimit = 5

// Generation identifies one round of a session.
type Generation string

var ErrInvalidRecord = errors.New("invalid session record")

// Record is the state of a single player's session.
type Record struct {
	Generation      Generation
	PendingInbound  actor.MessageID
	PendingOutbound actor.MessageID
	Tries           int
	Status          Status

	// Resume is the answer for PendingInbound, set when a correlated reply
	// arrives and cleared when the parked request is resumed.
	Resume any
}

// NewRecord returns the record of a player that never played.
func NewRecord() Record { return Record{Status: Idle{}} }

// BeginRound resets r for a fresh round waiting on outbound.
func (r *Record) BeginRound(gen Generation, inbound, outbound actor.MessageID) {
	r.Generation = gen
	r.PendingInbound = inbound
	r.PendingOutbound = outbound
	r.Tries = 0
	r.Status = AwaitingRoundStart{}
	r.Resume = nil
}

// AwaitGuess parks inbound until the guess service answers outbound.
func (r *Record) AwaitGuess(inbound, outbound actor.MessageID) {
	r.PendingInbound = inbound
	r.PendingOutbound = outbound
	r.Status = AwaitingGuessCheck{}
}

// Correlates reports whether replyTo answers the outstanding request.
func (r Record) Correlates(replyTo actor.MessageID) bool {
	return r.PendingOutbound != "" && r.PendingOutbound == replyTo
}

// Settle moves r to s, drops the outbound correlation and stores answer
// for the parked request.
func (r *Record) Settle(s Status, answer any) {
	r.Status = s
	r.PendingOutbound = ""
	r.Resume = answer
}

// Resuming reports whether id is the parked request and its answer is
// ready.
func (r Record) Resuming(id actor.MessageID) bool {
	return r.Resume != nil && r.PendingInbound == id
}

// TakeResume returns the stored answer and releases the parked request.
func (r *Record) TakeResume() any {
	answer := r.Resume
	r.Resume = nil
	r.PendingInbound = ""
	return answer
}

// Busy reports whether a request is in flight or an answer has not yet
// been handed back.
func (r Record) Busy() bool { return InFlight(r.Status) || r.Resume != nil }

// Validate checks the record invariants.
func (r Record) Validate() error {
	switch {
	case r.Status == nil:
		return fmt.Errorf("%w: missing status", ErrInvalidRecord)
	case r.Tries < 0 || r.Tries > TriesLimit:
		return fmt.Errorf("%w: tries %d out of range", ErrInvalidRecord, r.Tries)
	case InFlight(r.Status) && (r.PendingOutbound == "" || r.PendingInbound == ""):
		return fmt.Errorf("%w: %s without correlation", ErrInvalidRecord, r.Status)
	case r.Resume != nil && r.PendingInbound == "":
		return fmt.Errorf("%w: answer without parked request", ErrInvalidRecord)
	}
	return nil
}

// MarshalJSON renders the exported view of the record.
func (r Record) MarshalJSON() ([]byte, error) {
	status := "idle"
	if r.Status != nil {
		status = r.Status.String()
	}
	return json.Marshal(struct {
		Generation      Generation      `json:"generation,omitempty"`
		PendingInbound  actor.MessageID `json:"pendingInbound,omitempty"`
		PendingOutbound actor.MessageID `json:"pendingOutbound,omitempty"`
		Tries           int             `json:"tries"`
		Status          string          `json:"status"`
	}{r.Generation, r.PendingInbound, r.PendingOutbound, r.Tries, status})
}
