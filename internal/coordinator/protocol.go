// internal/coordinator/protocol.go
//
// Messages understood and produced by the coordinator.
// Inbound:
//   - Init:            one-time bootstrap carrying the guess service identity.
//   - StartGame:       player asks for a new round.
//   - CheckWord:       player submits a guess.
//   - CheckGameStatus: delayed self-message enforcing the round deadline.
// Outbound to players:
//   - StartSuccess, WordChecked, GameOver.

package coordinator

import (
	"github.com/robalobadob/wordle/apps/game-session/internal/actor"
	"github.com/robalobadob/wordle/apps/game-session/internal/session"
)

// Init is the bootstrap payload.
type Init struct {
	WordleID actor.ID
}

// StartGame asks for a new round for the sender.
type StartGame struct{}

// CheckWord submits a guess for the sender's open round.
type CheckWord struct {
	Word string
}

// CheckGameStatus is the watchdog message. It is honored only when sent
// by the coordinator to itself.
type CheckGameStatus struct {
	User       actor.ID
	Generation session.Generation
}

// StartSuccess answers StartGame once the round is open.
type StartSuccess struct{}

// WordChecked answers a CheckWord that did not end the round.
type WordChecked struct {
	Word             string `json:"word"`
	CorrectPositions []int  `json:"correctPositions"`
	ContainedInWord  []int  `json:"containedInWord"`
	Tries            int    `json:"tries"`
}

// GameOver ends a round, either as the answer to CheckWord or as an
// asynchronous notification from the watchdog. TimedOut marks losses
// forced by the watchdog; a request parked at that moment is answered with
// the same value.
type GameOver struct {
	Outcome  session.Outcome `json:"outcome"`
	Tries    int             `json:"tries"`
	TimedOut bool            `json:"timedOut,omitempty"`
}
