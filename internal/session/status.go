// internal/session/status.go
//
// Session status as a closed sum type.
// Variants:
//   - Idle:               no round played yet.
//   - AwaitingRoundStart: waiting for the guess service to open a round.
//   - RoundReady:         round open, waiting for the player's guess.
//   - AwaitingGuessCheck: waiting for the guess service to score a guess.
//   - Concluded:          terminal for the round, carries the Outcome.
//
// Only this package can add variants (unexported marker method).

package session

import "fmt"

// Outcome is the result of a concluded round.
type Outcome int

const (
	Won Outcome = iota + 1
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// MarshalText renders the outcome as "won" or "lost".
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Status is one of Idle, AwaitingRoundStart, RoundReady, AwaitingGuessCheck
// or Concluded.
type Status interface {
	status()
	String() string
}

type (
	Idle               struct{}
	AwaitingRoundStart struct{}
	RoundReady         struct{}
	AwaitingGuessCheck struct{}
	Concluded          struct{ Outcome Outcome }
)

func (Idle) status()               {}
func (AwaitingRoundStart) status() {}
func (RoundReady) status()         {}
func (AwaitingGuessCheck) status() {}
func (Concluded) status()          {}

func (Idle) String() string               { return "idle" }
func (AwaitingRoundStart) String() string { return "awaiting_round_start" }
func (RoundReady) String() string         { return "round_ready" }
func (AwaitingGuessCheck) String() string { return "awaiting_guess_check" }
func (c Concluded) String() string        { return "concluded_" + c.Outcome.String() }

// IsConcluded reports whether s is Concluded with any outcome.
func IsConcluded(s Status) bool {
	_, ok := s.(Concluded)
	return ok
}

// InFlight reports whether s is waiting on the guess service.
func InFlight(s Status) bool {
	switch s.(type) {
	case AwaitingRoundStart, AwaitingGuessCheck:
		return true
	}
	return false
}
