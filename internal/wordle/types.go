// internal/wordle/types.go
//
// Request/reply contract of the guess service.
// Requests (sent by the coordinator):
//   - StartRound: open a round for a player.
//   - CheckGuess: score a five-letter guess against the player's answer.
// Replies:
//   - RoundStarted: the round is open.
//   - GuessScored:  per-position scoring of a guess.

package wordle

import "github.com/robalobadob/wordle/apps/game-session/internal/actor"

// Mark represents the evaluation result for a single letter in a guess.
//   - "hit":     letter is correct and in the correct position.
//   - "present": letter exists in the answer but in a different position.
//   - "miss":    letter does not exist in the answer at all.
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

// StartRound asks the service to open a round for User.
type StartRound struct {
	User actor.ID
}

// CheckGuess asks the service to score Word for User.
type CheckGuess struct {
	User actor.ID
	Word string
}

// Event is a reply from the service. Every reply names the player it
// concerns.
type Event interface {
	Player() actor.ID
}

// RoundStarted acknowledges StartRound.
type RoundStarted struct {
	User actor.ID
}

func (e RoundStarted) Player() actor.ID { return e.User }

// GuessScored answers CheckGuess. CorrectPositions holds the indexes of
// hits, ContainedInWord the indexes of letters present elsewhere.
type GuessScored struct {
	User             actor.ID
	Word             string
	CorrectPositions []int
	ContainedInWord  []int
}

func (e GuessScored) Player() actor.ID { return e.User }

// Solved reports whether every position was a hit.
func (e GuessScored) Solved() bool { return len(e.CorrectPositions) == len(e.Word) && len(e.Word) > 0 }
