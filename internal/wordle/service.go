// internal/wordle/service.go
//
// In-process guess service program.
// Responsibilities:
//   - Pick an answer per player on StartRound and acknowledge it.
//   - Score CheckGuess against that answer and reply with the positions.
//
// Notes:
//   - A CheckGuess for a player without an open round fails and produces no
//     reply; the caller has to bound that with its own deadline.
//   - Answers are kept after a win so a late duplicate guess still scores.

package wordle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/game-session/internal/actor"
	"github.com/robalobadob/wordle/apps/game-session/internal/daily"
	"github.com/robalobadob/wordle/apps/game-session/internal/words"
)

var (
	ErrNoRound           = errors.New("no round for player")
	ErrInvalidGuess      = errors.New("invalid guess")
	ErrUnexpectedPayload = errors.New("unexpected payload")
)

// Picker chooses the answer for a player's new round.
type Picker func(user actor.ID) string

// RandomPicker draws a random answer from list for every round.
func RandomPicker(list *words.List) Picker {
	return func(actor.ID) string { return list.RandomAnswer() }
}

// DailyPicker gives every player the same answer for a UTC date, selected
// with HMAC(salt, date).
func DailyPicker(list *words.List, salt string, now func() time.Time) Picker {
	return func(actor.ID) string {
		return list.At(daily.On(now()).Index(salt, list.Len()))
	}
}

// FixedPicker always answers word.
func FixedPicker(word string) Picker {
	return func(actor.ID) string { return word }
}

// Service is the guess-checking program.
type Service struct {
	log     zerolog.Logger
	pick    Picker
	answers map[actor.ID]string
}

// New constructs a Service choosing answers with pick.
func New(pick Picker, log zerolog.Logger) *Service {
	return &Service{
		log:     log,
		pick:    pick,
		answers: make(map[actor.ID]string),
	}
}

// Init accepts any payload; the service has no configuration message.
func (s *Service) Init(x *actor.Exec, payload any) error { return nil }

// Handle answers StartRound and CheckGuess.
func (s *Service) Handle(x *actor.Exec) error {
	switch p := x.Message().Payload.(type) {
	case StartRound:
		answer := strings.ToLower(s.pick(p.User))
		if !words.Valid(answer) {
			return fmt.Errorf("picker returned %q: %w", answer, words.ErrEmpty)
		}
		if err := x.Reply(RoundStarted{User: p.User}); err != nil {
			return err
		}
		s.answers[p.User] = answer
		s.log.Debug().Str("user", p.User.String()).Msg("round opened")
		return nil

	case CheckGuess:
		answer, ok := s.answers[p.User]
		if !ok {
			return fmt.Errorf("check %s: %w", p.User, ErrNoRound)
		}
		if !words.Valid(p.Word) {
			return fmt.Errorf("check %q: %w", p.Word, ErrInvalidGuess)
		}
		return x.Reply(scored(p.User, p.Word, scoreGuess(answer, p.Word)))
	}
	return fmt.Errorf("%w: %T", ErrUnexpectedPayload, x.Message().Payload)
}

// HandleReply ignores replies; the service never sends requests.
func (s *Service) HandleReply(x *actor.Exec) error { return nil }
