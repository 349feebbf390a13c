// internal/coordinator/machine.go
//
// Session state machine.
//
//   Idle / Concluded / AwaitingRoundStart --StartGame--> AwaitingRoundStart
//   AwaitingRoundStart --RoundStarted--> RoundReady (StartGame resumed)
//   RoundReady --CheckWord--> AwaitingGuessCheck
//   AwaitingGuessCheck --GuessScored--> RoundReady | Concluded(Won|Lost)
//
// A request that arrives while another is in flight, or while an answer
// is waiting to be handed back, is rejected without any state change.

package coordinator

import (
	"fmt"

	"github.com/robalobadob/wordle/apps/game-session/internal/actor"
	"github.com/robalobadob/wordle/apps/game-session/internal/session"
	"github.com/robalobadob/wordle/apps/game-session/internal/wordle"
	"github.com/robalobadob/wordle/apps/game-session/internal/words"
)

func (c *Coordinator) startGame(x *actor.Exec) error {
	user := x.Source()
	id := x.Message().ID
	rec := c.sessions.Lookup(user)

	if rec.Resuming(id) {
		// The acknowledgement already arrived. The check armed below when
		// the request was accepted bounds the open round too.
		return c.resume(x, user, rec)
	}
	if rec.Resume != nil {
		return ErrRequestInFlight
	}

	switch rec.Status.(type) {
	case session.RoundReady, session.AwaitingGuessCheck:
		return ErrAlreadyInGame
	case session.AwaitingRoundStart:
		if err := x.Abandon(rec.PendingInbound, ErrSuperseded); err != nil {
			return err
		}
	}

	out := x.Send(c.wordle, wordle.StartRound{User: user})
	rec.BeginRound(session.Generation(id), id, out)
	// One check per round: it bounds the wait for the acknowledgement and
	// the open round alike.
	c.arm(x, user, rec.Generation)
	x.Wait()
	if err := c.put(user, rec); err != nil {
		return err
	}
	c.log.Info().
		Str("user", user.String()).
		Str("generation", string(rec.Generation)).
		Uint64("round", x.Round()).
		Msg("round requested")
	return nil
}

func (c *Coordinator) checkWord(x *actor.Exec, word string) error {
	user := x.Source()
	id := x.Message().ID
	rec, ok := c.sessions.Get(user)
	if !ok {
		return ErrNotInGame
	}

	if rec.Resuming(id) {
		return c.resume(x, user, rec)
	}
	if rec.Resume != nil {
		return ErrRequestInFlight
	}

	switch rec.Status.(type) {
	case session.RoundReady:
	case session.AwaitingRoundStart, session.AwaitingGuessCheck:
		return ErrRequestInFlight
	default:
		return ErrNotInGame
	}
	if !words.Valid(word) {
		return fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}

	out := x.Send(c.wordle, wordle.CheckGuess{User: user, Word: word})
	rec.AwaitGuess(id, out)
	x.Wait()
	return c.put(user, rec)
}

// handleServiceReply matches a reply against the player's outstanding
// request. Unmatched replies are dropped without touching anything.
func (c *Coordinator) handleServiceReply(x *actor.Exec) error {
	msg := x.Message()
	ev, ok := msg.Payload.(wordle.Event)
	if !ok || msg.Source != c.wordle {
		c.log.Debug().
			Str("source", msg.Source.String()).
			Str("payload", fmt.Sprintf("%T", msg.Payload)).
			Msg("dropping unrecognized reply")
		return nil
	}

	user := ev.Player()
	rec, ok := c.sessions.Get(user)
	if !ok || !rec.Correlates(msg.ReplyTo) {
		c.dropStale(user, msg)
		return nil
	}

	switch ev := ev.(type) {
	case wordle.RoundStarted:
		if _, ok := rec.Status.(session.AwaitingRoundStart); !ok {
			c.dropStale(user, msg)
			return nil
		}
		rec.Settle(session.RoundReady{}, StartSuccess{})

	case wordle.GuessScored:
		if _, ok := rec.Status.(session.AwaitingGuessCheck); !ok {
			c.dropStale(user, msg)
			return nil
		}
		rec.Tries++
		switch {
		case ev.Solved():
			rec.Settle(session.Concluded{Outcome: session.Won}, GameOver{Outcome: session.Won, Tries: rec.Tries})
		case rec.Tries >= session.TriesLimit:
			rec.Settle(session.Concluded{Outcome: session.Lost}, GameOver{Outcome: session.Lost, Tries: rec.Tries})
		default:
			rec.Settle(session.RoundReady{}, WordChecked{
				Word:             ev.Word,
				CorrectPositions: ev.CorrectPositions,
				ContainedInWord:  ev.ContainedInWord,
				Tries:            rec.Tries,
			})
		}

	default:
		c.dropStale(user, msg)
		return nil
	}

	if err := x.Wake(rec.PendingInbound); err != nil {
		return err
	}
	if err := c.put(user, rec); err != nil {
		return err
	}
	c.log.Debug().
		Str("user", user.String()).
		Str("status", rec.Status.String()).
		Int("tries", rec.Tries).
		Msg("reply matched")
	return nil
}

func (c *Coordinator) dropStale(user actor.ID, msg actor.Message) {
	c.log.Debug().
		Str("user", user.String()).
		Str("reply_to", msg.ReplyTo.String()).
		Msg("dropping stale reply")
}
