package coordinator

import (
	"github.com/robalobadob/wordle/apps/game-session/internal/actor"
	"github.com/robalobadob/wordle/apps/game-session/internal/session"
)

// arm schedules the deadline check for gen. Scheduled checks are never
// withdrawn; a check for an older generation is a no-op when it fires.
func (c *Coordinator) arm(x *actor.Exec, user actor.ID, gen session.Generation) {
	x.SendDelayed(x.Self(), CheckGameStatus{User: user, Generation: gen}, c.timeoutRounds)
}

// checkGameStatus forces a loss when the round armed with p.Generation is
// still open.
func (c *Coordinator) checkGameStatus(x *actor.Exec, p CheckGameStatus) error {
	if x.Source() != x.Self() {
		c.log.Debug().Str("source", x.Source().String()).Msg("ignoring status check from foreign sender")
		return nil
	}
	rec, ok := c.sessions.Get(p.User)
	if !ok || rec.Generation != p.Generation || session.IsConcluded(rec.Status) {
		return nil
	}

	over := GameOver{Outcome: session.Lost, Tries: rec.Tries, TimedOut: true}
	lost := session.Concluded{Outcome: session.Lost}
	switch {
	case rec.Resume != nil:
		// Parked request already woken; replace its answer.
		rec.Settle(lost, over)
	case session.InFlight(rec.Status):
		if err := x.Wake(rec.PendingInbound); err != nil {
			return err
		}
		rec.Settle(lost, over)
	default:
		rec.Status = lost
	}
	x.Send(p.User, over)
	if err := c.put(p.User, rec); err != nil {
		return err
	}
	c.log.Info().
		Str("user", p.User.String()).
		Str("generation", string(p.Generation)).
		Int("tries", rec.Tries).
		Uint64("round", x.Round()).
		Msg("round timed out")
	return nil
}
