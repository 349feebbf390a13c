package history

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/game-session/internal/actor"
	"github.com/robalobadob/wordle/apps/game-session/internal/coordinator"
)

// Recorder persists GameOver deliveries off the scheduler goroutine.
type Recorder struct {
	store *Store
	log   zerolog.Logger
	now   func() time.Time
	queue chan Round
}

// NewRecorder buffers up to size rounds between Observe and Run.
func NewRecorder(store *Store, size int, log zerolog.Logger) *Recorder {
	if size <= 0 {
		size = 256
	}
	return &Recorder{
		store: store,
		log:   log,
		now:   time.Now,
		queue: make(chan Round, size),
	}
}

// Observe is an actor.Observer. It never blocks; rounds are dropped with a
// warning when the buffer is full.
//
// A timeout is delivered twice when a request was parked: once as the
// watchdog notification and once as that request's answer. Only the
// notification is recorded.
func (r *Recorder) Observe(msg actor.Message) {
	over, ok := msg.Payload.(coordinator.GameOver)
	if !ok || (over.TimedOut && msg.IsReply()) {
		return
	}
	round := Round{
		UserID:     msg.Dest.String(),
		Outcome:    over.Outcome.String(),
		Tries:      over.Tries,
		FinishedAt: r.now(),
	}
	select {
	case r.queue <- round:
	default:
		r.log.Warn().Str("user", round.UserID).Msg("history buffer full, dropping round")
	}
}

// Run writes observed rounds until ctx is canceled, then flushes what is
// already buffered.
func (r *Recorder) Run(ctx context.Context) {
	for {
		select {
		case round := <-r.queue:
			r.write(ctx, round)
		case <-ctx.Done():
			for {
				select {
				case round := <-r.queue:
					r.write(context.Background(), round)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) write(ctx context.Context, round Round) {
	if err := r.store.Record(ctx, round); err != nil {
		r.log.Warn().Err(err).Str("user", round.UserID).Msg("record round")
		return
	}
	r.log.Debug().Str("user", round.UserID).Str("outcome", round.Outcome).Msg("round recorded")
}
