// internal/actor/runner.go
//
// Runner owns a System on a single goroutine.
// Responsibilities:
//   - Serialize external operations (submit, state reads, mailbox drains).
//   - Advance one scheduler round per tick so delayed messages come due.
//
// All access to the System happens inside Run; callers reach it through Do
// and Call, which hand closures to the worker over a channel.

package actor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultRoundInterval is used when NewRunner is given a non-positive
// interval.
const DefaultRoundInterval = time.Second

// Runner is the single logical worker driving a System.
type Runner struct {
	sys      *System
	interval time.Duration
	ops      chan func(*System)
	stopped  chan struct{}
	log      zerolog.Logger
}

// NewRunner wraps sys. Run must be called for operations to make progress.
func NewRunner(sys *System, interval time.Duration, log zerolog.Logger) *Runner {
	if interval <= 0 {
		interval = DefaultRoundInterval
	}
	return &Runner{
		sys:      sys,
		interval: interval,
		ops:      make(chan func(*System)),
		stopped:  make(chan struct{}),
		log:      log,
	}
}

// Run processes operations and round ticks until ctx is canceled.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.stopped)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info().Dur("interval", r.interval).Msg("runner started")
	for {
		select {
		case op := <-r.ops:
			op(r.sys)
			r.sys.RunUntilIdle()
		case <-ticker.C:
			r.sys.Spend(1)
		case <-ctx.Done():
			r.log.Info().Uint64("round", r.sys.Round()).Msg("runner stopping")
			return
		}
	}
}

// Do runs fn on the worker goroutine and waits for it to finish. Messages
// fn submits are dispatched right after it returns.
func (r *Runner) Do(ctx context.Context, fn func(*System)) error {
	done := make(chan struct{})
	op := func(s *System) {
		defer close(done)
		fn(s)
	}
	select {
	case r.ops <- op:
	case <-ctx.Done():
		return ctx.Err()
	case <-r.stopped:
		return ErrStopped
	}
	select {
	case <-done:
		return nil
	case <-r.stopped:
		select {
		case <-done:
			return nil
		default:
			return ErrStopped
		}
	}
}

// Call submits payload from source to dest and waits for its result.
func (r *Runner) Call(ctx context.Context, source, dest ID, payload any) (any, error) {
	var call *Call
	if err := r.Do(ctx, func(s *System) { call = s.Submit(source, dest, payload) }); err != nil {
		return nil, err
	}
	return call.Wait(ctx)
}
