// internal/coordinator/coordinator.go
//
// Game session coordinator program.
// Responsibilities:
//   - Bootstrap with the guess service identity (Init).
//   - Drive each player's session through its states (machine.go).
//   - Enforce a round deadline with delayed self-messages (watchdog.go).
//   - Export a read-only snapshot of every session (State).
//
// Notes:
//   - Handlers work on a copy of the session record and store it as their
//     last step. Any error before that leaves the store as it was, and the
//     runtime discards the handler's sends.
//   - Requests to the guess service are asynchronous: the player's request
//     is parked with Exec.Wait and re-dispatched with Exec.Wake when the
//     correlated reply arrives.

package coordinator

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/game-session/internal/actor"
	"github.com/robalobadob/wordle/apps/game-session/internal/session"
)

// DefaultTimeoutRounds is how many scheduler rounds a round may stay open.
const DefaultTimeoutRounds = 200

// Coordinator is the session coordinator program.
type Coordinator struct {
	log           zerolog.Logger
	timeoutRounds uint64

	ready    bool
	wordle   actor.ID
	sessions *session.Store
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the coordinator's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// WithTimeoutRounds sets the round deadline in scheduler rounds.
func WithTimeoutRounds(n uint64) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.timeoutRounds = n
		}
	}
}

// New constructs an uninitialized Coordinator.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		log:           zerolog.Nop(),
		timeoutRounds: DefaultTimeoutRounds,
		sessions:      session.NewStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init records the guess service identity. It fails when called twice or
// when the identity is malformed.
func (c *Coordinator) Init(x *actor.Exec, payload any) error {
	if c.ready {
		return ErrAlreadyInitialized
	}
	p, ok := payload.(Init)
	if !ok {
		return fmt.Errorf("init: %w: %T", ErrUnexpectedPayload, payload)
	}
	if err := p.WordleID.Validate(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidServiceID, p.WordleID, err)
	}
	if p.WordleID == x.Self() {
		return fmt.Errorf("%w: %q is the coordinator itself", ErrInvalidServiceID, p.WordleID)
	}
	c.wordle = p.WordleID
	c.ready = true
	c.log.Info().Str("wordle", c.wordle.String()).Uint64("timeout_rounds", c.timeoutRounds).Msg("coordinator initialized")
	return nil
}

// Handle dispatches player requests and watchdog checks.
func (c *Coordinator) Handle(x *actor.Exec) error {
	if !c.ready {
		return ErrNotInitialized
	}
	switch p := x.Message().Payload.(type) {
	case StartGame:
		return c.startGame(x)
	case CheckWord:
		return c.checkWord(x, p.Word)
	case CheckGameStatus:
		return c.checkGameStatus(x, p)
	}
	return fmt.Errorf("%w: %T", ErrUnexpectedPayload, x.Message().Payload)
}

// HandleReply processes replies from the guess service.
func (c *Coordinator) HandleReply(x *actor.Exec) error {
	if !c.ready {
		return ErrNotInitialized
	}
	return c.handleServiceReply(x)
}

// Snapshot is the exported coordinator state.
type Snapshot struct {
	WordleID actor.ID        `json:"wordleId"`
	Sessions []session.Entry `json:"sessions"`
}

// State returns a snapshot of every session. It does not mutate anything.
func (c *Coordinator) State() Snapshot {
	return Snapshot{WordleID: c.wordle, Sessions: c.sessions.Snapshot()}
}

// Session returns the record of user, if any.
func (c *Coordinator) Session(user actor.ID) (session.Record, bool) {
	return c.sessions.Get(user)
}

func (c *Coordinator) put(user actor.ID, rec session.Record) error {
	return c.sessions.Put(user, rec)
}

// resume answers the re-dispatched parked request with the stored answer.
func (c *Coordinator) resume(x *actor.Exec, user actor.ID, rec session.Record) error {
	answer := rec.TakeResume()
	if err := x.Reply(answer); err != nil {
		return err
	}
	c.log.Debug().
		Str("user", user.String()).
		Str("msg_id", x.Message().ID.String()).
		Str("status", rec.Status.String()).
		Msg("request resumed")
	return c.put(user, rec)
}
