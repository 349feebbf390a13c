// internal/actor/system.go
//
// Deterministic single-worker message scheduler.
// Responsibilities:
//   - Registry of programs keyed by ID.
//   - FIFO queue; one handler runs to completion at a time.
//   - Parked messages (Exec.Wait) and their re-dispatch (Exec.Wake).
//   - Delayed messages keyed by the round they become due.
//   - Bounded mailboxes for recipients that are not programs (players).
//   - Call futures so an external submitter can await its reply.
//
// Notes:
//   - System is not safe for concurrent use. Runner owns one on a single
//     goroutine; tests drive it directly.
//   - A handler error or panic discards all effects of that dispatch and
//     fails the submitter's Call, if any.

package actor

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	ErrUnknownActor   = errors.New("unknown actor")
	ErrDuplicateActor = errors.New("actor already registered")
	ErrNotParked      = errors.New("message is not parked")
	ErrAlreadyReplied = errors.New("message already replied")
	ErrPending        = errors.New("call not resolved")
	ErrStopped        = errors.New("runner stopped")
)

// Program is a message handler registered with a System.
type Program interface {
	// Init runs once when the program is initialized with payload.
	Init(x *Exec, payload any) error
	// Handle processes a request addressed to the program.
	Handle(x *Exec) error
	// HandleReply processes a reply to a message the program sent.
	HandleReply(x *Exec) error
}

// Observer is told about every committed delivery to a non-program
// recipient. It runs on the scheduler goroutine and must not block.
type Observer func(Message)

// System schedules messages between programs.
type System struct {
	log      zerolog.Logger
	programs map[ID]Program
	queue    []Message
	parked   map[MessageID]Message
	delayed  map[uint64][]Message
	mailbox  map[ID][]Message
	calls    map[MessageID]*Call
	round    uint64
	observer Observer
	boxLimit int
}

// DefaultMailboxLimit is how many undrained messages a mailbox keeps.
const DefaultMailboxLimit = 32

// Option configures a System.
type Option func(*System)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *System) { s.log = l }
}

// WithObserver installs o as the delivery observer.
func WithObserver(o Observer) Option {
	return func(s *System) { s.observer = o }
}

// WithMailboxLimit bounds every mailbox to n messages; the oldest are
// discarded first. n <= 0 keeps the default.
func WithMailboxLimit(n int) Option {
	return func(s *System) {
		if n > 0 {
			s.boxLimit = n
		}
	}
}

// NewSystem constructs an empty System at round 0.
func NewSystem(opts ...Option) *System {
	s := &System{
		log:      zerolog.Nop(),
		programs: make(map[ID]Program),
		parked:   make(map[MessageID]Message),
		delayed:  make(map[uint64][]Message),
		mailbox:  make(map[ID][]Message),
		calls:    make(map[MessageID]*Call),
		boxLimit: DefaultMailboxLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds p under id.
func (s *System) Register(id ID, p Program) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("register %q: %w", id, err)
	}
	if _, ok := s.programs[id]; ok {
		return fmt.Errorf("register %q: %w", id, ErrDuplicateActor)
	}
	s.programs[id] = p
	return nil
}

// Init runs dest's initializer with a payload sent by source. Effects are
// committed only when the initializer succeeds.
func (s *System) Init(source, dest ID, payload any) error {
	p, ok := s.programs[dest]
	if !ok {
		return fmt.Errorf("init %q: %w", dest, ErrUnknownActor)
	}
	msg := Message{ID: NewMessageID(), Source: source, Dest: dest, Payload: payload, Round: s.round}
	x := newExec(s, dest, msg)
	if err := run(func() error { return p.Init(x, payload) }); err != nil {
		return fmt.Errorf("init %q: %w", dest, err)
	}
	s.commit(x)
	return nil
}

// Submit enqueues payload from source to dest and returns a Call that
// resolves with the reply, or with the handler's error.
func (s *System) Submit(source, dest ID, payload any) *Call {
	msg := Message{ID: NewMessageID(), Source: source, Dest: dest, Payload: payload, Round: s.round}
	call := newCall(msg.ID)
	if _, ok := s.programs[dest]; !ok {
		call.resolve(nil, fmt.Errorf("submit to %q: %w", dest, ErrUnknownActor))
		return call
	}
	s.calls[msg.ID] = call
	s.queue = append(s.queue, msg)
	return call
}

// RunUntilIdle dispatches queued messages until the queue is empty and
// returns how many were dispatched.
func (s *System) RunUntilIdle() int {
	n := 0
	for len(s.queue) > 0 {
		msg := s.queue[0]
		s.queue = s.queue[1:]
		s.dispatch(msg)
		n++
	}
	return n
}

// Spend advances the scheduler by rounds rounds. Each round routes the
// delayed messages that became due and runs until idle.
func (s *System) Spend(rounds int) {
	for i := 0; i < rounds; i++ {
		s.round++
		if due, ok := s.delayed[s.round]; ok {
			delete(s.delayed, s.round)
			for _, msg := range due {
				s.route(msg)
			}
		}
		s.RunUntilIdle()
	}
}

// Round returns the current round.
func (s *System) Round() uint64 { return s.round }

// Parked reports whether id is currently parked.
func (s *System) Parked(id MessageID) bool {
	_, ok := s.parked[id]
	return ok
}

// ParkedCount returns the number of parked messages.
func (s *System) ParkedCount() int { return len(s.parked) }

// PendingDelayed returns the number of delayed messages not yet due.
func (s *System) PendingDelayed() int {
	n := 0
	for _, msgs := range s.delayed {
		n += len(msgs)
	}
	return n
}

// Mailbox returns a copy of the messages delivered to id.
func (s *System) Mailbox(id ID) []Message {
	return append([]Message(nil), s.mailbox[id]...)
}

// Drain returns and clears the messages delivered to id.
func (s *System) Drain(id ID) []Message {
	msgs := s.mailbox[id]
	delete(s.mailbox, id)
	return msgs
}

func (s *System) dispatch(msg Message) {
	p, ok := s.programs[msg.Dest]
	if !ok {
		s.route(msg)
		return
	}
	x := newExec(s, msg.Dest, msg)
	err := run(func() error {
		if msg.IsReply() {
			return p.HandleReply(x)
		}
		return p.Handle(x)
	})
	if err != nil {
		s.log.Info().Err(err).
			Str("actor", msg.Dest.String()).
			Str("source", msg.Source.String()).
			Str("msg_id", msg.ID.String()).
			Uint64("round", s.round).
			Msg("message failed")
		s.fail(msg.ID, err)
		return
	}
	s.commit(x)
}

// commit applies the buffered effects of a successful dispatch.
func (s *System) commit(x *Exec) {
	for _, a := range x.abandoned {
		delete(s.parked, a.id)
		s.fail(a.id, a.reason)
	}
	for _, id := range x.woken {
		msg := s.parked[id]
		delete(s.parked, id)
		s.queue = append(s.queue, msg)
	}
	if x.waiting {
		s.parked[x.msg.ID] = x.msg
	}
	for _, out := range x.outbox {
		if out.delay > 0 {
			due := s.round + out.delay
			s.delayed[due] = append(s.delayed[due], out.msg)
			continue
		}
		s.route(out.msg)
	}
	// A request that neither replied nor parked is finished.
	if !x.waiting && !x.replied && !x.msg.IsReply() {
		if call, ok := s.calls[x.msg.ID]; ok {
			delete(s.calls, x.msg.ID)
			call.resolve(nil, nil)
		}
	}
}

// route hands msg to a program's queue or to a mailbox.
func (s *System) route(msg Message) {
	msg.Round = s.round
	if _, ok := s.programs[msg.Dest]; ok {
		s.queue = append(s.queue, msg)
		return
	}
	if s.observer != nil {
		s.observer(msg)
	}
	if msg.IsReply() {
		if call, ok := s.calls[msg.ReplyTo]; ok {
			delete(s.calls, msg.ReplyTo)
			call.resolve(msg.Payload, nil)
			return
		}
	}
	box := append(s.mailbox[msg.Dest], msg)
	if over := len(box) - s.boxLimit; over > 0 {
		s.log.Debug().Str("actor", msg.Dest.String()).Int("dropped", over).Msg("mailbox full")
		box = append([]Message(nil), box[over:]...)
	}
	s.mailbox[msg.Dest] = box
}

func (s *System) fail(id MessageID, err error) {
	if call, ok := s.calls[id]; ok {
		delete(s.calls, id)
		call.resolve(nil, err)
	}
}

// run invokes fn, converting a panic into an error.
func run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
