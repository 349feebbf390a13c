// internal/actor/exec.go
//
// Exec is the execution context handed to a program for one dispatch.
// Every effect (sends, delayed sends, replies, wakes, park requests) is
// buffered here and applied by the System only when the handler returns
// nil. A failing handler therefore leaves no trace in the runtime.

package actor

import (
	"fmt"
	"slices"
)

// Exec exposes the current message and the effect primitives to a program.
type Exec struct {
	sys  *System
	self ID
	msg  Message

	outbox    []outgoing
	woken     []MessageID
	abandoned []abandonment
	waiting   bool
	replied   bool
}

type outgoing struct {
	msg   Message
	delay uint64
}

type abandonment struct {
	id     MessageID
	reason error
}

func newExec(sys *System, self ID, msg Message) *Exec {
	return &Exec{sys: sys, self: self, msg: msg}
}

// Self returns the identity of the program being executed.
func (x *Exec) Self() ID { return x.self }

// Source returns the sender of the current message.
func (x *Exec) Source() ID { return x.msg.Source }

// Message returns the message being dispatched.
func (x *Exec) Message() Message { return x.msg }

// Round returns the scheduler round the dispatch runs in.
func (x *Exec) Round() uint64 { return x.sys.round }

// Send queues payload for dest and returns the new message's ID.
func (x *Exec) Send(dest ID, payload any) MessageID {
	return x.SendDelayed(dest, payload, 0)
}

// SendDelayed queues payload for dest to be routed rounds rounds from now.
// A delayed message cannot be withdrawn once committed.
func (x *Exec) SendDelayed(dest ID, payload any, rounds uint64) MessageID {
	msg := Message{
		ID:      NewMessageID(),
		Source:  x.self,
		Dest:    dest,
		Payload: payload,
	}
	x.outbox = append(x.outbox, outgoing{msg: msg, delay: rounds})
	return msg.ID
}

// Reply answers the current message. Only one reply per dispatch is allowed.
func (x *Exec) Reply(payload any) error {
	if x.replied {
		return fmt.Errorf("reply to %s: %w", x.msg.ID, ErrAlreadyReplied)
	}
	x.replied = true
	x.outbox = append(x.outbox, outgoing{msg: Message{
		ID:      NewMessageID(),
		Source:  x.self,
		Dest:    x.msg.Source,
		ReplyTo: x.msg.ID,
		Payload: payload,
	}})
	return nil
}

// Wait parks the current message. It is dispatched again, with the same ID
// and source, once some later handler calls Wake on it.
func (x *Exec) Wait() { x.waiting = true }

// Wake schedules the parked message id for re-dispatch.
func (x *Exec) Wake(id MessageID) error {
	if err := x.checkParked(id); err != nil {
		return fmt.Errorf("wake %s: %w", id, err)
	}
	x.woken = append(x.woken, id)
	return nil
}

// Abandon drops the parked message id and fails its caller with reason.
func (x *Exec) Abandon(id MessageID, reason error) error {
	if err := x.checkParked(id); err != nil {
		return fmt.Errorf("abandon %s: %w", id, err)
	}
	x.abandoned = append(x.abandoned, abandonment{id: id, reason: reason})
	return nil
}

// checkParked verifies id is parked on this program and has not already been
// claimed by Wake or Abandon during this dispatch.
func (x *Exec) checkParked(id MessageID) error {
	msg, ok := x.sys.parked[id]
	if !ok || msg.Dest != x.self {
		return ErrNotParked
	}
	if slices.Contains(x.woken, id) {
		return ErrNotParked
	}
	for _, a := range x.abandoned {
		if a.id == id {
			return ErrNotParked
		}
	}
	return nil
}
