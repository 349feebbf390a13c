package actor

import "context"

// Call is the result slot of a submitted message. It resolves exactly once:
// with the reply payload, with nil when the handler finished without
// replying, or with the handler's error.
type Call struct {
	id      MessageID
	done    chan struct{}
	payload any
	err     error
}

func newCall(id MessageID) *Call {
	return &Call{id: id, done: make(chan struct{})}
}

// ID returns the submitted message's ID.
func (c *Call) ID() MessageID { return c.id }

// Done is closed once the call is resolved.
func (c *Call) Done() <-chan struct{} { return c.done }

// Resolved reports whether the call has a result.
func (c *Call) Resolved() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Result returns the outcome without blocking; ErrPending if unresolved.
func (c *Call) Result() (any, error) {
	if !c.Resolved() {
		return nil, ErrPending
	}
	return c.payload, c.err
}

// Wait blocks until the call resolves or ctx is done.
func (c *Call) Wait(ctx context.Context) (any, error) {
	select {
	case <-c.done:
		return c.payload, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Call) resolve(payload any, err error) {
	if c.Resolved() {
		return
	}
	c.payload, c.err = payload, err
	close(c.done)
}
