package actor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	player ID = "player-1"
	echoID ID = "echo"
)

// echo replies with whatever it receives; "fail" makes it send and then
// error out, "panic" panics.
type echo struct{ inits int }

func (e *echo) Init(x *Exec, payload any) error {
	e.inits++
	return nil
}

func (e *echo) Handle(x *Exec) error {
	switch x.Message().Payload {
	case "fail":
		x.Send(player, "leaked")
		return errors.New("boom")
	case "panic":
		panic("kaboom")
	case "silent":
		return nil
	}
	return x.Reply(x.Message().Payload)
}

func (e *echo) HandleReply(x *Exec) error { return nil }

// parker parks every "park" request and answers it when a "release"
// request arrives.
type parker struct {
	waiting MessageID
	reply   any
}

func (p *parker) Init(x *Exec, payload any) error { return nil }

func (p *parker) Handle(x *Exec) error {
	msg := x.Message()
	switch msg.Payload {
	case "park":
		if p.reply != nil && msg.ID == p.waiting {
			err := x.Reply(p.reply)
			p.reply, p.waiting = nil, ""
			return err
		}
		p.waiting = msg.ID
		x.Wait()
		return nil
	case "release":
		if err := x.Wake(p.waiting); err != nil {
			return err
		}
		p.reply = "released"
		return nil
	case "drop":
		return x.Abandon(p.waiting, errors.New("dropped"))
	}
	return nil
}

func (p *parker) HandleReply(x *Exec) error { return nil }

// ticker schedules a delayed self-message and notifies the player on arrival.
type ticker struct{ delay uint64 }

func (t *ticker) Init(x *Exec, payload any) error { return nil }

func (t *ticker) Handle(x *Exec) error {
	if x.Source() == x.Self() {
		x.Send(player, "tick")
		return nil
	}
	x.SendDelayed(x.Self(), "check", t.delay)
	return nil
}

func (t *ticker) HandleReply(x *Exec) error { return nil }

func TestIDValidate(t *testing.T) {
	assert.NoError(t, ID("wordle").Validate())
	assert.ErrorIs(t, ID("").Validate(), ErrInvalidID)
	assert.ErrorIs(t, ID("two words").Validate(), ErrInvalidID)
	assert.ErrorIs(t, ID("tab\tbed").Validate(), ErrInvalidID)
	long := make([]byte, maxIDLen+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.ErrorIs(t, ID(long).Validate(), ErrInvalidID)
}

func TestRegister(t *testing.T) {
	sys := NewSystem()
	require.NoError(t, sys.Register(echoID, &echo{}))
	assert.ErrorIs(t, sys.Register(echoID, &echo{}), ErrDuplicateActor)
	assert.ErrorIs(t, sys.Register("", &echo{}), ErrInvalidID)
}

func TestInit(t *testing.T) {
	sys := NewSystem()
	e := &echo{}
	require.NoError(t, sys.Register(echoID, e))
	require.NoError(t, sys.Init(player, echoID, nil))
	assert.Equal(t, 1, e.inits)
	assert.ErrorIs(t, sys.Init(player, "missing", nil), ErrUnknownActor)
}

func TestSubmitReply(t *testing.T) {
	sys := NewSystem()
	require.NoError(t, sys.Register(echoID, &echo{}))

	call := sys.Submit(player, echoID, "hello")
	_, err := call.Result()
	assert.ErrorIs(t, err, ErrPending)

	assert.Equal(t, 1, sys.RunUntilIdle())
	got, err := call.Result()
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	// Replies claimed by a call do not land in the mailbox.
	assert.Empty(t, sys.Mailbox(player))
}

func TestSubmitUnknownActor(t *testing.T) {
	sys := NewSystem()
	call := sys.Submit(player, "nobody", "x")
	_, err := call.Result()
	assert.ErrorIs(t, err, ErrUnknownActor)
}

func TestFailedHandlerDiscardsEffects(t *testing.T) {
	sys := NewSystem()
	require.NoError(t, sys.Register(echoID, &echo{}))

	call := sys.Submit(player, echoID, "fail")
	sys.RunUntilIdle()

	_, err := call.Result()
	assert.EqualError(t, err, "boom")
	assert.Empty(t, sys.Mailbox(player), "sends of a failed handler must not be routed")
}

func TestPanicBecomesError(t *testing.T) {
	sys := NewSystem()
	require.NoError(t, sys.Register(echoID, &echo{}))

	call := sys.Submit(player, echoID, "panic")
	sys.RunUntilIdle()

	_, err := call.Result()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestSilentHandlerResolvesEmpty(t *testing.T) {
	sys := NewSystem()
	require.NoError(t, sys.Register(echoID, &echo{}))

	call := sys.Submit(player, echoID, "silent")
	sys.RunUntilIdle()

	got, err := call.Result()
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestParkAndWake(t *testing.T) {
	sys := NewSystem()
	p := &parker{}
	require.NoError(t, sys.Register("parker", p))

	parked := sys.Submit(player, "parker", "park")
	sys.RunUntilIdle()
	assert.False(t, parked.Resolved())
	assert.True(t, sys.Parked(parked.ID()))
	assert.Equal(t, 1, sys.ParkedCount())

	release := sys.Submit("other", "parker", "release")
	sys.RunUntilIdle()

	got, err := parked.Result()
	require.NoError(t, err)
	assert.Equal(t, "released", got)
	assert.False(t, sys.Parked(parked.ID()))

	_, err = release.Result()
	assert.NoError(t, err)
}

func TestWakeUnknownFails(t *testing.T) {
	sys := NewSystem()
	require.NoError(t, sys.Register("parker", &parker{}))

	call := sys.Submit(player, "parker", "release")
	sys.RunUntilIdle()

	_, err := call.Result()
	assert.ErrorIs(t, err, ErrNotParked)
}

func TestAbandon(t *testing.T) {
	sys := NewSystem()
	require.NoError(t, sys.Register("parker", &parker{}))

	parked := sys.Submit(player, "parker", "park")
	sys.RunUntilIdle()
	sys.Submit(player, "parker", "drop")
	sys.RunUntilIdle()

	_, err := parked.Result()
	assert.EqualError(t, err, "dropped")
	assert.Zero(t, sys.ParkedCount())
}

func TestDelayedDelivery(t *testing.T) {
	sys := NewSystem()
	require.NoError(t, sys.Register("ticker", &ticker{delay: 3}))

	sys.Submit(player, "ticker", "arm")
	sys.RunUntilIdle()
	assert.Equal(t, 1, sys.PendingDelayed())

	sys.Spend(2)
	assert.Empty(t, sys.Mailbox(player))

	sys.Spend(1)
	msgs := sys.Drain(player)
	require.Len(t, msgs, 1)
	assert.Equal(t, "tick", msgs[0].Payload)
	assert.Equal(t, uint64(3), msgs[0].Round)
	assert.Zero(t, sys.PendingDelayed())
	assert.Empty(t, sys.Mailbox(player))
}

func TestObserverSeesDeliveries(t *testing.T) {
	var seen []Message
	sys := NewSystem(WithObserver(func(m Message) { seen = append(seen, m) }))
	require.NoError(t, sys.Register(echoID, &echo{}))

	sys.Submit(player, echoID, "hi")
	sys.RunUntilIdle()

	require.Len(t, seen, 1)
	assert.Equal(t, player, seen[0].Dest)
	assert.True(t, seen[0].IsReply())
}

func TestMailboxKeepsNewest(t *testing.T) {
	seen := 0
	sys := NewSystem(WithMailboxLimit(2), WithObserver(func(Message) { seen++ }))
	require.NoError(t, sys.Register("ticker", &ticker{delay: 1}))

	for i := 0; i < 3; i++ {
		sys.Submit(player, "ticker", "arm")
		sys.RunUntilIdle()
		sys.Spend(1)
	}
	assert.Equal(t, 3, seen, "observer sees every delivery")

	msgs := sys.Drain(player)
	require.Len(t, msgs, 2)
	assert.Equal(t, []uint64{2, 3}, []uint64{msgs[0].Round, msgs[1].Round})

	for i := 0; i < DefaultMailboxLimit+3; i++ {
		sys.Submit(player, "ticker", "arm")
	}
	sys.RunUntilIdle()
	sys.Spend(1)
	assert.Len(t, sys.Mailbox(player), 2)

	assert.Equal(t, DefaultMailboxLimit, NewSystem().boxLimit)
	assert.Equal(t, DefaultMailboxLimit, NewSystem(WithMailboxLimit(0)).boxLimit)
}

func TestRunnerCall(t *testing.T) {
	sys := NewSystem()
	require.NoError(t, sys.Register(echoID, &echo{}))
	r := NewRunner(sys, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	got, err := r.Call(ctx, player, echoID, "ping")
	require.NoError(t, err)
	assert.Equal(t, "ping", got)
}

func TestRunnerAdvancesRounds(t *testing.T) {
	sys := NewSystem()
	r := NewRunner(sys, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	assert.Eventually(t, func() bool {
		var round uint64
		_ = r.Do(ctx, func(s *System) { round = s.Round() })
		return round >= 3
	}, time.Second, 10*time.Millisecond)
}

func TestRunnerStopped(t *testing.T) {
	r := NewRunner(NewSystem(), time.Second, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	err := r.Do(context.Background(), func(*System) {})
	assert.ErrorIs(t, err, ErrStopped)
}
