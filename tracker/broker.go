package tracker

import (
	"errors"
	"sync/atomic"

	"github.com/vsariola/gridbeat"
)

type (
	// Broker holds the communication lines between the editing side (the
	// Model and the UI) and the audio side (the Player). There are only two
	// relays crossing the realtime boundary: decoded states going to the
	// player and the playhead step coming back. Neither side ever blocks on
	// the other: both relays are last-write-wins mailboxes, so a reader that
	// falls behind only ever sees the newest value.
	//
	// MIDINotes carries note-on keys from the MIDI input goroutine to the
	// model. It is a bounded channel written with TrySend; when the UI is
	// busy, notes are dropped rather than stalling the MIDI driver.
	Broker struct {
		ToPlayer  *Relay[gridbeat.State]
		ToModel   *StepRelay
		MIDINotes chan MIDINote
	}

	// Relay is a single slot, single writer, single reader mailbox. Send
	// overwrites any value the reader has not picked up yet, and TryReceive
	// takes whatever is there without waiting. Both are wait-free, so the
	// audio callback can use them.
	Relay[T any] struct {
		slot   atomic.Pointer[T]
		closed atomic.Bool
	}

	// StepRelay is a Relay for step indices. It keeps the value in the slot
	// itself, so Send does not allocate and the audio callback can call it
	// on every step.
	StepRelay struct {
		slot   atomic.Int64 // step+1; 0 means empty
		closed atomic.Bool
	}
)

// ErrDisconnected is returned when sending to a relay whose receiver has
// gone away.
var ErrDisconnected = errors.New("relay receiver disconnected")

func NewBroker() *Broker {
	return &Broker{
		ToPlayer:  NewRelay[gridbeat.State](),
		ToModel:   &StepRelay{},
		MIDINotes: make(chan MIDINote, 64),
	}
}

func NewRelay[T any]() *Relay[T] { return &Relay[T]{} }

// Send publishes v, replacing any value not yet received. It returns
// ErrDisconnected if the receiver has closed the relay.
func (r *Relay[T]) Send(v T) error {
	if r.closed.Load() {
		return ErrDisconnected
	}
	r.slot.Store(&v)
	return nil
}

// TryReceive returns the newest value sent since the previous call, or false
// if nothing new has arrived.
func (r *Relay[T]) TryReceive() (v T, ok bool) {
	p := r.slot.Swap(nil)
	if p == nil {
		return v, false
	}
	return *p, true
}

// Close is called by the receiver when it stops listening. Later sends fail.
func (r *Relay[T]) Close() {
	r.closed.Store(true)
	r.slot.Store(nil)
}

func (r *Relay[T]) Closed() bool { return r.closed.Load() }

// Send publishes step, replacing any step not yet received. Negative steps
// are not representable and are dropped.
func (r *StepRelay) Send(step int) error {
	if r.closed.Load() {
		return ErrDisconnected
	}
	if step >= 0 {
		r.slot.Store(int64(step) + 1)
	}
	return nil
}

func (r *StepRelay) TryReceive() (step int, ok bool) {
	v := r.slot.Swap(0)
	if v == 0 {
		return 0, false
	}
	return int(v - 1), true
}

func (r *StepRelay) Close() {
	r.closed.Store(true)
	r.slot.Store(0)
}

func (r *StepRelay) Closed() bool { return r.closed.Load() }

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}
