package session

import (
	"errors"
	"sync"
)

// Outbox errors.
var (
	ErrOutboxClosed = errors.New("outbox closed")
	ErrOutboxFull   = errors.New("outbox full")
)

// DefaultOutboxSize is the buffer used when Join creates an Outbox.
const DefaultOutboxSize = 64

// Outbox carries text from the world goroutine to the goroutine writing the
// player's connection. Push never blocks; a slow reader loses messages
// rather than stalling the world.
type Outbox struct {
	mu     sync.Mutex
	ch     chan string
	closed bool
}

// NewOutbox returns an Outbox buffering up to size messages.
func NewOutbox(size int) *Outbox {
	if size <= 0 {
		size = DefaultOutboxSize
	}
	return &Outbox{ch: make(chan string, size)}
}

// Push queues msg.
//
// Postcondition: returns ErrOutboxClosed after Close, or ErrOutboxFull when
// the buffer has no room.
func (o *Outbox) Push(msg string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return ErrOutboxClosed
	}
	select {
	case o.ch <- msg:
		return nil
	default:
		return ErrOutboxFull
	}
}

// Events is drained by the connection writer. It is closed by Close.
func (o *Outbox) Events() <-chan string {
	return o.ch
}

// Close stops further pushes. Calling it again is a no-op.
func (o *Outbox) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.closed {
		o.closed = true
		close(o.ch)
	}
	return nil
}
