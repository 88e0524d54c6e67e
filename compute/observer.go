package compute

import (
	"log/slog"
	"sync"

	mandel "github.com/marben/mandel_explorer"
)

// Mailbox is an unbounded Observer: Send never blocks and never drops.
// Events come out of C in the order they were sent. C is closed after
// Close once every queued event has been delivered.
type Mailbox struct {
	m      sync.Mutex
	queue  []mandel.ComputeEvent
	closed bool

	wake chan struct{}
	out  chan mandel.ComputeEvent
}

func NewMailbox() *Mailbox {
	mb := &Mailbox{
		wake: make(chan struct{}, 1),
		out:  make(chan mandel.ComputeEvent),
	}
	go mb.forward()
	return mb
}

func (mb *Mailbox) C() <-chan mandel.ComputeEvent { return mb.out }

// Send queues ev. Events sent after Close are ignored.
func (mb *Mailbox) Send(ev mandel.ComputeEvent) {
	mb.m.Lock()
	if mb.closed {
		mb.m.Unlock()
		return
	}
	mb.queue = append(mb.queue, ev)
	mb.m.Unlock()
	mb.signal()
}

func (mb *Mailbox) Close() {
	mb.m.Lock()
	mb.closed = true
	mb.m.Unlock()
	mb.signal()
}

func (mb *Mailbox) signal() {
	select {
	case mb.wake <- struct{}{}:
	default:
	}
}

func (mb *Mailbox) forward() {
	defer close(mb.out)
	for {
		mb.m.Lock()
		batch, closed := mb.queue, mb.closed
		mb.queue = nil
		mb.m.Unlock()

		for _, ev := range batch {
			mb.out <- ev
		}
		if len(batch) == 0 {
			if closed {
				return
			}
			<-mb.wake
		}
	}
}

// ChanObserver sends to a channel without blocking, dropping events the
// channel has no room for. Useful when only the latest progress matters.
type ChanObserver chan<- mandel.ComputeEvent

func (c ChanObserver) Send(ev mandel.ComputeEvent) {
	select {
	case c <- ev:
	default:
		slog.Debug("compute: observer full, event dropped", "event", ev)
	}
}
