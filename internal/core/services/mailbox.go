package services

import (
	"sync"

	"github.com/custodia-labs/seek/internal/core/domain"
)

// mailbox is an unbounded event queue. push never blocks, so events can be
// published while holding a lock; a pump goroutine forwards them in order
// to the output channel.
type mailbox struct {
	mu     sync.Mutex
	queue  []domain.Event
	closed bool

	notify chan struct{}
	done   chan struct{}
	out    chan domain.Event
}

func newMailbox() *mailbox {
	m := &mailbox{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
		out:    make(chan domain.Event),
	}
	go m.pump()
	return m
}

func (m *mailbox) push(e domain.Event) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.queue = append(m.queue, e)
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

func (m *mailbox) events() <-chan domain.Event {
	return m.out
}

// close stops delivery. Undelivered events are dropped and the output
// channel is closed.
func (m *mailbox) close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	close(m.done)
}

func (m *mailbox) pump() {
	defer close(m.out)
	for {
		select {
		case <-m.done:
			return
		case <-m.notify:
		}

		for {
			m.mu.Lock()
			if len(m.queue) == 0 {
				m.mu.Unlock()
				break
			}
			e := m.queue[0]
			m.queue[0] = nil
			m.queue = m.queue[1:]
			m.mu.Unlock()

			select {
			case m.out <- e:
			case <-m.done:
				return
			}
		}
	}
}
