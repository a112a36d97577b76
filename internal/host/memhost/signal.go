package memhost

import (
	"sync"

	"github.com/dshills/inputkit/internal/host"
)

// signal delivers state to its listeners synchronously, in connection order.
type signal struct {
	mu     sync.Mutex
	conns  []*connection
	closed bool
}

// connection is a signal subscription.
type connection struct {
	sig       *signal
	fn        host.Listener
	connected bool
}

// Connect subscribes fn. Connecting to a signal of a destroyed action
// returns a connection that is already disconnected.
func (s *signal) Connect(fn host.Listener) host.Connection {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &connection{sig: s, fn: fn}
	if s.closed || fn == nil {
		return c
	}
	c.connected = true
	s.conns = append(s.conns, c)
	return c
}

// emit calls every connected listener. Listeners may disconnect themselves
// or others while the signal is firing.
func (s *signal) emit(state any) {
	s.mu.Lock()
	snapshot := make([]*connection, len(s.conns))
	copy(snapshot, s.conns)
	s.mu.Unlock()

	for _, c := range snapshot {
		if c.Connected() {
			c.fn(state)
		}
	}
}

// close disconnects every listener and rejects new ones.
func (s *signal) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conns {
		c.connected = false
	}
	s.conns = nil
	s.closed = true
}

// Len returns the number of connected listeners.
func (s *signal) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Disconnect stops delivery to the listener.
func (c *connection) Disconnect() {
	s := c.sig
	s.mu.Lock()
	defer s.mu.Unlock()
	if !c.connected {
		return
	}
	c.connected = false
	for i, other := range s.conns {
		if other == c {
			s.conns = append(s.conns[:i], s.conns[i+1:]...)
			break
		}
	}
}

// Connected reports whether the listener still receives events.
func (c *connection) Connected() bool {
	c.sig.mu.Lock()
	defer c.sig.mu.Unlock()
	return c.connected
}
