// Package realtime tracks live WebSocket sessions per user and fans
// notifications out to them.
package realtime

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrSessionClosed is returned when sending to a session that has been closed.
	ErrSessionClosed = errors.New("session closed")
	// ErrSendBufferFull is returned when a session's outbound queue is full.
	ErrSendBufferFull = errors.New("session send buffer full")
	// ErrForeignSession is returned when registering a session under a user that does not own it.
	ErrForeignSession = errors.New("session belongs to another user")
)

// Session is one live transport connection of a user.
// Outbound messages are queued on a bounded channel and written to the
// connection by a single writer goroutine.
type Session struct {
	id     uuid.UUID
	userID int64
	send   chan []byte
	done   chan struct{}

	closeOnce   sync.Once
	closeCode   int
	closeReason string
}

// NewSession creates a session owned by userID with an outbound queue of buffer messages.
func NewSession(userID int64, buffer int) *Session {
	if buffer < 1 {
		buffer = 1
	}
	return &Session{
		id:     uuid.New(),
		userID: userID,
		send:   make(chan []byte, buffer),
		done:   make(chan struct{}),
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) UserID() int64 { return s.userID }

// Alive reports whether the session still accepts messages.
func (s *Session) Alive() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// Send queues msg without blocking.
func (s *Session) Send(msg []byte) error {
	if !s.Alive() {
		return ErrSessionClosed
	}
	select {
	case s.send <- msg:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close marks the session closed. The writer stops and closes the connection.
func (s *Session) Close() {
	s.CloseWith(0, "")
}

// CloseWith marks the session closed and asks the writer to send a close
// frame with code and reason first. Only the first close takes effect.
func (s *Session) CloseWith(code int, reason string) {
	s.closeOnce.Do(func() {
		s.closeCode = code
		s.closeReason = reason
		close(s.done)
	})
}

// Done is closed when the session is closed.
func (s *Session) Done() <-chan struct{} { return s.done }

// Outbound is the queue drained by the session writer.
func (s *Session) Outbound() <-chan []byte { return s.send }

// closeFrame returns the close frame requested by CloseWith, if any.
// Must only be called after Done is closed.
func (s *Session) closeFrame() (int, string, bool) {
	return s.closeCode, s.closeReason, s.closeCode != 0
}
