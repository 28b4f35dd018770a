package session

import (
	"calc/models"
	"calc/service/calculator"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Session is one remote keypad. Keys from HTTP and from any number of
// sockets are applied one at a time.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time

	mu      sync.Mutex
	calc    *calculator.Calculator
	sockets map[*client]struct{}
}

func newSession(id string, now time.Time, ttl time.Duration, logger *slog.Logger) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		calc:      calculator.NewCalculator(logger.With("session", id)),
		sockets:   make(map[*client]struct{}),
	}
}

// Press applies key and returns the resulting display.
func (s *Session) Press(key string) (models.Display, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.calc.Press(key)
	return s.displayLocked(), err
}

func (s *Session) Display() models.Display {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayLocked()
}

func (s *Session) Info() models.SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SessionInfo{
		SessionID: s.ID,
		CreatedAt: s.CreatedAt,
		Sockets:   len(s.sockets),
		Display:   s.displayLocked(),
	}
}

func (s *Session) displayLocked() models.Display {
	display := models.Display{SessionID: s.ID, Text: s.calc.Display()}
	if result, ok := s.calc.ShowingResult(); ok && result.IsError() {
		display.Error = result.Err.Kind.String()
	}
	return display
}

func (s *Session) attach(c *client) {
	s.mu.Lock()
	s.sockets[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Session) detach(c *client) {
	s.mu.Lock()
	delete(s.sockets, c)
	s.mu.Unlock()
}

func (s *Session) clients() []*client {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients := make([]*client, 0, len(s.sockets))
	for c := range s.sockets {
		clients = append(clients, c)
	}
	return clients
}

// client serializes writes to one websocket connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
	c.conn.Close()
}
