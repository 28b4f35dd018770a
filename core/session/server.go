package session

import (
	"calc/metrics"
	"calc/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrSessionNotFound = errors.New("session not found")
)

type Claims struct {
	SessionID string `json:"sub"`
	jwt.RegisteredClaims
}

type Options struct {
	Secret         string
	TTL            time.Duration
	AllowedOrigins []string
	Logger         *slog.Logger
}

// Server keeps remote keypad sessions in memory and serves them over
// HTTP and websockets.
type Server struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	secret   []byte
	ttl      time.Duration
	upgrader websocket.Upgrader
	logger   *slog.Logger
	now      func() time.Time
}

func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}

	return &Server{
		sessions: make(map[string]*Session),
		secret:   []byte(opts.Secret),
		ttl:      ttl,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(opts.AllowedOrigins),
		},
		logger: logger.With("component", "session"),
		now:    time.Now,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// Register mounts the session routes on mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/session", s.handleSessionRoutes)
	mux.HandleFunc("/api/session/key", s.handleSessionRoutes)
	mux.HandleFunc("/ws", s.handleWebSocket)
}

// Create opens a new session and issues its token.
func (s *Server) Create() (*Session, string, error) {
	now := s.now()
	sess := newSession(uuid.New().String(), now, s.ttl, s.logger)

	token, err := s.createToken(sess)
	if err != nil {
		return nil, "", fmt.Errorf("signing session token: %w", err)
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(count))
	s.logger.Info("session created", "session", sess.ID)
	return sess, token, nil
}

func (s *Server) Get(id string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || !s.now().Before(sess.ExpiresAt) {
		return nil, false
	}
	return sess, true
}

// Delete removes a session and closes its sockets.
func (s *Server) Delete(id string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	count := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return false
	}

	metrics.ActiveSessions.Set(float64(count))
	for _, c := range sess.clients() {
		c.send(map[string]interface{}{"event": "closed", "data": sess.Display()})
		c.close()
	}
	s.logger.Info("session deleted", "session", id)
	return true
}

// Sweep deletes sessions whose token lifetime has passed.
func (s *Server) Sweep() int {
	now := s.now()

	s.mu.RLock()
	var expired []string
	for id, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			expired = append(expired, id)
		}
	}
	s.mu.RUnlock()

	for _, id := range expired {
		s.Delete(id)
	}
	return len(expired)
}

// Run sweeps expired sessions until ctx is done.
func (s *Server) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("expired sessions removed", "count", n)
			}
		}
	}
}

func (s *Server) createToken(sess *Session) (string, error) {
	claims := Claims{
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Server) verifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.SessionID != "" {
		return claims.SessionID, nil
	}

	return "", ErrInvalidToken
}

// sessionFromToken resolves a token to a live session.
func (s *Server) sessionFromToken(token string) (*Session, int, error) {
	if token == "" {
		return nil, http.StatusUnauthorized, ErrInvalidToken
	}
	id, err := s.verifyToken(token)
	if err != nil {
		return nil, http.StatusUnauthorized, err
	}
	sess, ok := s.Get(id)
	if !ok {
		return nil, http.StatusNotFound, ErrSessionNotFound
	}
	return sess, http.StatusOK, nil
}

func (s *Server) authMiddleware(next func(http.ResponseWriter, *http.Request, *Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		sess, status, err := s.sessionFromToken(strings.TrimSpace(token))
		if err != nil {
			writeError(w, status, err.Error())
			return
		}
		next(w, r, sess)
	}
}

func (s *Server) handleSessionRoutes(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/session":
		switch r.Method {
		case http.MethodPost:
			s.handleCreate(w, r)
		case http.MethodGet:
			s.authMiddleware(s.handleGet)(w, r)
		case http.MethodDelete:
			s.authMiddleware(s.handleDelete)(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case "/api/session/key":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.authMiddleware(s.handleKey)(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, _ *http.Request) {
	sess, token, err := s.Create()
	if err != nil {
		s.logger.Error("create session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, models.SessionCreated{
		SessionID: sess.ID,
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		Display:   sess.Display(),
	})
}

func (s *Server) handleGet(w http.ResponseWriter, _ *http.Request, sess *Session) {
	writeJSON(w, http.StatusOK, sess.Info())
}

func (s *Server) handleDelete(w http.ResponseWriter, _ *http.Request, sess *Session) {
	s.Delete(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request, sess *Session) {
	var req models.KeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	display, err := sess.Press(req.Key)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.broadcast(sess, displayEvent(display))
	writeJSON(w, http.StatusOK, display)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, status, err := s.sessionFromToken(r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", "session", sess.ID, "error", err)
		return
	}

	c := &client{conn: conn}
	sess.attach(c)
	metrics.ActiveSockets.Inc()
	s.logger.Debug("websocket connected", "session", sess.ID)

	defer func() {
		sess.detach(c)
		conn.Close()
		metrics.ActiveSockets.Dec()
		s.logger.Debug("websocket disconnected", "session", sess.ID)
	}()

	if err := c.send(displayEvent(sess.Display())); err != nil {
		return
	}

	for {
		var msg models.SocketMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read", "session", sess.ID, "error", err)
			}
			return
		}

		switch msg.Event {
		case "key":
			key, _ := msg.Data["key"].(string)
			display, err := sess.Press(key)
			if err != nil {
				c.send(errorEvent(err))
				continue
			}
			s.broadcast(sess, displayEvent(display))
		case "display":
			c.send(displayEvent(sess.Display()))
		default:
			c.send(errorEvent(fmt.Errorf("unknown event %q", msg.Event)))
		}
	}
}

func (s *Server) broadcast(sess *Session, event interface{}) {
	for _, c := range sess.clients() {
		if err := c.send(event); err != nil {
			s.logger.Debug("websocket write", "session", sess.ID, "error", err)
		}
	}
}

func displayEvent(d models.Display) map[string]interface{} {
	return map[string]interface{}{"event": "display", "data": d}
}

func errorEvent(err error) map[string]interface{} {
	return map[string]interface{}{"event": "error", "data": map[string]string{"message": err.Error()}}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
