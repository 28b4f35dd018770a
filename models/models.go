package models

import "time"

// EvaluateRequest is the body of POST /api/evaluate.
type EvaluateRequest struct {
	Input string `json:"input"`
}

// EvaluateResponse carries the rendered result. Value is set only for numbers,
// Error only for classified failures.
type EvaluateResponse struct {
	Input  string   `json:"input"`
	Result string   `json:"result"`
	Value  *float64 `json:"value,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// KeyRequest is one keystroke sent to a keypad session.
type KeyRequest struct {
	Key string `json:"key"`
}

// Display is what a keypad session currently shows.
type Display struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
	Error     string `json:"error,omitempty"`
}

// SessionCreated is returned when a keypad session is opened.
type SessionCreated struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Display   Display   `json:"display"`
}

type SessionInfo struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	Sockets   int       `json:"sockets"`
	Display   Display   `json:"display"`
}

// SocketMessage is the websocket envelope in both directions.
type SocketMessage struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data,omitempty"`
}
