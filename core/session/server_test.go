package session

import (
	"bytes"
	"calc/models"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer(Options{Secret: "test-secret", TTL: time.Minute})
	mux := http.NewServeMux()
	srv.Register(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return srv, ts
}

func createSession(t *testing.T, ts *httptest.Server) models.SessionCreated {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/session", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.SessionCreated
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created
}

func pressKey(t *testing.T, ts *httptest.Server, token, key string) (*http.Response, models.Display) {
	t.Helper()
	body, _ := json.Marshal(models.KeyRequest{Key: key})
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/session/key", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var display models.Display
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&display))
	}
	return resp, display
}

func TestCreateSession(t *testing.T) {
	_, ts := newTestServer(t)

	created := createSession(t, ts)
	assert.NotEmpty(t, created.SessionID)
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, created.SessionID, created.Display.SessionID)
	assert.Equal(t, "", created.Display.Text)
}

func TestKeysOverHTTP(t *testing.T) {
	_, ts := newTestServer(t)
	created := createSession(t, ts)

	var display models.Display
	for _, key := range []string{"5", "*", "3", "+", "2"} {
		_, display = pressKey(t, ts, created.Token, key)
	}
	assert.Equal(t, "5*3+2", display.Text)

	_, display = pressKey(t, ts, created.Token, "=")
	assert.Equal(t, "17", display.Text)
	assert.Empty(t, display.Error)

	for _, key := range []string{"clear", "5", "/", "0", "="} {
		_, display = pressKey(t, ts, created.Token, key)
	}
	assert.Equal(t, "CANNOT DIVIDE BY ZERO", display.Text)
	assert.Equal(t, "CANNOT DIVIDE BY ZERO", display.Error)
}

func TestUnknownKeyIsRejected(t *testing.T) {
	_, ts := newTestServer(t)
	created := createSession(t, ts)

	resp, _ := pressKey(t, ts, created.Token, "sqrt")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthentication(t *testing.T) {
	srv, ts := newTestServer(t)
	created := createSession(t, ts)

	t.Run("missing header", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/session")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("foreign signature", func(t *testing.T) {
		other := NewServer(Options{Secret: "other-secret"})
		sess, token, err := other.Create()
		require.NoError(t, err)
		require.NotNil(t, sess)

		resp, _ := pressKey(t, ts, token, "1")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		srv.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		defer func() { srv.now = time.Now }()

		resp, _ := pressKey(t, ts, created.Token, "1")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("deleted session", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/session", nil)
		req.Header.Set("Authorization", "Bearer "+created.Token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, _ = pressKey(t, ts, created.Token, "1")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetSessionInfo(t *testing.T) {
	_, ts := newTestServer(t)
	created := createSession(t, ts)
	pressKey(t, ts, created.Token, "4")

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/session", nil)
	req.Header.Set("Authorization", "Bearer "+created.Token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var info models.SessionInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, created.SessionID, info.SessionID)
	assert.Equal(t, "4", info.Display.Text)
	assert.Equal(t, 0, info.Sockets)
}

func TestSweepRemovesExpiredSessions(t *testing.T) {
	srv := NewServer(Options{Secret: "s", TTL: time.Minute})
	sess, _, err := srv.Create()
	require.NoError(t, err)

	assert.Equal(t, 0, srv.Sweep())

	srv.now = func() time.Time { return time.Now().Add(time.Hour) }
	assert.Equal(t, 1, srv.Sweep())

	_, ok := srv.Get(sess.ID)
	assert.False(t, ok)
}

type socketEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func readDisplay(t *testing.T, conn *websocket.Conn) models.Display {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var ev socketEvent
	require.NoError(t, conn.ReadJSON(&ev))
	require.Equal(t, "display", ev.Event, "payload: %s", ev.Data)

	var display models.Display
	require.NoError(t, json.Unmarshal(ev.Data, &display))
	return display
}

func dial(t *testing.T, ts *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketKeypad(t *testing.T) {
	_, ts := newTestServer(t)
	created := createSession(t, ts)

	conn := dial(t, ts, created.Token)
	assert.Equal(t, "", readDisplay(t, conn).Text)

	for _, key := range []string{"9", "-", "4"} {
		require.NoError(t, conn.WriteJSON(models.SocketMessage{
			Event: "key",
			Data:  map[string]interface{}{"key": key},
		}))
		readDisplay(t, conn)
	}

	require.NoError(t, conn.WriteJSON(models.SocketMessage{
		Event: "key",
		Data:  map[string]interface{}{"key": "="},
	}))
	assert.Equal(t, "5", readDisplay(t, conn).Text)
}

func TestWebSocketReceivesHTTPKeys(t *testing.T) {
	_, ts := newTestServer(t)
	created := createSession(t, ts)

	conn := dial(t, ts, created.Token)
	readDisplay(t, conn)

	pressKey(t, ts, created.Token, "7")
	assert.Equal(t, "7", readDisplay(t, conn).Text)
}

func TestWebSocketUnknownEvent(t *testing.T) {
	_, ts := newTestServer(t)
	created := createSession(t, ts)

	conn := dial(t, ts, created.Token)
	readDisplay(t, conn)

	require.NoError(t, conn.WriteJSON(models.SocketMessage{Event: "dance"}))
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var ev socketEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "error", ev.Event)
	assert.Contains(t, string(ev.Data), "dance")
}

func TestWebSocketRejectsBadToken(t *testing.T) {
	_, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?token=garbage"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
