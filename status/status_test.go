package status

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h *Hub) *httptest.Server {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Serve(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var m Message
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestLastMessageOnConnect(t *testing.T) {
	h := NewHub()
	defer h.Close()
	srv := newServer(t, h)

	h.Info("built %d helicopters", 5)
	require.Eventually(t, func() bool { return h.Last() != nil }, time.Second, time.Millisecond)

	conn := dial(t, srv)
	m := read(t, conn)
	assert.Equal(t, "built 5 helicopters", m.Message)
	assert.Equal(t, INFO, m.Type)

	h.Progress(0.5, "loading")
	m = read(t, conn)
	assert.Equal(t, PROGRESS, m.Type)
	assert.Equal(t, float32(0.5), m.Progress)
}

func TestDataDoesNotReplaceLast(t *testing.T) {
	h := NewHub()
	defer h.Close()
	srv := newServer(t, h)

	h.Error("bad %s", "mesh")
	require.Eventually(t, func() bool { return h.Last() != nil }, time.Second, time.Millisecond)
	conn := dial(t, srv)
	assert.Equal(t, ERROR, read(t, conn).Type)

	h.Data(map[string]int{"frame": 7})
	m := read(t, conn)
	assert.Equal(t, DATA, m.Type)
	assert.Equal(t, map[string]interface{}{"frame": float64(7)}, m.Data)

	var last Message
	require.NoError(t, json.Unmarshal(h.Last(), &last))
	assert.Equal(t, "bad mesh", last.Message)
}

func TestClientsAreDroppedOnClose(t *testing.T) {
	h := NewHub()
	srv := newServer(t, h)

	h.Info("hello")
	require.Eventually(t, func() bool { return h.Last() != nil }, time.Second, time.Millisecond)
	conn := dial(t, srv)
	read(t, conn)
	assert.Equal(t, 1, h.Clients())

	conn.Close()
	assert.Eventually(t, func() bool { return h.Clients() == 0 }, 5*time.Second, 10*time.Millisecond)

	h.Close()
	h.Close()
}

func TestNaNProgress(t *testing.T) {
	h := NewHub()
	defer h.Close()
	h.Status("nan", PROGRESS, float32(math.NaN()))
	require.Eventually(t, func() bool { return h.Last() != nil }, time.Second, time.Millisecond)

	var m Message
	require.NoError(t, json.Unmarshal(h.Last(), &m))
	assert.Zero(t, m.Progress)
}
