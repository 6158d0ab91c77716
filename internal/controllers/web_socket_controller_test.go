package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip_tracker/internal/models"
)

func dialTrip(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/trip"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestTripHub_BroadcastsCommittedEdits(t *testing.T) {
	env := newTestEnv(t, false)
	srv := httptest.NewServer(env.engine)
	defer srv.Close()

	first := dialTrip(t, srv)
	second := dialTrip(t, srv)
	require.Eventually(t, func() bool { return env.hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	w := env.do(t, http.MethodPost, "/api/expenses/D1", `{"item":"coffee","amount":4}`)
	require.Equal(t, http.StatusOK, w.Code)

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var ev models.TripEvent
		require.NoError(t, conn.ReadJSON(&ev))
		assert.Equal(t, models.EventTripUpdated, ev.Type)
		assert.Equal(t, "Expense added.", ev.Action)
		assert.Equal(t, "D1", ev.DayID)
		assert.NotZero(t, ev.Timestamp)
	}
}

func TestTripHub_FailedEditPublishesNothing(t *testing.T) {
	env := newTestEnv(t, false)
	srv := httptest.NewServer(env.engine)
	defer srv.Close()

	conn := dialTrip(t, srv)
	require.Eventually(t, func() bool { return env.hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	w := env.do(t, http.MethodDelete, "/api/days/D42", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var ev models.TripEvent
	assert.Error(t, conn.ReadJSON(&ev))
}

func TestTripHub_UnregistersClosedViews(t *testing.T) {
	env := newTestEnv(t, false)
	srv := httptest.NewServer(env.engine)
	defer srv.Close()

	conn := dialTrip(t, srv)
	require.Eventually(t, func() bool { return env.hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()
	assert.Eventually(t, func() bool { return env.hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestTripHub_PublishNeverBlocks(t *testing.T) {
	hub := &TripHub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan models.TripEvent, 1),
		done:      make(chan struct{}),
	}
	hub.PublishTripUpdate("first", "")

	done := make(chan struct{})
	go func() {
		hub.PublishTripUpdate("dropped", "")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full channel")
	}
	assert.Len(t, hub.broadcast, 1)
}
