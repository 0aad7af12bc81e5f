package watch

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatchServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	router := gin.New()
	NewHandler(hub).RegisterRoutes(router.Group("/api/v1"))

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func dialFacility(t *testing.T, srv *httptest.Server, facilityID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/facilities/" + facilityID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForWatchers(t *testing.T, hub *Hub, facilityID int64, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.WatcherCount(facilityID) != want {
		if time.Now().After(deadline) {
			t.Fatalf("watcher count for facility %d never reached %d", facilityID, want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub_BroadcastReachesFacilityWatchers(t *testing.T) {
	hub, srv := newWatchServer(t)

	conn := dialFacility(t, srv, "1")
	other := dialFacility(t, srv, "2")
	waitForWatchers(t, hub, 1, 1)
	waitForWatchers(t, hub, 2, 1)

	sent := hub.Broadcast(1, map[string]interface{}{"type": "slot_prices", "facility_id": 1})
	assert.Equal(t, 1, sent)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "slot_prices", msg["type"])

	// the facility-2 watcher hears nothing
	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}

func TestHub_BroadcastWithoutWatchers(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.Broadcast(99, map[string]string{"type": "slot_prices"}))
}

func TestHub_UnregisterDropsWatcher(t *testing.T) {
	hub, srv := newWatchServer(t)

	conn := dialFacility(t, srv, "7")
	waitForWatchers(t, hub, 7, 1)

	conn.Close()
	waitForWatchers(t, hub, 7, 0)
}

func TestWatchFacility_RejectsBadID(t *testing.T) {
	_, srv := newWatchServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/facilities/not-a-number"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 400, resp.StatusCode)
}
