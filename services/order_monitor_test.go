package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easybar-app/gateway/client"
	"github.com/easybar-app/gateway/live"
	"github.com/easybar-app/gateway/models"
)

// dialHub connects a websocket client to the hub through a throwaway server,
// the way a mounted view would.
func dialHub(t *testing.T, hub *live.Hub, role string) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		hub.Register(conn, role)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	before := hub.ClientCount()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, func() bool { return hub.ClientCount() > before }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) live.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg live.Message
	require.NoError(t, json.Unmarshal(payload, &msg))
	return msg
}

func assertSilent(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "expected no event on the wire")
}

func TestMonitorFirstPollIsSilent(t *testing.T) {
	backend := newFakeOrderBackend(t, sampleOrders())
	hub := live.NewHub()
	conn := dialHub(t, hub, models.RoleGarcom)

	monitor := NewOrderMonitor(client.New(backend.srv.URL, ""), hub)
	monitor.poll()

	assertSilent(t, conn)
}

func TestMonitorBroadcastsStatusChange(t *testing.T) {
	backend := newFakeOrderBackend(t, sampleOrders())
	hub := live.NewHub()
	conn := dialHub(t, hub, models.RoleGarcom)

	monitor := NewOrderMonitor(client.New(backend.srv.URL, ""), hub)
	monitor.poll()

	backend.orders[0].Status = models.OrderReady
	monitor.poll()

	msg := readEvent(t, conn)
	assert.Equal(t, live.EventOrderUpdate, msg.Event)

	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "o1", data["_id"])
}

func TestMonitorBroadcastsNewOrder(t *testing.T) {
	backend := newFakeOrderBackend(t, sampleOrders())
	hub := live.NewHub()
	conn := dialHub(t, hub, models.RoleGarcom)

	monitor := NewOrderMonitor(client.New(backend.srv.URL, ""), hub)
	monitor.poll()

	backend.orders = append(backend.orders, models.Order{
		ID:     "o6",
		Status: models.OrderPending,
	})
	monitor.poll()

	msg := readEvent(t, conn)
	assert.Equal(t, live.EventOrderUpdate, msg.Event)
}

func TestMonitorUnchangedOrdersStaySilent(t *testing.T) {
	backend := newFakeOrderBackend(t, sampleOrders())
	hub := live.NewHub()
	conn := dialHub(t, hub, models.RoleGarcom)

	monitor := NewOrderMonitor(client.New(backend.srv.URL, ""), hub)
	monitor.poll()
	monitor.poll()

	assertSilent(t, conn)
}

func TestMonitorStartStop(t *testing.T) {
	var polls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		json.NewEncoder(w).Encode([]models.Order{})
	}))
	t.Cleanup(srv.Close)

	monitor := NewOrderMonitor(client.New(srv.URL, ""), live.NewHub())
	monitor.Interval = 10 * time.Millisecond
	monitor.Start()

	assert.Eventually(t, func() bool { return polls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)

	monitor.Stop()
	settled := polls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, polls.Load(), settled+1)
}
