package booking

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"oasis/mq"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToCabinViewers(t *testing.T) {
	hub := NewHub()
	defer hub.Stop()

	router := httprouter.New()
	router.GET("/ws/cabins/:cabinId", hub.HandleWS)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/cabins/C1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers("C1") == 1 }, time.Second, 10*time.Millisecond)

	hub.Deliver(mq.NewAvailabilityEvent(mq.ActionDeleted, "C2", "B9"))
	event := mq.NewAvailabilityEvent(mq.ActionCreated, "C1", "B1")
	hub.Deliver(event)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got mq.BookingEvent
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, event, got)
}

func TestHubForgetsClosedViewers(t *testing.T) {
	hub := NewHub()
	router := httprouter.New()
	router.GET("/ws/cabins/:cabinId", hub.HandleWS)
	srv := httptest.NewServer(router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/cabins/C1", nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Subscribers("C1") == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Subscribers("C1") == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubDeliverWithoutViewersKeepsNoEntry(t *testing.T) {
	hub := NewHub()
	for _, id := range []string{"C1", "C2", "C3"} {
		hub.Deliver(mq.NewAvailabilityEvent(mq.ActionUpdated, id, "B1"))
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()
	assert.Empty(t, hub.subscribers)
}
