package realtime

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/qrdine/qrdine-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sampleOrders(total int64) []models.Order {
	return []models.Order{
		{Model: gorm.Model{ID: 1}, Status: models.StatusPending, Total: total},
	}
}

func TestSubscribeReceivesBroadcast(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Broadcast(sampleOrders(500))

	select {
	case orders := <-ch:
		require.Len(t, orders, 1)
		assert.Equal(t, int64(500), orders[0].Total)
	case <-time.After(time.Second):
		t.Fatal("no snapshot received")
	}
}

func TestCancelReleasesSubscriber(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe()
	assert.Equal(t, 1, hub.SubscriberCount())

	cancel()
	assert.Equal(t, 0, hub.SubscriberCount())

	// A second cancel is harmless.
	cancel()
	assert.Equal(t, 0, hub.SubscriberCount())
}

func TestEverySubscriberGetsEachSnapshot(t *testing.T) {
	hub := NewHub()

	var channels []<-chan []models.Order
	for i := 0; i < 3; i++ {
		ch, cancel := hub.Subscribe()
		defer cancel()
		channels = append(channels, ch)
	}

	hub.Broadcast(sampleOrders(750))

	for i, ch := range channels {
		select {
		case orders := <-ch:
			assert.Equal(t, int64(750), orders[0].Total, "subscriber %d", i)
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d received nothing", i)
		}
	}
}

func TestSlowSubscriberDoesNotBlockBroadcast(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		// The subscriber channel holds 8 snapshots; the rest are dropped.
		for i := 0; i < 50; i++ {
			hub.Broadcast(sampleOrders(int64(i)))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a slow subscriber")
	}
}

func TestCancelDuringBroadcastDoesNotPanic(t *testing.T) {
	hub := NewHub()

	for i := 0; i < 200; i++ {
		cancels := make([]func(), 0, 16)
		for j := 0; j < 16; j++ {
			_, cancel := hub.Subscribe()
			cancels = append(cancels, cancel)
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			for _, cancel := range cancels {
				cancel()
			}
		}()

		hub.Broadcast(sampleOrders(int64(i)))
		<-done
	}

	assert.Equal(t, 0, hub.SubscriberCount())
}

func TestWebsocketClientGetsLatestSnapshotOnConnect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	hub.Broadcast(sampleOrders(1200))

	router := gin.New()
	router.GET("/ws/orders", hub.HandleWS)
	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/orders"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(payload, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, int64(1200), orders[0].Total)
}

func TestWebsocketClientReceivesLiveBroadcasts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()

	router := gin.New()
	router.GET("/ws/orders", hub.HandleWS)
	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/orders"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration happens inside the handler goroutine; give it a moment.
	time.Sleep(100 * time.Millisecond)
	hub.Broadcast(sampleOrders(333))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(payload, &orders))
	assert.Equal(t, int64(333), orders[0].Total)
}
