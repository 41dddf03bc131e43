package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/qrdine/qrdine-api/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans the full order snapshot out to every live viewer: websocket
// clients (kitchen board, admin board, customer tracking) and in-process
// subscribers. Each delivery is a consistent snapshot; relative arrival order
// across independent subscribers is not guaranteed.
type Hub struct {
	mu      sync.RWMutex
	conns   map[*wsClient]bool
	subs    map[int]chan []models.Order
	nextSub int
	latest  []byte
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[*wsClient]bool),
		subs:  make(map[int]chan []models.Order),
	}
}

// Broadcast pushes the order set to all connected clients and subscribers.
// Slow consumers get dropped messages, never a blocked broadcast.
func (h *Hub) Broadcast(orders []models.Order) {
	payload, err := json.Marshal(orders)
	if err != nil {
		log.Println("unable to marshal order snapshot:", err)
		return
	}

	// Sends stay under the lock so a concurrent unsubscribe or disconnect
	// cannot close a channel mid fan-out. Every send is non-blocking, so the
	// lock is never held on a slow consumer.
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = payload

	for client := range h.conns {
		select {
		case client.send <- payload:
		default:
			log.Println("websocket buffer full, dropping snapshot")
		}
	}
	for _, ch := range h.subs {
		select {
		case ch <- orders:
		default:
		}
	}
}

// Subscribe registers an in-process viewer. The returned cancel func must be
// called to release the channel.
func (h *Hub) Subscribe() (<-chan []models.Order, func()) {
	ch := make(chan []models.Order, 8)

	h.mu.Lock()
	id := h.nextSub
	h.nextSub++
	h.subs[id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// SubscriberCount reports how many in-process subscribers are registered.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// HandleWS upgrades the request and streams order snapshots until the client
// goes away. The newest snapshot is sent immediately on connect.
func (h *Hub) HandleWS(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("failed to upgrade connection: %v", err)
		return
	}

	client := &wsClient{conn: conn, send: make(chan []byte, 16)}

	h.mu.Lock()
	h.conns[client] = true
	latest := h.latest
	h.mu.Unlock()

	if latest != nil {
		client.send <- latest
	}

	go h.writePump(client)
	go h.readPump(client)
}

func (h *Hub) readPump(client *wsClient) {
	defer h.drop(client)

	client.conn.SetReadLimit(4096)
	client.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		// Clients do not send anything meaningful; reads only surface
		// disconnects and keep pong handling alive.
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(client *wsClient) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		h.drop(client)
	}()

	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) drop(client *wsClient) {
	h.mu.Lock()
	if _, ok := h.conns[client]; ok {
		delete(h.conns, client)
		close(client.send)
	}
	h.mu.Unlock()
	client.conn.Close()
}
