// Package realtime broadcasts queue-changed events to connected observers.
// Events carry no payload; observers re-fetch the queue views they care
// about. There is no delivery guarantee and no replay for late joiners.
package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event names sent to observers.
const (
	EventWaitingQueueUpdate = "waiting_queue_update"
	EventCalledQueueUpdate  = "called_queue_update"

	// TriggerCalledQueueUpdate is the one inbound message observers may send;
	// it re-broadcasts EventCalledQueueUpdate to everyone.
	TriggerCalledQueueUpdate = "trigger_called_queue_update"
)

// Event is the wire format of a broadcast.
type Event struct {
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
}

// ClientMessage is an inbound message from an observer.
type ClientMessage struct {
	Event string `json:"event"`
}

// Client is a single connected observer.
type Client struct {
	ID   string
	Send chan []byte
}

// Hub owns the observer registry. All connection lifecycle goes through
// Register/Unregister; nothing outside this package holds a connection.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Register adds an observer to the hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

// Unregister removes an observer and closes its send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
}

// Broadcast fans the named event out to every connected observer. Observers
// with a full send buffer are skipped rather than blocked on.
func (h *Hub) Broadcast(event string) {
	data, err := json.Marshal(Event{Event: event, Timestamp: time.Now()})
	if err != nil {
		log.Printf("realtime: failed to marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// NotifyWaitingQueue implements services.Notifier.
func (h *Hub) NotifyWaitingQueue() {
	h.Broadcast(EventWaitingQueueUpdate)
}

// NotifyCalledQueue implements services.Notifier.
func (h *Hub) NotifyCalledQueue() {
	h.Broadcast(EventCalledQueueUpdate)
}

// ClientCount returns the number of connected observers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades HTTP connections and pumps messages between the socket
// and the hub.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// HandleConnect upgrades the request to a WebSocket and registers the
// observer. The route sits behind the same token middleware as the HTTP API,
// so only authenticated staff can connect or trigger broadcasts.
func (h *Handler) HandleConnect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("realtime: upgrade failed: %v", err)
		return
	}

	client := &Client{
		ID:   uuid.New().String(),
		Send: make(chan []byte, 256),
	}
	h.hub.Register(client)

	go h.writePump(client, conn)
	go h.readPump(client, conn)
}

func (h *Handler) readPump(client *Client, conn *websocket.Conn) {
	defer func() {
		h.hub.Unregister(client)
		conn.Close()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		if msg.Event == TriggerCalledQueueUpdate {
			h.hub.NotifyCalledQueue()
		}
	}
}

func (h *Handler) writePump(client *Client, conn *websocket.Conn) {
	defer conn.Close()

	for message := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}
