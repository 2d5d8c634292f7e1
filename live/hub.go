package live

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/easybar-app/gateway/models"
	"github.com/easybar-app/gateway/utils"
)

// Event types pushed to connected views.
const (
	EventOrderUpdate    = "order_update"
	EventTabUpdate      = "tab_update"
	EventTableUpdate    = "table_update"
	EventClosingRequest = "closing_request"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds the websocket connections of mounted views and fans events out
// to them. Staff-only events are routed by the role recorded at register
// time.
type Hub struct {
	clients map[*websocket.Conn]string
	mu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = role
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) BroadcastOrderUpdate(order models.Order) {
	h.broadcast(Message{Event: EventOrderUpdate, Data: order}, nil)
}

func (h *Hub) BroadcastTabUpdate(tab models.Tab) {
	h.broadcast(Message{Event: EventTabUpdate, Data: tab}, nil)
}

func (h *Hub) BroadcastTableUpdate(table models.Table) {
	h.broadcast(Message{Event: EventTableUpdate, Data: table}, nil)
}

// BroadcastClosingRequest notifies staff that a customer asked to settle.
func (h *Hub) BroadcastClosingRequest(request models.ClosingRequest) {
	h.broadcast(Message{Event: EventClosingRequest, Data: request}, map[string]bool{
		models.RoleGarcom: true,
		models.RoleAdmin:  true,
	})
}

func (h *Hub) broadcast(msg Message, roles map[string]bool) {
	payload, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to encode %s event: %v", msg.Event, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, role := range h.clients {
		if roles != nil && !roles[role] {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			utils.ErrorLogger.Printf("Dropping websocket client: %v", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
