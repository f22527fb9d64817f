package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"waterzone/logger"
	"waterzone/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// The mobile client keeps one stream open per signed-in user and
// re-fetches its queries whenever an event for one of its orders
// arrives. Delivery is best-effort: a slow or absent subscriber never
// blocks or fails a mutation.

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// OrderEvent is pushed to the customer and assigned driver of an order
// after every successful lifecycle transition
type OrderEvent struct {
	Type          string               `json:"type"`
	OrderID       uint                 `json:"order_id"`
	Status        models.OrderStatus   `json:"status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type client struct {
	id     string
	userID uint
	conn   *websocket.Conn
	send   chan []byte
}

// Hub tracks open WebSocket connections keyed by user id. A user may
// hold several connections (e.g. two devices); events fan out to all.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[string]*client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uint]map[string]*client)}
}

// DefaultHub is the process-wide hub, wired into routes at startup
var DefaultHub = NewHub()

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth happens via JWT before the upgrade; origin is not re-checked
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request and registers the connection for userID
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID uint) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	cl := &client{
		id:     uuid.NewString(),
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
	h.add(cl)

	go cl.writePump()
	go cl.readPump(h)

	log := logger.WithUserID(userID)
	log.Debug().Str("client_id", cl.id).Msg("stream connected")
	return nil
}

// Publish sends the event to every open connection of the given users.
// Connections whose buffers are full are skipped.
func (h *Hub) Publish(event OrderEvent, userIDs ...uint) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, userID := range userIDs {
		for _, cl := range h.clients[userID] {
			select {
			case cl.send <- payload:
			default:
			}
		}
	}
}

// PublishOrderUpdate publishes a lifecycle event on the default hub
func PublishOrderUpdate(eventType string, order *models.Order, userIDs ...uint) {
	DefaultHub.Publish(OrderEvent{
		Type:          eventType,
		OrderID:       order.ID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		UpdatedAt:     order.UpdatedAt,
	}, userIDs...)
}

func (h *Hub) add(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[cl.userID] == nil {
		h.clients[cl.userID] = make(map[string]*client)
	}
	h.clients[cl.userID][cl.id] = cl
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[cl.userID]; ok {
		if _, ok := conns[cl.id]; ok {
			delete(conns, cl.id)
			close(cl.send)
			if len(conns) == 0 {
				delete(h.clients, cl.userID)
			}
		}
	}
}

// readPump drains inbound frames; the stream is push-only, so anything
// the client sends besides pongs is discarded
func (cl *client) readPump(h *Hub) {
	defer func() {
		h.remove(cl)
		cl.conn.Close()
	}()
	cl.conn.SetReadLimit(512)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (cl *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
