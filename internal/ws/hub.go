package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/goroutine"
	"github.com/matheusgmdr7/contratando2/internal/logger"
)

// Hub держит открытые соединения по пользователям и ролям.
type Hub struct {
	mu         sync.RWMutex
	clients    map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	log        *logrus.Entry
}

type message struct {
	userID  uuid.UUID
	role    valueobject.Role
	payload []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 64),
		log:        logger.Component("ws"),
	}
}

// Run обслуживает регистрацию и рассылку до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.send(msg)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Notify отправляет событие всем соединениям пользователя. Не блокируется:
// при переполненной очереди событие теряется с предупреждением в логе.
func (h *Hub) Notify(userID uuid.UUID, event string, data any) {
	h.enqueue(message{userID: userID}, event, data)
}

// NotifyRole отправляет событие всем соединениям с данной ролью.
func (h *Hub) NotifyRole(role valueobject.Role, event string, data any) {
	h.enqueue(message{role: role}, event, data)
}

func (h *Hub) enqueue(msg message, event string, data any) {
	raw, err := json.Marshal(map[string]any{"type": event, "data": data})
	if err != nil {
		h.log.WithError(err).Warn("ws: не удалось сериализовать событие")
		return
	}
	msg.payload = raw
	select {
	case h.broadcast <- msg:
	default:
		h.log.WithField("event", event).Warn("ws: очередь событий переполнена, событие пропущено")
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]struct{})
	}
	h.clients[client.userID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, client.userID)
		}
	}
}

func (h *Hub) send(msg message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	deliver := func(client *Client) {
		select {
		case client.send <- msg.payload:
		default:
			goroutine.SafeGo(client.Close)
		}
	}

	if msg.role != "" {
		for _, clients := range h.clients {
			for client := range clients {
				if client.role == msg.role {
					deliver(client)
				}
			}
		}
		return
	}
	for client := range h.clients[msg.userID] {
		deliver(client)
	}
}

// ConnectedUsers — число пользователей с открытыми соединениями.
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
