package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/besmartbusiness/lawyer-app/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub fans pipeline events out to every open connection of an owner.
// With Redis configured, events also cross instance boundaries so a user
// dictating on one node still sees pushes when load balancing moved their
// websocket elsewhere.
type Hub struct {
	// OwnerID -> open connections (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.OwnerID] = append(h.clients[client.OwnerID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"owner_id": client.OwnerID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.OwnerID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.OwnerID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.OwnerID]) == 0 {
					delete(h.clients, client.OwnerID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendEvent pushes one typed event to all of an owner's connections,
// locally and across instances.
func (h *Hub) SendEvent(ownerID uuid.UUID, eventType string, payload interface{}) {
	data, err := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": payload,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal event", map[string]interface{}{"error": err.Error()})
		return
	}

	h.mu.RLock()
	clients, localFound := h.clients[ownerID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				// Only the unregister handler may close Send; closing here
				// too would double-close once Run processes the client.
				h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"owner_id": ownerID})
				h.unregister <- client
			}
		}
	}

	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"target_owner_id": ownerID.String(),
			"message":         data,
		})
		h.rdb.Publish(context.Background(), "cluster_events", envelope)
	}
}

// subscribeToRedis relays events published by other instances to the
// connections this instance holds.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetOwnerID string          `json:"target_owner_id"`
			Message       json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		ownerID, err := uuid.Parse(payload.TargetOwnerID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[ownerID]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					h.unregister <- client
				}
			}
		}
	}
}
