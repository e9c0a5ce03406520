package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"ai-noteflow-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// clusterChannel is the redis pub/sub channel shared by all instances, so an
// event raised on one node reaches clients connected to another.
const clusterChannel = "cluster_events"

// Envelope is the wire frame pushed to connected clients.
type Envelope struct {
	Type string      `json:"type"` // "note_enhanced", "chat_message", ...
	Data interface{} `json:"data"`
}

const (
	EnvelopeNoteEnhanced = "note_enhanced"
	EnvelopeChatMessage  = "chat_message"
)

type Hub struct {
	// clients maps UserID to connections; one user may have several devices.
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
		go h.subscribeToCluster()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers an envelope to one user's connections, local first, then over
// redis for connections held by other instances.
func (h *Hub) Send(userID uuid.UUID, envelope Envelope) {
	data, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal envelope", map[string]interface{}{"error": err.Error()})
		return
	}

	h.mu.RLock()
	clients, localFound := h.clients[userID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
				close(client.Send)
				h.unregister <- client
			}
		}
	}

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_user_id": userID.String(),
			"message":        json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), clusterChannel, payload)
	}
}

func (h *Hub) subscribeToCluster() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Bad cluster message", map[string]interface{}{"error": err.Error()})
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[uid]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					close(client.Send)
					h.unregister <- client
				}
			}
		}
	}
}
