package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
)

type event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub mirrors authoritative wallet state to every open tab of an account.
// The server remains the sole source of truth; a dropped message only delays
// a tab until its next fetch.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*client]struct{}
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*client]struct{}),
		log:     log,
	}
}

// Serve pumps events to one connection until it closes. Blocks for the
// lifetime of the connection; call from the websocket handler.
func (h *Hub) Serve(accountID uuid.UUID, conn *websocket.Conn) {
	cl := &client{conn: conn, send: make(chan []byte, 16)}

	h.mu.Lock()
	if h.clients[accountID] == nil {
		h.clients[accountID] = make(map[*client]struct{})
	}
	h.clients[accountID][cl] = struct{}{}
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range cl.send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}()

	// Inbound frames are ignored; the socket is push-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients[accountID], cl)
	if len(h.clients[accountID]) == 0 {
		delete(h.clients, accountID)
	}
	h.mu.Unlock()

	close(cl.send)
	<-done
}

// BroadcastWallet pushes a post-mutation wallet snapshot to the account's
// open sessions.
func (h *Hub) BroadcastWallet(accountID uuid.UUID, wallet *model.Wallet) {
	h.broadcast(accountID, event{Type: "wallet", Payload: wallet})
}

// BroadcastNotification pushes a short in-app notification.
func (h *Hub) BroadcastNotification(accountID uuid.UUID, message string) {
	h.broadcast(accountID, event{Type: "notification", Payload: map[string]string{"message": message}})
}

func (h *Hub) broadcast(accountID uuid.UUID, ev event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Warn("failed to marshal event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.clients[accountID] {
		select {
		case cl.send <- msg:
		default:
			// Slow consumer; it will re-fetch on its own.
		}
	}
}
