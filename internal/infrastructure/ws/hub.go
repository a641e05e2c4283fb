package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// браузерный клиент ходит с другого origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

type pushEnvelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Hub keeps live websocket connections grouped by account id and
// implements domain.PushPort. Publishing to an account nobody is
// listening on is a no-op, not an error.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*websocket.Conn]struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*websocket.Conn]struct{}),
		logger:  logger,
	}
}

// ServeWS upgrades the request and registers the connection under the
// given account id until the peer goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("accountId")
	if accountID == "" {
		http.Error(w, "accountId is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	h.register(accountID, conn)
	h.logger.Info("websocket client connected", zap.String("account_id", accountID))

	go func() {
		defer func() {
			h.unregister(accountID, conn)
			conn.Close()
			h.logger.Info("websocket client disconnected", zap.String("account_id", accountID))
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) register(accountID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[accountID] == nil {
		h.clients[accountID] = make(map[*websocket.Conn]struct{})
	}
	h.clients[accountID][conn] = struct{}{}
}

func (h *Hub) unregister(accountID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[accountID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.clients, accountID)
		}
	}
}

func (h *Hub) PublishToAccount(accountID, event string, payload any) error {
	data, err := json.Marshal(pushEnvelope{Event: event, Payload: payload})
	if err != nil {
		return err
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients[accountID]))
	for conn := range h.clients[accountID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			// dead peer: drop it, the publish itself stays best-effort
			h.unregister(accountID, conn)
			conn.Close()
		}
	}
	return nil
}

func (h *Hub) PublishToAll(event string, payload any) error {
	data, err := json.Marshal(pushEnvelope{Event: event, Payload: payload})
	if err != nil {
		return err
	}

	h.mu.RLock()
	type target struct {
		accountID string
		conn      *websocket.Conn
	}
	targets := make([]target, 0)
	for accountID, conns := range h.clients {
		for conn := range conns {
			targets = append(targets, target{accountID, conn})
		}
	}
	h.mu.RUnlock()

	for _, t := range targets {
		if err := t.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.unregister(t.accountID, t.conn)
			t.conn.Close()
		}
	}
	return nil
}
