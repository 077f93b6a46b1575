package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"voidrunner/internal/game"
)

const (
	// MaxWSConnectionsTotal is the maximum number of WebSocket connections allowed
	MaxWSConnectionsTotal = 100

	// MaxWSConnectionsPerIP is the maximum WebSocket connections per IP
	MaxWSConnectionsPerIP = 4

	// BroadcastInterval is how often game snapshots go out to clients
	BroadcastInterval = 50 * time.Millisecond // 20 updates per second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		if IsAllowedOrigin(origin) {
			return true
		}

		// Log rejected origin for security monitoring
		log.Printf("⚠️ WebSocket connection rejected from origin: %s", origin)
		RecordConnectionRejected("origin")
		return false
	},
}

// wsClient tracks a WebSocket connection with its source IP
type wsClient struct {
	conn *websocket.Conn
	ip   string
}

// wsInbound is the envelope clients send: movement intents and commands.
type wsInbound struct {
	Event string           `json:"event"`
	Input game.InputIntent `json:"input"`
}

// WebSocketHub manages all WebSocket connections. Inbound messages carry
// input intents for the engine; outbound messages are game snapshots.
type WebSocketHub struct {
	engine     EngineInterface
	clients    map[*websocket.Conn]*wsClient
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *websocket.Conn
	mu         sync.RWMutex

	// Connection limiting per IP
	wsLimiter *WebSocketRateLimiter
}

// NewWebSocketHub creates a new hub with connection limiting
func NewWebSocketHub(engine EngineInterface) *WebSocketHub {
	return &WebSocketHub{
		engine:     engine,
		clients:    make(map[*websocket.Conn]*wsClient),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *websocket.Conn),
		wsLimiter:  NewWebSocketRateLimiter(MaxWSConnectionsPerIP),
	}
}

// Run starts the hub
func (h *WebSocketHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.conn] = client
			h.mu.Unlock()

			count := h.ClientCount()
			log.Printf("📱 Client connected from %s (%d total)", client.ip, count)
			UpdateWSConnections(count)

		case conn := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[conn]; ok {
				h.wsLimiter.Release(client.ip)
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

			count := h.ClientCount()
			log.Printf("📱 Client disconnected (%d remaining)", count)
			UpdateWSConnections(count)

		case message := <-h.broadcast:
			h.mu.RLock()
			var dead []*websocket.Conn
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					dead = append(dead, conn)
				}
			}
			h.mu.RUnlock()

			for _, conn := range dead {
				h.mu.Lock()
				if client, ok := h.clients[conn]; ok {
					h.wsLimiter.Release(client.ip)
					delete(h.clients, conn)
					conn.Close()
				}
				h.mu.Unlock()
			}
			IncrementWSMessages()
		}
	}
}

// Broadcast sends an event envelope to all connected clients
func (h *WebSocketHub) Broadcast(event string, data interface{}) {
	msg := map[string]interface{}{
		"event": event,
		"data":  data,
	}

	jsonBytes, err := json.Marshal(msg)
	if err != nil {
		return
	}

	select {
	case h.broadcast <- jsonBytes:
	default:
		// Channel full, skip (backpressure)
	}
}

// ClientCount returns the number of connected clients
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// StartBroadcastLoop starts broadcasting game snapshots periodically.
// Snapshots come from the lock-free pool, so this never blocks the tick.
func (h *WebSocketHub) StartBroadcastLoop() {
	ticker := time.NewTicker(BroadcastInterval)

	go func() {
		var lastSeq uint64
		for range ticker.C {
			if h.ClientCount() == 0 {
				continue
			}

			snap := h.engine.GetSnapshot()
			if snap == nil || snap.Sequence == lastSeq {
				continue
			}
			lastSeq = snap.Sequence

			h.Broadcast("game:state", snap)
		}
	}()
}

// HandleWebSocket handles incoming WebSocket connections
func (h *WebSocketHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)

	if h.ClientCount() >= MaxWSConnectionsTotal {
		log.Printf("⚠️ WebSocket connection rejected: total limit reached")
		RecordConnectionRejected("ws_total_limit")
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}

	if !h.wsLimiter.Allow(ip) {
		log.Printf("⚠️ WebSocket connection rejected from %s: per-IP limit reached", ip)
		RecordConnectionRejected("ws_ip_limit")
		http.Error(w, "Too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		h.wsLimiter.Release(ip) // Release the slot we reserved
		return
	}

	client := &wsClient{conn: conn, ip: ip}
	h.register <- client

	// Read loop: movement intents and commands from this client
	go func() {
		defer func() {
			h.unregister <- conn
		}()

		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				break
			}

			var msg wsInbound
			if err := json.Unmarshal(message, &msg); err != nil {
				continue
			}

			switch msg.Event {
			case "input":
				h.engine.SetInput(msg.Input)
			case "restart":
				h.engine.Restart()
			}
		}
	}()
}
