package services

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"complyhub-backend/shared/config"
)

// OpsFeedMessage is one entry on the operations live feed
type OpsFeedMessage struct {
	Type      string      `json:"type"`
	Level     string      `json:"level"`
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// OpsFeedManager broadcasts provisioning alerts to connected operations
// dashboards
type OpsFeedManager struct {
	clients    map[string]*websocket.Conn // connectionID -> connection
	mutex      sync.RWMutex
	upgrader   websocket.Upgrader
	register   chan *clientConnection
	unregister chan *clientConnection
	broadcast  chan *OpsFeedMessage
}

type clientConnection struct {
	ID         string
	Connection *websocket.Conn
}

// Global ops feed manager instance
var feedManager *OpsFeedManager
var once sync.Once

// GetOpsFeedManager returns singleton ops feed manager
func GetOpsFeedManager() *OpsFeedManager {
	once.Do(func() {
		feedManager = &OpsFeedManager{
			clients: make(map[string]*websocket.Conn),
			upgrader: websocket.Upgrader{
				CheckOrigin: func(r *http.Request) bool {
					origin := r.Header.Get("Origin")

					// Get allowed origins from config
					allowedOrigins := []string{
						config.GetConfig().FrontendURL,
					}

					for _, allowed := range allowedOrigins {
						if origin == allowed {
							return true
						}
					}

					log.Printf("🚫 WebSocket connection rejected from origin: %s", origin)
					return false
				},
			},
			register:   make(chan *clientConnection, 100),
			unregister: make(chan *clientConnection, 100),
			broadcast:  make(chan *OpsFeedMessage, 1000),
		}
		go feedManager.run()
	})
	return feedManager
}

// run handles the manager event loop
func (m *OpsFeedManager) run() {
	for {
		select {
		case client := <-m.register:
			m.registerClient(client)

		case client := <-m.unregister:
			m.unregisterClient(client)

		case message := <-m.broadcast:
			m.broadcastMessage(message)
		}
	}
}

func (m *OpsFeedManager) registerClient(client *clientConnection) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.clients[client.ID] = client.Connection
	log.Printf("🔌 Ops feed client connected: %s (Total: %d)", client.ID, len(m.clients))
}

func (m *OpsFeedManager) unregisterClient(client *clientConnection) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if conn, exists := m.clients[client.ID]; exists {
		conn.Close()
		delete(m.clients, client.ID)
		log.Printf("🔌 Ops feed client disconnected: %s (Total: %d)", client.ID, len(m.clients))
	}
}

func (m *OpsFeedManager) broadcastMessage(message *OpsFeedMessage) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for id, conn := range m.clients {
		if err := conn.WriteJSON(message); err != nil {
			log.Printf("⚠️ Failed to push ops feed message to %s: %v", id, err)
		}
	}
}

// Broadcast queues a message for all connected dashboards
func (m *OpsFeedManager) Broadcast(message *OpsFeedMessage) {
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}
	select {
	case m.broadcast <- message:
	default:
		log.Println("⚠️ Ops feed broadcast buffer full, dropping message")
	}
}

// HandleConnection upgrades an HTTP request to a feed connection
func (m *OpsFeedManager) HandleConnection(c *gin.Context) {
	conn, err := m.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ WebSocket upgrade failed: %v", err)
		return
	}

	client := &clientConnection{
		ID:         uuid.NewString(),
		Connection: conn,
	}
	m.register <- client

	// Drain reads so close frames are processed; the feed is write-only.
	go func() {
		defer func() {
			m.unregister <- client
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
