package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lnfurey-oss/pm-exploration/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.Mutex
}

type Client struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
	hub    *Hub
}

var hub = &Hub{
	clients:    make(map[*Client]bool),
	broadcast:  make(chan []byte),
	register:   make(chan *Client),
	unregister: make(chan *Client),
}

// StartHub launches the broadcast loop. Call once from main.
func StartHub() {
	go hub.Run()
}

func (h *Hub) Run() {
	log.Println("WebSocket hub started")
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// JournalUpdate is pushed to dashboard clients when a record changes.
type JournalUpdate struct {
	Type      string      `json:"type"` // CONCERN_LOGGED, OUTCOME_RECORDED, DECISION_CREATED
	EntityID  string      `json:"entity_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// BroadcastUpdate sends an update to every connected client.
func BroadcastUpdate(update JournalUpdate) {
	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Failed to marshal journal update: %v", err)
		return
	}
	hub.broadcast <- data
}

// SendConcernLogged broadcasts a freshly generated concern + actions.
func SendConcernLogged(entityID string, payload interface{}) {
	BroadcastUpdate(JournalUpdate{
		Type:      "CONCERN_LOGGED",
		EntityID:  entityID,
		Data:      payload,
		Timestamp: time.Now(),
	})
}

// SendOutcomeRecorded broadcasts an outcome create-or-replace.
func SendOutcomeRecorded(decisionID string, payload interface{}) {
	BroadcastUpdate(JournalUpdate{
		Type:      "OUTCOME_RECORDED",
		EntityID:  decisionID,
		Data:      payload,
		Timestamp: time.Now(),
	})
}

// HandleWebSocket upgrades the connection after validating the token
// passed as a query parameter or bearer header.
func HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")

	if tokenString == "" {
		authHeader := r.Header.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if tokenString == "" {
		http.Error(w, "Authentication token required", http.StatusUnauthorized)
		return
	}

	claims, err := utils.ValidateJWT(tokenString)
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		userID: claims.UserID,
		conn:   conn,
		send:   make(chan []byte, 256),
		hub:    hub,
	}
	hub.register <- client

	log.Printf("WebSocket client connected: user %s", claims.UserID)

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
