// Package live pushes page-session state to the browser over websockets.
package live

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/blackfish/utils"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Conn is the subset of *websocket.Conn the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type client struct {
	conn Conn
	// gorilla connections allow one concurrent writer
	writeMu sync.Mutex
}

func (cl *client) write(messageType int, data []byte) error {
	cl.writeMu.Lock()
	defer cl.writeMu.Unlock()
	_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return cl.conn.WriteMessage(messageType, data)
}

// Hub groups live connections by page session. A session may have several
// connections when the page reconnects.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]map[*client]struct{}
	byConn   map[Conn]*client
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]map[*client]struct{}),
		byConn:   make(map[Conn]*client),
	}
}

// Register adds conn to a session and returns the function that removes it.
func (h *Hub) Register(sessionID string, conn Conn) func() {
	cl := &client{conn: conn}

	h.mu.Lock()
	clients, ok := h.sessions[sessionID]
	if !ok {
		clients = make(map[*client]struct{})
		h.sessions[sessionID] = clients
	}
	clients[cl] = struct{}{}
	h.byConn[conn] = cl
	h.mu.Unlock()

	return func() { h.unregister(sessionID, cl) }
}

func (h *Hub) unregister(sessionID string, cl *client) {
	h.mu.Lock()
	clients, ok := h.sessions[sessionID]
	if ok {
		delete(clients, cl)
		if len(clients) == 0 {
			delete(h.sessions, sessionID)
		}
	}
	delete(h.byConn, cl.conn)
	h.mu.Unlock()
	cl.conn.Close()
}

// Notify sends one event to every connection of a session. Connections that
// fail to take the write are dropped.
func (h *Hub) Notify(sessionID, event string, data interface{}) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling %s message: %v", event, err)
		return
	}

	for _, cl := range h.clients(sessionID) {
		if err := cl.write(websocket.TextMessage, payload); err != nil {
			utils.InfoLogger.WithField("page_id", sessionID).Debugf("Dropping live connection: %v", err)
			h.unregister(sessionID, cl)
		}
	}
}

// Send writes one event to a single registered connection.
func (h *Hub) Send(conn Conn, event string, data interface{}) error {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		return err
	}
	cl, err := h.lookup(conn)
	if err != nil {
		return err
	}
	return cl.write(websocket.TextMessage, payload)
}

// Ping writes a ping frame to a registered connection. It shares the
// connection's write lock with Send and Notify.
func (h *Hub) Ping(conn Conn) error {
	cl, err := h.lookup(conn)
	if err != nil {
		return err
	}
	return cl.write(websocket.PingMessage, nil)
}

func (h *Hub) lookup(conn Conn) (*client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cl, ok := h.byConn[conn]
	if !ok {
		return nil, errors.New("connection is not registered")
	}
	return cl, nil
}

func (h *Hub) clients(sessionID string) []*client {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*client, 0, len(h.sessions[sessionID]))
	for cl := range h.sessions[sessionID] {
		out = append(out, cl)
	}
	return out
}

// CloseSession drops every connection of an evicted session.
func (h *Hub) CloseSession(sessionID string) {
	for _, cl := range h.clients(sessionID) {
		h.unregister(sessionID, cl)
	}
}

func (h *Hub) Connections(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions[sessionID])
}
