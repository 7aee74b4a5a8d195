package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgQuestionAsked   MessageType = "question_asked"
	MsgAnswerSubmitted MessageType = "answer_submitted"
	MsgStatusChanged   MessageType = "status_changed"
	MsgReviewReady     MessageType = "review_ready"
	MsgError           MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket watchers per interview. An interview can have any
// number of watchers: the candidate plus any admins following along.
type Hub struct {
	watchers map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one WebSocket watcher
type Connection struct {
	InterviewID string
	UserID      string // empty for admin watchers
	Send        chan []byte
	Hub         *Hub
}

// BroadcastMessage is a message for every watcher of one interview
type BroadcastMessage struct {
	InterviewID string
	Message     *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		watchers:   make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.watchers[conn.InterviewID] == nil {
				h.watchers[conn.InterviewID] = make(map[*Connection]bool)
			}
			h.watchers[conn.InterviewID][conn] = true
			h.mu.Unlock()
			slog.Debug("watcher connected", "interview_id", conn.InterviewID, "user_id", conn.UserID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.watchers[conn.InterviewID]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.watchers, conn.InterviewID)
					}
				}
			}
			h.mu.Unlock()
			slog.Debug("watcher disconnected", "interview_id", conn.InterviewID, "user_id", conn.UserID)

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.watchers[msg.InterviewID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a watcher
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a watcher
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToInterview sends a message to every watcher of an interview
// (implements service.Broadcaster)
func (h *Hub) BroadcastToInterview(interviewID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		InterviewID: interviewID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// DisconnectInterview drops every watcher of an interview (implements
// service.Broadcaster)
func (h *Hub) DisconnectInterview(interviewID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.watchers[interviewID] {
		delete(h.watchers[interviewID], conn)
		close(conn.Send)
	}
	delete(h.watchers, interviewID)
}
