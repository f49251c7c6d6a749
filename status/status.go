// Package status broadcasts viewer status messages and frame data to
// websocket clients.
package status

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	INFO = iota
	ERROR
	PROGRESS
	DATA
)

type Message struct {
	Message  string      `json:",omitempty"`
	Time     time.Time
	Type     int
	Progress float32     `json:",omitempty"`
	Data     interface{} `json:",omitempty"`
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	ticker := time.NewTicker(time.Second * 30)
	defer func() {
		ticker.Stop()
		c.hub.unregisterClient(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[status] ws write msg error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[status] ws write ping error: %v", err)
				return
			}
		}
	}
}

// readPump drains the connection so control frames are handled and a closed
// peer is noticed.
func (c *client) readPump() {
	defer c.hub.unregisterClient(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Hub fans messages out to every connected client. Slow clients whose queue
// is full are dropped.
type Hub struct {
	broadcast chan *Message
	done      chan struct{}
	closeOnce sync.Once

	lock        sync.Mutex
	clients     map[*client]bool
	lastMessage []byte
}

func NewHub() *Hub {
	h := &Hub{
		broadcast: make(chan *Message, 16),
		done:      make(chan struct{}),
		clients:   make(map[*client]bool),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case s := <-h.broadcast:
			data, err := json.Marshal(s)
			if err != nil {
				log.Printf("[status] marshal error: %v", err)
				continue
			}
			h.lock.Lock()
			if s.Type != DATA {
				h.lastMessage = data
			}
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					h.dropClient(c)
				}
			}
			h.lock.Unlock()
		case <-h.done:
			h.lock.Lock()
			for c := range h.clients {
				h.dropClient(c)
			}
			h.lock.Unlock()
			return
		}
	}
}

// Close disconnects every client and stops the hub.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Serve registers a websocket connection. The client first receives the last
// status message, if any.
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &client{hub: h, conn: conn, send: make(chan []byte, 32)}

	h.lock.Lock()
	h.clients[c] = true
	if h.lastMessage != nil {
		c.send <- h.lastMessage
	}
	h.lock.Unlock()

	go c.writePump()
	go c.readPump()
}

func (h *Hub) Clients() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.clients)
}

// Last returns the last non data message sent, nil before the first one.
func (h *Hub) Last() []byte {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.lastMessage
}

func (h *Hub) unregisterClient(c *client) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.clients[c] {
		h.dropClient(c)
	}
}

// dropClient must be called with the lock held.
func (h *Hub) dropClient(c *client) {
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) post(s *Message) {
	select {
	case h.broadcast <- s:
	case <-h.done:
	default:
		log.Printf("[status] queue full, dropping %q", s.Message)
	}
}

func (h *Hub) Status(msg string, _type int, progress float32) {
	if math.IsNaN(float64(progress)) || math.IsInf(float64(progress), 0) {
		progress = 0
	}
	h.post(&Message{
		Message:  msg,
		Time:     time.Now(),
		Type:     _type,
		Progress: progress})
}

func (h *Hub) Info(format string, a ...interface{}) {
	h.Status(fmt.Sprintf(format, a...), INFO, 0.0)
}

func (h *Hub) Error(format string, a ...interface{}) {
	h.Status(fmt.Sprintf(format, a...), ERROR, 0.0)
}

func (h *Hub) Progress(progress float32, format string, a ...interface{}) {
	h.Status(fmt.Sprintf(format, a...), PROGRESS, progress)
}

// Data sends v to every client without replacing the last status message.
func (h *Hub) Data(v interface{}) {
	h.post(&Message{Time: time.Now(), Type: DATA, Data: v})
}
