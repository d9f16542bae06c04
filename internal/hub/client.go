package hub

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"

	"github.com/soar/padbind/internal/input"
)

// InputSink is the engine surface the read pump feeds: raw keyboard events
// and remap-request clicks forwarded by the browser.
type InputSink interface {
	KeyDown(key string)
	KeyUp(key string)
	BeginRemap(slot int, button input.Button) error
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer func() {
		c.conn.Close()
	}()

	for msg := range c.send {
		err := c.conn.WriteMessage(websocket.TextMessage, msg)
		if err != nil {
			break
		}
	}
}

// ReadPump reads messages from the WebSocket and forwards raw input to the
// engine.
func (c *Client) ReadPump(sink InputSink) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error parsing client message: %v", err)
			continue
		}

		switch msg.Type {
		case "keydown":
			sink.KeyDown(msg.Key)
		case "keyup":
			sink.KeyUp(msg.Key)
		case "remap":
			if err := sink.BeginRemap(msg.Slot, input.Button(msg.Button)); err != nil {
				log.Printf("Rejected remap request: %v", err)
			}
		}
	}
}
