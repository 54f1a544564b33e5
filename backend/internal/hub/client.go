package hub

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

const sendBufferSize = 256

// Commander applies a command sent by a debug client.
type Commander interface {
	Apply(msg ClientMessage) error
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	closing atomic.Bool // set once the hub has scheduled its removal
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
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

// ReadPumpWithHandler reads messages from the WebSocket and hands client
// commands to cmd. Rejected commands are answered with an "error" message.
func (c *Client) ReadPumpWithHandler(cmd Commander) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			c.hub.logger.Printf("Error parsing client message: %v", err)
			c.reply(NewErrorMessage(fmt.Errorf("malformed message: %w", err)))
			continue
		}

		if cmd == nil {
			continue
		}
		if err := cmd.Apply(clientMsg); err != nil {
			c.hub.logger.Printf("Rejected %q command: %v", clientMsg.Type, err)
			c.reply(NewErrorMessage(err))
		}
	}
}

func (c *Client) reply(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.hub.logger.Printf("Error marshaling reply: %v", err)
		return
	}
	c.hub.SendTo(c, data)
}
