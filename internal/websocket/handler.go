package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs wires one upgraded connection into the hub and blocks until the
// connection dies.
func ServeWs(hub *Hub, c *websocket.Conn, userID uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, UserID: userID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
