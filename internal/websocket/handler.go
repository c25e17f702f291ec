package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches one accepted websocket connection to the hub.
func ServeWs(hub *Hub, c *websocket.Conn, ownerID uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, OwnerID: ownerID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
