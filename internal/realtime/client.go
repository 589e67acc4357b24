package realtime

import (
	"github.com/gorilla/websocket"
)

// Client is one websocket consumer of change events, optionally narrowed to
// a single collection and record id.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan Change
	collection string
	recordID   string
}

// NewClient attaches a websocket connection to the hub.
func NewClient(hub *Hub, conn *websocket.Conn, collection, recordID string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan Change, 32),
		collection: collection,
		recordID:   recordID,
	}
}

func (c *Client) wants(change Change) bool {
	if c.collection != "" && change.Collection != c.collection {
		return false
	}
	if c.recordID != "" && change.RecordID != "" && change.RecordID != c.recordID {
		return false
	}
	return true
}

// Register announces the client to the hub. Call before starting the
// pumps. If the hub has already shut down, the send channel closes and the
// write pump exits immediately.
func (c *Client) Register() {
	c.hub.attach(c)
}

// ReadPump drains the connection until the peer goes away, then detaches
// from the hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.detach(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

// WritePump forwards hub events to the socket as JSON until the send
// channel is closed.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for change := range c.send {
		if err := c.conn.WriteJSON(change); err != nil {
			return
		}
	}
	// channel closed -> close socket
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
