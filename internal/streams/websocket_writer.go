package streams

import (
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// WebsocketWriter sends everything written to it over a websocket connection. Every Write is sent as exactly one
// message, large messages are fragmented into frames by the connection. An empty write sends an empty message.
type WebsocketWriter struct {
	conn        *websocket.Conn
	messageType int
}

// NewWebsocketWriter creates a writer sending messages of the given type (websocket.TextMessage or
// websocket.BinaryMessage).
func NewWebsocketWriter(conn *websocket.Conn, messageType int) *WebsocketWriter {
	return &WebsocketWriter{
		conn:        conn,
		messageType: messageType,
	}
}

// Write will take a stream of bytes and send it over a websocket connection as a single message.
func (wsc *WebsocketWriter) Write(p []byte) (int, error) {
	w, err := wsc.conn.NextWriter(wsc.messageType)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	n, err := w.Write(p)
	if err != nil {
		_ = w.Close()
		return n, errors.WithStack(err)
	}
	if err := w.Close(); err != nil {
		return n, errors.WithStack(err)
	}
	return n, nil
}
