package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/bokysan/codecs/enc"
	"github.com/bokysan/codecs/internal/streams"
	"github.com/go-chi/chi"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// maxCloseReason is the longest reason which fits into a close frame
const maxCloseReason = 123

const writeWait = 10 * time.Second

// connections keeps track of the upgraded websockets. http.Server.Shutdown does not see hijacked connections, so
// they are closed separately.
type connections struct {
	mu      sync.Mutex
	conns   map[*websocket.Conn]struct{}
	closing bool
}

func newConnections() *connections {
	return &connections{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// add registers the connection. Returns false if the server is already shutting down.
func (c *connections) add(conn *websocket.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closing {
		return false
	}
	c.conns[conn] = struct{}{}
	return true
}

func (c *connections) remove(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.conns, conn)
}

// closeAll sends a "going away" close frame to every open websocket and closes it
func (c *connections) closeAll() {
	c.mu.Lock()
	c.closing = true
	conns := make([]*websocket.Conn, 0, len(c.conns))
	for conn := range c.conns {
		conns = append(conns, conn)
	}
	c.mu.Unlock()

	for _, conn := range conns {
		log.Debugf("Closing websocket %v", conn.RemoteAddr())
		_ = conn.WriteControl(websocket.CloseMessage,
			closeMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
	}
}

func (c *connections) isClosing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closing
}

func newUpgrader(enableCompression bool) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:    enc.BufferSize,
		WriteBufferSize:   enc.BufferSize,
		EnableCompression: enableCompression,
	}
}

func closeMessage(code int, reason string) []byte {
	if len(reason) > maxCloseReason {
		reason = reason[:maxCloseReason]
	}
	return websocket.FormatCloseMessage(code, reason)
}

// websocket handles `/ws/{direction}/{codec}`. Every message received is encoded (or decoded) on its own and the
// result is sent back: encoded text as text messages, decoded data as binary messages. Input which can not be
// decoded closes the connection with status 1007.
func (h *handlers) websocket(w http.ResponseWriter, r *http.Request) {
	direction := chi.URLParam(r, "direction")
	if direction != "encode" && direction != "decode" {
		http.Error(w, "Unknown direction: "+direction, http.StatusNotFound)
		return
	}

	e, status, err := encoderFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	c, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Errorf("Socket upgrade failed: %+v", err)
		return
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.WithError(err).Debugf("Failed closing the websocket: %v", err)
		}
	}()
	if !h.connections.add(c) {
		_ = c.WriteControl(websocket.CloseMessage,
			closeMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		return
	}
	defer h.connections.remove(c)
	c.SetReadLimit(h.maxBodySize)

	log.Debugf("New websocket client %v: %v with %v", c.RemoteAddr(), direction, e)

	var out *streams.WebsocketWriter
	if direction == "encode" {
		out = streams.NewWebsocketWriter(c, websocket.TextMessage)
	} else {
		out = streams.NewWebsocketWriter(c, websocket.BinaryMessage)
	}

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && !h.connections.isClosing() {
				log.WithError(err).Warnf("Websocket read error: %v", err)
			}
			return
		}

		var result []byte
		if direction == "encode" {
			result = e.Encode(message)
		} else if result, err = e.Decode(message); err != nil {
			log.Debugf("Closing websocket, invalid %v input: %v", e, err)
			_ = c.WriteControl(websocket.CloseMessage,
				closeMessage(websocket.CloseInvalidFramePayloadData, err.Error()),
				time.Now().Add(writeWait))
			return
		}

		if _, err := out.Write(result); err != nil {
			log.WithError(err).Warnf("Websocket write error: %v", err)
			return
		}
	}
}
