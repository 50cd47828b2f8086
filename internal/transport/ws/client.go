package ws

import (
	"encoding/json"
	"time"

	"codepair/internal/model"
	"codepair/internal/service"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Full-buffer code updates ride on single frames
	maxMessageSize = 1 << 20

	sendBufferSize = 256
)

// Client is one websocket connection: the transport id, the send queue
// drained by writePump, and the per-connection session protocol state.
type Client struct {
	id      string
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	session *service.Conn
	logger  *zap.Logger
}

func (c *Client) readPump() {
	defer func() {
		c.session.Disconnect()
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read error", zap.String("conn", c.id), zap.Error(err))
			}
			break
		}
		c.dispatch(raw)
	}
}

func (c *Client) dispatch(raw []byte) {
	var msg model.Envelope
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.logger.Debug("malformed message", zap.String("conn", c.id), zap.Error(err))
		return
	}

	switch msg.Event {
	case model.EventSessionCreate:
		var req model.CreateSessionRequest
		if msg.Payload != nil {
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				return
			}
		}
		c.session.Create(req.UserName, c.ack(msg.Event, msg.Seq))

	case model.EventSessionJoin:
		var req model.JoinSessionRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return
		}
		c.session.Join(req, c.ack(msg.Event, msg.Seq))

	case model.EventCodeChange:
		var req model.CodeChangeRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return
		}
		c.session.CodeChange(req)

	case model.EventLanguageChange:
		var req model.LanguageChangeRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return
		}
		c.session.LanguageChange(req)

	case model.EventCursorMove:
		var req model.CursorMoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return
		}
		c.session.CursorMove(req)

	default:
		c.logger.Debug("unknown event", zap.String("conn", c.id), zap.String("event", msg.Event))
	}
}

// ack binds a request's seq so the session layer can reply without
// knowing about the envelope
func (c *Client) ack(event string, seq int64) service.Ack {
	return func(payload interface{}) {
		data, err := encodeMessage(event, seq, payload)
		if err != nil {
			c.logger.Error("encode ack failed", zap.String("event", event), zap.Error(err))
			return
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
