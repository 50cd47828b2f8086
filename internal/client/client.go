package client

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"codepair/internal/model"

	"github.com/gorilla/websocket"
)

// ErrClosed means the connection went away before a reply arrived
var ErrClosed = errors.New("connection closed")

// Client speaks the session wire protocol over one websocket. It
// correlates request/reply exchanges by seq and feeds every other
// inbound event into a Projector mirroring the server's view.
type Client struct {
	conn      *websocket.Conn
	projector *Projector

	writeMu sync.Mutex

	mu      sync.Mutex
	seq     int64
	pending map[int64]chan json.RawMessage

	done chan struct{}
}

// Dial connects to a session server websocket endpoint
// (e.g. ws://host:8080/ws) and starts reading events
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		conn:      conn,
		projector: NewProjector(),
		pending:   make(map[int64]chan json.RawMessage),
		done:      make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Close tears down the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// Done is closed once the read loop has exited
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// CreateSession asks the server for a fresh session and returns its id.
// The session:joined snapshot lands in the projector separately.
func (c *Client) CreateSession(ctx context.Context, userName string) (string, error) {
	raw, err := c.request(ctx, model.EventSessionCreate, model.CreateSessionRequest{UserName: userName})
	if err != nil {
		return "", err
	}
	var resp model.CreateSessionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}
	return resp.SessionID, nil
}

// JoinSession joins an existing session. A failed join returns the
// server's error string and leaves the projector untouched.
func (c *Client) JoinSession(ctx context.Context, sessionID, userName string) error {
	raw, err := c.request(ctx, model.EventSessionJoin, model.JoinSessionRequest{
		SessionID: sessionID,
		UserName:  userName,
	})
	if err != nil {
		return err
	}
	var resp model.JoinSessionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return errors.New(resp.Error)
	}
	return nil
}

// SendCodeChange pushes a full-buffer replacement, fire and forget
func (c *Client) SendCodeChange(code string) error {
	return c.write(model.EventCodeChange, 0, model.CodeChangeRequest{Code: code})
}

// SendLanguageChange pushes a language selection, fire and forget
func (c *Client) SendLanguageChange(language string) error {
	return c.write(model.EventLanguageChange, 0, model.LanguageChangeRequest{Language: language})
}

// SendCursorMove pushes the local cursor position, fire and forget
func (c *Client) SendCursorMove(pos model.CursorPosition) error {
	return c.write(model.EventCursorMove, 0, model.CursorMoveRequest{Position: pos})
}

// State returns the mirrored session state, nil before the first join
func (c *Client) State() *model.SessionState {
	return c.projector.State()
}

// Participants returns the mirrored participant list
func (c *Client) Participants() []model.Participant {
	return c.projector.Participants()
}

// RemoteCursors returns the mirrored remote-cursor map
func (c *Client) RemoteCursors() map[string]RemoteCursor {
	return c.projector.RemoteCursors()
}

func (c *Client) request(ctx context.Context, event string, payload interface{}) (json.RawMessage, error) {
	ch := make(chan json.RawMessage, 1)

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.pending[seq] = ch
	c.mu.Unlock()

	if err := c.write(event, seq, payload); err != nil {
		c.dropPending(seq)
		return nil, err
	}

	select {
	case raw := <-ch:
		return raw, nil
	case <-ctx.Done():
		c.dropPending(seq)
		return nil, ctx.Err()
	case <-c.done:
		return nil, ErrClosed
	}
}

func (c *Client) dropPending(seq int64) {
	c.mu.Lock()
	delete(c.pending, seq)
	c.mu.Unlock()
}

func (c *Client) write(event string, seq int64, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg, err := json.Marshal(model.Envelope{Event: event, Seq: seq, Payload: data})
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

func (c *Client) readLoop() {
	defer close(c.done)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg model.Envelope
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		if msg.Seq != 0 {
			c.mu.Lock()
			ch, ok := c.pending[msg.Seq]
			delete(c.pending, msg.Seq)
			c.mu.Unlock()
			if ok {
				ch <- msg.Payload
			}
			continue
		}

		// Malformed pushes are skipped, the next resync repairs the mirror
		_ = c.projector.Apply(msg.Event, msg.Payload)
	}
}
