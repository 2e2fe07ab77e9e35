// SPDX-License-Identifier: EPL-2.0

package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Conn is the part of *websocket.Conn the client uses.
type Conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// NewClientID returns a random peer identifier.
func NewClientID() string {
	return uuid.NewString()
}

// Client is a JSON message connection to the relay server.
// Emit is safe for concurrent use; Run must be called from a single
// goroutine.
type Client struct {
	id           string
	conn         Conn
	writeTimeout time.Duration
	logger       *slog.Logger

	mu     sync.Mutex
	closed bool
}

type ClientOption func(*Client)

// WithWriteTimeout bounds every write. Zero disables the deadline.
func WithWriteTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.writeTimeout = d }
}

func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient wraps an established connection.
func NewClient(conn Conn, id string, opts ...ClientOption) *Client {
	c := &Client{
		id:           id,
		conn:         conn,
		writeTimeout: 10 * time.Second,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Dial connects to the relay at rawURL, announcing id as the clientId query
// parameter.
func Dial(ctx context.Context, rawURL, id string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &TransportError{Op: "dial", Err: err}
	}
	q := u.Query()
	q.Set("clientId", id)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, &TransportError{Op: "dial", Err: err}
	}

	return NewClient(conn, id, opts...), nil
}

func (c *Client) ID() string { return c.id }

// Emit sends payload as event.
func (c *Client) Emit(event string, payload any) error {
	msg, err := NewMessage(event, payload)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return &TransportError{Op: "emit " + event, Err: ErrClosed}
	}
	if c.writeTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		return &TransportError{Op: "emit " + event, Err: err}
	}

	c.logger.Debug("relay emit", "event", event, "bytes", len(msg.Data))
	return nil
}

// Run reads messages and passes each to handle until ctx is done or the
// connection ends. A normal close by either side returns nil.
func (c *Client) Run(ctx context.Context, handle func(context.Context, Message)) error {
	stop := context.AfterFunc(ctx, func() { _ = c.Close() })
	defer stop()

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || c.isClosed() {
				return nil
			}
			return &TransportError{Op: "read", Err: err}
		}

		if msg.Event == "" {
			c.logger.Warn("relay message without event")
			continue
		}
		handle(ctx, msg)
	}
}

// Close sends a close frame and closes the connection. It is safe to call
// more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))

	if err := c.conn.Close(); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		return &TransportError{Op: "close", Err: fmt.Errorf("close conn: %w", err)}
	}
	return nil
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}
