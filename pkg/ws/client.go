// Package ws is the transport primitive: one websocket connection with a
// single-goroutine read loop and automatic redial-and-resubscribe. The
// adapter owns everything above the frame level.
package ws

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"marketfeed/internal/exchange"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Client struct {
	url     string
	adapter exchange.Adapter
	logger  *zap.Logger

	mu   sync.Mutex // guards conn swap and writes
	conn *websocket.Conn

	closed atomic.Bool
}

func NewClient(url string, adapter exchange.Adapter, logger *zap.Logger) *Client {
	return &Client{
		url:     url,
		adapter: adapter,
		logger:  logger,
	}
}

// Connect dials the endpoint and hands the fresh connection to the adapter
// for subscription. It does not start the listener.
func (c *Client) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		c.logger.Error("failed to connect websocket", zap.String("url", c.url), zap.Error(err))
		return err
	}

	c.mu.Lock()
	old := c.conn
	c.conn = conn
	c.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}

	c.logger.Info("websocket connected", zap.String("url", c.url))

	if err := c.adapter.OnConnect(c); err != nil {
		c.logger.Error("failed to subscribe", zap.Error(err))
		return err
	}
	return nil
}

// Send implements exchange.Sender.
func (c *Client) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return errors.New("websocket not connected")
	}
	return c.conn.WriteJSON(v)
}

// Listen delivers frames to the adapter in arrival order until Close. On a
// read error it retries Connect indefinitely, then resumes.
func (c *Client) Listen() {
	for {
		conn := c.current()
		if conn == nil {
			return
		}

		_, frame, err := conn.ReadMessage()
		if err != nil {
			if c.closed.Load() {
				return
			}
			c.logger.Error("websocket read error", zap.Error(err))

			for {
				time.Sleep(3 * time.Second)
				if c.closed.Load() {
					return
				}
				if err := c.Connect(); err != nil {
					c.logger.Warn("retrying reconnect...")
					continue
				}
				c.logger.Info("reconnected successfully")
				break
			}
			continue // resume with the new connection
		}

		c.adapter.OnFrame(c, frame)
	}
}

// ForceReconnect drops the current connection; the listener's reconnect
// path redials and resubscribes. Used by the liveness supervisor.
func (c *Client) ForceReconnect() {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
}

// Close shuts the client down; the listener exits.
func (c *Client) Close() error {
	c.closed.Store(true)
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()
	if conn != nil {
		return conn.Close()
	}
	return nil
}

func (c *Client) current() *websocket.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}
