package room

import (
	"context"
	"errors"
	"sync"
	"telemed-service/internal/app/config"
	"telemed-service/internal/pkg/constvars"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait         = 10 * time.Second
	defaultPongWait   = 60 * time.Second
	defaultBufferSize = 64
)

var ErrClientClosed = errors.New("websocket client closed")

// WebsocketClient adapts a gorilla connection to Transport. Writes are owned
// by WritePump; Send only queues frames.
type WebsocketClient struct {
	conn       *websocket.Conn
	send       chan []byte
	done       chan struct{}
	closeOnce  sync.Once
	limiter    *rate.Limiter
	pongWait   time.Duration
	pingPeriod time.Duration
	maxSize    int64
	log        *zap.Logger
}

func NewWebsocketClient(conn *websocket.Conn, cfg config.AppRealtime, logger *zap.Logger) *WebsocketClient {
	pongWait := time.Duration(cfg.PongWaitInSeconds) * time.Second
	if pongWait <= 0 {
		pongWait = defaultPongWait
	}
	bufferSize := cfg.SendBufferSize
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	limit := rate.Inf
	if cfg.MessagesPerSecond > 0 {
		limit = rate.Limit(cfg.MessagesPerSecond)
	}
	burst := cfg.MessageBurst
	if burst <= 0 {
		burst = 1
	}

	return &WebsocketClient{
		conn:       conn,
		send:       make(chan []byte, bufferSize),
		done:       make(chan struct{}),
		limiter:    rate.NewLimiter(limit, burst),
		pongWait:   pongWait,
		pingPeriod: (pongWait * 9) / 10,
		maxSize:    cfg.MaxMessageSizeInBytes,
		log:        logger,
	}
}

func (c *WebsocketClient) Send(ctx context.Context, payload []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case c.send <- payload:
		return nil
	case <-c.done:
		return ErrClientClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close sends a close frame with code and tears the connection down. Later
// calls are no-ops.
func (c *WebsocketClient) Close(code int, reason string) error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		message := websocket.FormatCloseMessage(code, reason)
		err = c.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait))
		if closeErr := c.conn.Close(); err == nil {
			err = closeErr
		}
	})
	return err
}

// ReadPump blocks reading frames and hands each one within the rate limit to
// onMessage. It returns when the peer goes away or stops answering pings.
func (c *WebsocketClient) ReadPump(onMessage func(message []byte)) {
	if c.maxSize > 0 {
		c.conn.SetReadLimit(c.maxSize)
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.log.Warn("room.WebsocketClient.ReadPump unexpected close", zap.Error(err))
			}
			return
		}

		if !c.limiter.Allow() {
			c.log.Warn("room.WebsocketClient.ReadPump rate limit exceeded, dropping frame",
				zap.Int("frame_size", len(message)),
			)
			continue
		}
		onMessage(message)
	}
}

// WritePump drains queued frames and keeps the connection alive with pings.
func (c *WebsocketClient) WritePump() {
	ticker := time.NewTicker(c.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return

		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.Warn("room.WebsocketClient.WritePump write failed", zap.Error(err))
				_ = c.Close(constvars.RoomCloseServerError, "write failed")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.Close(websocket.CloseGoingAway, "ping failed")
				return
			}
		}
	}
}
