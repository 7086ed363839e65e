package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"scantrack/internal/pkg/metrics"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = 30 * time.Second
	feedSendBuffer = 256
	feedReadLimit  = 4 << 10
)

// BoardFunc renders the payload pushed to feed clients.
type BoardFunc func(ctx context.Context) ([]byte, error)

// Feed pushes the rendered board to websocket clients whenever the
// snapshot changes and on every elapsed-time tick.
type Feed struct {
	upgrader websocket.Upgrader
	board    BoardFunc
	logger   *zap.Logger

	mu      sync.Mutex
	clients map[*feedClient]struct{}
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func NewFeed(board BoardFunc, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		board:   board,
		logger:  logger,
		clients: make(map[*feedClient]struct{}),
	}
}

// Handle upgrades GET /api/v1/feed and sends the current board at once.
func (f *Feed) Handle(c echo.Context) error {
	conn, err := f.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		f.logger.Warn("websocket upgrade failed", zap.Error(err))
		return nil
	}

	client := &feedClient{conn: conn, send: make(chan []byte, feedSendBuffer)}
	if payload, err := f.board(c.Request().Context()); err == nil {
		client.push(payload)
	} else {
		f.logger.Warn("render board", zap.Error(err))
	}
	f.register(client)

	go f.writePump(client)
	f.readPump(client)
	return nil
}

// Broadcast renders the board once and queues it for every client.
// Clients whose buffer is full are dropped.
func (f *Feed) Broadcast(ctx context.Context) error {
	if f.Clients() == 0 {
		return nil
	}

	payload, err := f.board(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		if !client.push(payload) {
			f.logger.Warn("feed client too slow, disconnecting")
			f.dropLocked(client)
		}
	}
	return nil
}

// Run broadcasts on every update until ctx is done or updates is closed.
func (f *Feed) Run(ctx context.Context, updates <-chan uint64) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			if err := f.Broadcast(ctx); err != nil {
				f.logger.Warn("feed broadcast failed", zap.Error(err))
			}
		}
	}
}

func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Close disconnects every client.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		f.dropLocked(client)
	}
}

func (f *Feed) register(client *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[client] = struct{}{}
	metrics.FeedClients.Set(float64(len(f.clients)))
}

func (f *Feed) unregister(client *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dropLocked(client)
}

func (f *Feed) dropLocked(client *feedClient) {
	if _, ok := f.clients[client]; !ok {
		return
	}
	delete(f.clients, client)
	client.close()
	metrics.FeedClients.Set(float64(len(f.clients)))
}

// readPump discards client messages and detects disconnects.
func (f *Feed) readPump(client *feedClient) {
	defer func() {
		f.unregister(client)
		_ = client.conn.Close()
	}()

	client.conn.SetReadLimit(feedReadLimit)
	_ = client.conn.SetReadDeadline(time.Now().Add(feedPongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(feedPongWait))
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				f.logger.Debug("feed client closed", zap.Error(err))
			}
			return
		}
	}
}

func (f *Feed) writePump(client *feedClient) {
	ticker := time.NewTicker(feedPingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// push never blocks. It reports false when the buffer is full.
func (c *feedClient) push(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *feedClient) close() {
	c.once.Do(func() { close(c.send) })
}
