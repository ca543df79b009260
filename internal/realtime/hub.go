package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/smallwins/internal/logging"
)

const (
	pingInterval = 25 * time.Second
	writeTimeout = 10 * time.Second
)

// Event 是推送给客户端的消息
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Client 是某用户的一条 websocket 连接，写操作需串行
type Client struct {
	UserID uint
	conn   *websocket.Conn
	wmu    sync.Mutex
}

// NewClient 包装一条已升级的连接
func NewClient(userID uint, conn *websocket.Conn) *Client {
	return &Client{UserID: userID, conn: conn}
}

func (c *Client) write(messageType int, data []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(messageType, data)
}

// Hub 按用户维护连接，用于推送当天视图的变化
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*Client]struct{}
	logger  logging.Logger
}

// NewHub 构造 Hub
func NewHub(logger logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Hub{clients: make(map[uint]map[*Client]struct{}), logger: logger}
}

// Register 登记连接
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*Client]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

// Unregister 移除连接并关闭
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// Count 返回用户当前的连接数
func (h *Hub) Count(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Broadcast 把事件推送给该用户的所有连接，写失败的连接会被移除
func (h *Hub) Broadcast(ctx context.Context, userID uint, event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		h.logger.Error(ctx, "marshal realtime event", "type", event.Type, "error", err)
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			h.logger.Warn(ctx, "realtime write failed", "user_id", userID, "error", err)
			h.Unregister(c)
		}
	}
}

// Serve 登记连接后阻塞读取，直到客户端断开；期间定时发送 ping。
// onReady 在登记完成后异步调用，可为 nil。
func (h *Hub) Serve(c *Client, onReady func()) {
	h.Register(c)
	defer h.Unregister(c)

	if onReady != nil {
		go onReady()
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := c.write(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
