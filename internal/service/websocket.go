package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"roomlog/internal/feed"
	"roomlog/internal/metrics"
	"roomlog/internal/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	readLimit  = 4096
)

// LogStreamService 將新增的紀錄透過 WebSocket 推送給客戶端
type LogStreamService struct {
	hub    *feed.Hub
	logger *slog.Logger
}

func NewLogStreamService(hub *feed.Hub, logger *slog.Logger) *LogStreamService {
	return &LogStreamService{hub: hub, logger: logger}
}

// HandleConnection 持續推送紀錄直到連線中斷或 ctx 結束，返回前會關閉連線
func (s *LogStreamService) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	entries, cancel := s.hub.Subscribe()
	metrics.FeedSubscribers.Inc()

	defer func() {
		cancel()
		metrics.FeedSubscribers.Dec()
		conn.Close()
	}()

	done := make(chan struct{})
	go s.readPump(conn, done)
	s.writePump(ctx, conn, entries, done)
}

// readPump 只處理控制訊息，用於偵測客戶端離線
func (s *LogStreamService) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket unexpected close", "error", err)
			}
			return
		}
	}
}

func (s *LogStreamService) writePump(ctx context.Context, conn *websocket.Conn, entries <-chan models.LogEntry, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case entry, ok := <-entries:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(entry); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return

		case <-ctx.Done():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		}
	}
}
