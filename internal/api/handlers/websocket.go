package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"roomlog/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 與 CORS 設定一致，接受任何來源
	},
}

// WebSocketHandler 處理即時紀錄的 WebSocket 連接
type WebSocketHandler struct {
	streamService *service.LogStreamService
	// shutdown 在伺服器關閉時結束，所有串流隨之停止
	shutdown context.Context
	logger   *slog.Logger
}

func NewWebSocketHandler(shutdown context.Context, streamService *service.LogStreamService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		streamService: streamService,
		shutdown:      shutdown,
		logger:        logger,
	}
}

// HandleLogStream 將連線升級為 WebSocket 並推送新增的紀錄
func (h *WebSocketHandler) HandleLogStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失敗時已回應錯誤
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.streamService.HandleConnection(h.shutdown, conn)
}
