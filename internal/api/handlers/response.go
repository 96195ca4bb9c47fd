package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"roomlog/internal/apperr"
)

// Response 是所有 API 回應的共同格式
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Responder 負責輸出成功與失敗的回應
type Responder struct {
	logger *slog.Logger
	// uniformErrors 為 true 時所有錯誤都回傳 400
	uniformErrors bool
}

func NewResponder(logger *slog.Logger, uniformErrors bool) *Responder {
	return &Responder{logger: logger, uniformErrors: uniformErrors}
}

func (r *Responder) OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// Fail 記錄錯誤並輸出失敗回應，訊息直接使用錯誤內容
func (r *Responder) Fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if r.uniformErrors {
		status = http.StatusBadRequest
	}

	r.logger.WarnContext(c.Request.Context(), "request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"kind", apperr.Kind(err),
		"error", err.Error(),
	)
	c.JSON(status, Response{Success: false, Message: err.Error()})
}
