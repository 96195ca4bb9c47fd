package handlers

import (
	"github.com/gin-gonic/gin"

	"roomlog/internal/apperr"
	"roomlog/internal/service"
)

// LogHandler 處理進出紀錄的請求
type LogHandler struct {
	logService *service.LogService
	resp       *Responder
}

func NewLogHandler(logService *service.LogService, resp *Responder) *LogHandler {
	return &LogHandler{logService: logService, resp: resp}
}

// AppendLogInput 定義新增紀錄的請求，timestamp 可省略
type AppendLogInput struct {
	UserID    string     `json:"userId"`
	Room      string     `json:"room"`
	Timestamp *Timestamp `json:"timestamp"`
}

func (h *LogHandler) Append(c *gin.Context) {
	var input AppendLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.Fail(c, apperr.Validation(err.Error()))
		return
	}

	entry, err := h.logService.Append(c.Request.Context(), input.UserID, input.Room, input.Timestamp.Ptr())
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	h.resp.OK(c, "Successfully added log", entry)
}

func (h *LogHandler) List(c *gin.Context) {
	entries, err := h.logService.ListAll(c.Request.Context())
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	h.resp.OK(c, "Found all logs", entries)
}

func (h *LogHandler) ListByUser(c *gin.Context) {
	entries, err := h.logService.ListByUserID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	h.resp.OK(c, "Found logs for user", entries)
}

func (h *LogHandler) Delete(c *gin.Context) {
	if err := h.logService.Delete(c.Request.Context(), c.Param("logId")); err != nil {
		h.resp.Fail(c, err)
		return
	}

	h.resp.OK(c, "Successfully deleted log", nil)
}
