// Package logging 建立應用程式使用的 slog 日誌器。
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New 依設定建立日誌器，format 為 "text" 時輸出純文字，其餘為 JSON。
// w 為 nil 時寫到 os.Stdout。
func New(level, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With("service", "roomlog")
}

// ParseLevel 將字串轉為 slog.Level，無法辨識時回傳 Info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
