// Package metrics 定義 Prometheus 指標。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests 依路由、方法與狀態碼計算請求數
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roomlog_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"route", "method", "status"})

	// HTTPDuration 記錄請求處理時間
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roomlog_http_request_duration_seconds",
		Help:    "Histogram of HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// AuthAttempts 依操作與結果計算註冊、登入次數
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roomlog_auth_attempts_total",
		Help: "Total number of registration and login attempts",
	}, []string{"operation", "result"})

	// LogEntriesAppended 計算新增的進出紀錄
	LogEntriesAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roomlog_log_entries_appended_total",
		Help: "Total number of room access log entries appended",
	})

	// FeedSubscribers 是目前的即時紀錄訂閱者數量
	FeedSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roomlog_feed_subscribers",
		Help: "Number of connected live log feed subscribers",
	})
)

// RecordAuth 記錄一次認證操作的結果，result 為錯誤種類碼或 "ok"
func RecordAuth(operation, result string) {
	if result == "" {
		result = "ok"
	}
	AuthAttempts.WithLabelValues(operation, result).Inc()
}
