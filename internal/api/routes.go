package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"roomlog/internal/api/handlers"
	"roomlog/internal/middleware"
	"roomlog/internal/service"
)

// RouteOptions 是註冊路由所需的額外設定
type RouteOptions struct {
	// UniformErrors 為 true 時所有失敗都回傳 400
	UniformErrors bool
	// Shutdown 結束時會關閉所有 WebSocket 串流
	Shutdown context.Context
}

func SetupRoutes(r *gin.Engine, services *service.Services, logger *slog.Logger, opts RouteOptions) {
	if opts.Shutdown == nil {
		opts.Shutdown = context.Background()
	}

	// 初始化 handlers
	resp := handlers.NewResponder(logger, opts.UniformErrors)
	userHandler := handlers.NewUserHandler(services.User, resp)
	logHandler := handlers.NewLogHandler(services.Log, resp)
	wsHandler := handlers.NewWebSocketHandler(opts.Shutdown, services.LogStream, logger)

	r.Use(middleware.RequestLogger(logger), middleware.CORS())

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.Response{Success: false, Message: "Route not found"})
	})

	// 基本的健康檢查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := r.Group("/user")
	{
		users.GET("", userHandler.List)
		users.POST("/login", userHandler.Login)
		users.POST("/register", userHandler.Register)
		users.DELETE("/:userId", userHandler.Delete)
	}

	logs := r.Group("/log")
	{
		logs.POST("", logHandler.Append)
		logs.GET("", logHandler.List)
		logs.GET("/:userId", logHandler.ListByUser)
		logs.DELETE("/:logId", logHandler.Delete)
	}

	r.GET("/ws/log", wsHandler.HandleLogStream)
}
