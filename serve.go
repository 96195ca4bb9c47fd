package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"roomlog/internal/api"
	"roomlog/internal/feed"
	"roomlog/internal/logging"
	"roomlog/internal/repository"
	"roomlog/internal/service"
	"roomlog/internal/storage"
	"roomlog/pkg/config"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (default: ./pkg/config/config.yaml)")
	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	// 載入應用程式配置
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, nil)
	slog.SetDefault(logger)

	// 初始化資料庫連接，程式結束時關閉
	repos, closeStore, err := openStore(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()
	logger.Info("store ready", "driver", cfg.DB.Driver)

	hub := feed.NewHub(feed.DefaultBuffer)
	defer hub.Close()

	services := service.NewServices(repos, hub, logger, service.Options{
		BcryptCost:        cfg.Auth.BcryptCost,
		EnforceRoomAccess: cfg.Log.EnforceRoomAccess,
	})

	// 設置 Gin 路由
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	api.SetupRoutes(r, services, logger, api.RouteOptions{
		UniformErrors: cfg.Server.UniformErrors,
		Shutdown:      ctx,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.Server.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to run server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore 依設定的驅動程式建立 repositories，回傳的 close 負責釋放連線
func openStore(ctx context.Context, cfg config.DBConfig) (*repository.Repositories, func() error, error) {
	switch cfg.Driver {
	case "mongo", "mongodb":
		db, err := storage.NewMongoDB(ctx, cfg.URI, cfg.Name)
		if err != nil {
			return nil, nil, err
		}
		repos, err := repository.NewMongoRepositories(ctx, db)
		if err != nil {
			_ = db.Close(context.Background())
			return nil, nil, fmt.Errorf("failed to create indexes: %w", err)
		}
		return repos, func() error { return db.Close(context.Background()) }, nil

	case "postgres", "sqlite":
		var (
			db  *storage.SQLDB
			err error
		)
		if cfg.Driver == "sqlite" {
			db, err = storage.NewSQLiteDB(cfg.Path)
		} else {
			db, err = storage.NewPostgresDB(storage.PostgresOptions{
				Host:     cfg.Host,
				User:     cfg.User,
				Password: cfg.Password,
				Name:     cfg.Name,
				Port:     cfg.Port,
				SSLMode:  cfg.SSLMode,
			})
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		// 自動建立 users 與 logs 資料表
		if err := repository.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to auto migrate database: %w", err)
		}
		return repository.NewRepositories(db), db.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
}
