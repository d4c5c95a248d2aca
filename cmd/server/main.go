package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/notify"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/pkg/auth"
)

func main() {
	logging.Setup()
	if err := run(); err != nil {
		logging.Fatal("server stopped", "error", err)
	}
}

// run は依存を組み立ててサーバーを起動する。エラーを返す前に defer で接続を閉じる
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL, repository.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	// NATS 通知（未設定の場合は無効）
	checks := map[string]handler.Pinger{"database": pool}
	var notifier notify.Notifier = notify.Noop{}
	if cfg.NatsURL != "" {
		nn, err := notify.NewNatsNotifier(cfg.NatsURL)
		if err != nil {
			return err
		}
		defer nn.Close()
		notifier = nn
		checks["nats"] = nn
	}

	messageRepo := repository.NewPgMessageRepository(pool)
	messageService := service.NewMessageService(messageRepo, notifier, cfg.OwnerName)

	h := handler.New(cfg.FrontendURL, checks)
	messageHandler := handler.NewMessageHandler(messageService)
	sectionHandler := handler.NewSectionHandler(cfg.ContentDir)

	// 管理画面の認証（AUTH_REQUIRED=false の場合は誰でもアクセス可能）
	wrapAdmin := auth.OpenAuth(cfg.AdminUserID)
	if cfg.AuthRequired {
		wrapAdmin = auth.RequireAuth(auth.SessionSecretBytes(cfg.SessionSecret), cfg.AdminUserID)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/sections/{name}", sectionHandler.Section)
	mux.HandleFunc("POST /api/contact", messageHandler.Submit)

	mux.Handle("GET /api/admin/dashboard", wrapAdmin(http.HandlerFunc(messageHandler.Dashboard)))
	mux.Handle("GET /api/admin/messages", wrapAdmin(http.HandlerFunc(messageHandler.List)))
	mux.Handle("GET /api/admin/messages/{id}", wrapAdmin(http.HandlerFunc(messageHandler.Get)))
	mux.Handle("PATCH /api/admin/messages/{id}/status", wrapAdmin(http.HandlerFunc(messageHandler.UpdateStatus)))
	mux.Handle("DELETE /api/admin/messages/{id}", wrapAdmin(http.HandlerFunc(messageHandler.Delete)))
	mux.Handle("GET /api/admin/messages/{id}/reply", wrapAdmin(http.HandlerFunc(messageHandler.Reply)))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler.RequestID(handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux)))),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	slog.Info("server listening", "addr", server.Addr, "auth_required", cfg.AuthRequired)
	return serve(server, server.ListenAndServe, quit, cfg.ShutdownTimeout)
}

// serve runs listen until it fails or a signal arrives on quit, then shuts
// the server down within timeout.
func serve(server *http.Server, listen func() error, quit <-chan os.Signal, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		if err := listen(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.Shutdown(ctx)
}
