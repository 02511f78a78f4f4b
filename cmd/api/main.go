package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/paperchat/paperchat/internal/config"
	"github.com/paperchat/paperchat/internal/handler"
	chatService "github.com/paperchat/paperchat/internal/service/chat"
	searchService "github.com/paperchat/paperchat/internal/service/search"
	"github.com/paperchat/paperchat/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("path", cfg.Store.Path), zap.Error(err))
	}
	defer st.Close()

	chatSvc := chatService.NewService(st, logger)
	searcher := searchService.NewClient(searchService.Config{
		BaseURL:    cfg.Arxiv.BaseURL,
		MaxResults: cfg.Arxiv.MaxResults,
		Timeout:    cfg.Arxiv.Timeout,
	}, logger)

	router := handler.NewRouter(chatSvc, searcher)

	addr, err := cfg.Server.Addr()
	if err != nil {
		logger.Fatal("invalid server configuration", zap.Error(err))
	}

	startServer(ctx, addr, router, logger)
}

func startServer(ctx context.Context, addr string, router http.Handler, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("paperchat backend listening", zap.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
