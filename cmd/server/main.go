package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codepair/internal/config"
	"codepair/internal/service"
	"codepair/internal/store"
	"codepair/internal/transport/rest"
	"codepair/internal/transport/ws"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg)
	defer logger.Sync()

	// The store is the single source of truth for all sessions;
	// everything else holds a reference to this one instance.
	sessionStore := store.NewSessionStore()
	hub := ws.NewHub(logger)

	sessionSvc := service.NewSessionService(sessionStore, hub, logger)
	executorSvc := service.NewExecutorService(cfg, logger)

	wsHandler := ws.NewHandler(hub, sessionSvc, logger)

	router := rest.NewRouter(&rest.Container{
		ExecutorService: executorSvc,
		WSHandler:       wsHandler,
		CORSOrigins:     cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen and serve", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func newLogger(cfg *config.Config) *zap.Logger {
	if cfg.LogDev {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}
