package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"postwatch/internal/pkg/analyzer"
	"postwatch/internal/pkg/config"
	"postwatch/internal/pkg/detector"
	"postwatch/internal/pkg/logger"
	"postwatch/internal/pkg/placeholder"
	"postwatch/internal/pkg/server"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Log.Sync()

	// Each component is constructed exactly once and injected into the
	// server; request handlers hold no state of their own.
	client := placeholder.NewClient(cfg)
	det := detector.New(cfg.ShortTitleThreshold, cfg.SimilarityThreshold, cfg.BotThreshold)
	an := analyzer.New()
	srv := server.New(client, det, an)

	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: srv.Handler(),
	}

	go func() {
		logger.Log.Info("HTTP service listening", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("HTTP service failed", zap.Error(err))
		}
	}()

	// Listen for OS signals to gracefully shut down.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	s := <-sigChan
	logger.Log.Info("Received signal, shutting down", zap.String("signal", s.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Log.Warn("Shutdown did not complete cleanly", zap.Error(err))
	}

	logger.Log.Info("Shutdown complete")
}
