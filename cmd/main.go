package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/yakoovad/club-api/internal/app"
	"github.com/yakoovad/club-api/internal/config"
	"github.com/yakoovad/club-api/pkg/logger"
)

var version = "dev"

func main() {
	configPath := pflag.String("config", "", "path to a config file (defaults to $CLUBS_CONFIG)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("starting application", zap.String("version", version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log, version)
	if err != nil {
		log.Fatal("failed to build application", zap.Error(err))
	}
	defer a.Close()

	go func() {
		log.Info("server starting", zap.String("address", cfg.Server.Address))
		if err := a.Echo.Start(cfg.Server.Address); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = a.Echo.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down server", zap.Error(err))
	}
}
