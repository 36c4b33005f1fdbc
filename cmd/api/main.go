package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golek-ongkir/internal/core/config"
	"golek-ongkir/internal/core/logger"
	"golek-ongkir/internal/core/server"
	locationhandler "golek-ongkir/internal/features/locations/handler"
	shippinghandler "golek-ongkir/internal/features/shipping/handler"
	trackinghandler "golek-ongkir/internal/features/tracking/handler"
	"golek-ongkir/internal/ongkir"

	"go.uber.org/zap"
)

// @title Golek Ongkir API
// @version 1.0
// @description Shipping cost, package tracking and location lookup over the courier aggregation API.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		var cerr *config.ConfigurationError
		if errors.As(err, &cerr) {
			log.Fatalf("Configuration error: %v", cerr)
		}
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	facade, err := ongkir.New(ctx, cfg)
	if err != nil {
		l.Fatal("Failed to initialize shipping API client", zap.Error(err))
	}
	defer func() {
		if err := facade.Close(); err != nil {
			l.Warn("Failed to release resources", zap.Error(err))
		}
	}()

	srv := server.New(cfg)

	// Register Routes
	locationhandler.NewLocationHandler(facade.Locations()).Register(srv.App)
	shippinghandler.NewCostHandler(facade.Shipping()).Register(srv.App)
	trackinghandler.NewTrackingHandler(facade.Tracking()).Register(srv.App)

	go func() {
		<-ctx.Done()
		l.Info("Shutting down server")
		if err := srv.Shutdown(); err != nil {
			l.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
