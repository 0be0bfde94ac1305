package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"samsariya/internal/admin"
	"samsariya/internal/analytics"
	"samsariya/internal/commons"
	"samsariya/internal/config"
	"samsariya/internal/infrastructure/logger"
	"samsariya/internal/infrastructure/mongodb"
	"samsariya/internal/inventory"
	"samsariya/internal/notifier"
	"samsariya/internal/order"
	orderrepo "samsariya/internal/order/repository"
	"samsariya/internal/poller"
	"samsariya/internal/server"
	"samsariya/internal/sheets"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := mongodb.NewClient(ctx, cfg.Mongo)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			zapLogger.Warn("disconnecting from database", zap.Error(err))
		}
	}()
	zapLogger.Info("database connected")

	db := client.Database(cfg.Mongo.Database)

	adminChannel := newChannel(cfg.Telegram.AdminToken, "admin bot", zapLogger)
	clientChannel := newChannel(cfg.Telegram.ClientToken, "client bot", zapLogger)

	orderCtrl := order.NewModule(db, clientChannel, zapLogger)
	inventoryCtrl, availability := inventory.NewModule(db, zapLogger)
	analyticsCtrl := analytics.NewModule(db, zapLogger)
	adminCtrl, adminRepo := admin.NewModule(db, adminChannel, cfg, zapLogger)

	if err := availability.Seed(ctx); err != nil {
		zapLogger.Warn("seeding availability", zap.Error(err))
	}

	sheetClient := sheets.NewClient(cfg.Sheets, zapLogger)
	orderPoller := poller.New(
		orderrepo.NewMongoOrderRepository(db),
		poller.NewMemorySeenStore(),
		adminChannel,
		sheetClient,
		cfg.Admins.IDs,
		cfg.Poller.Interval,
		zapLogger,
	)

	pollerDone := make(chan struct{})
	go func() {
		defer close(pollerDone)
		orderPoller.Start(ctx)
	}()

	router := server.NewRouter(server.RouterDeps{
		Orders:    orderCtrl,
		Inventory: inventoryCtrl,
		Analytics: analyticsCtrl,
		Admin:     adminCtrl,
		Directory: adminRepo,
		AdminIDs:  cfg.Admins.IDs,
		Logger:    zapLogger,
	})

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	cancel()
	select {
	case <-pollerDone:
	case <-time.After(cfg.Poller.ShutdownGrace):
		zapLogger.Warn("poller did not stop in time")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}

func newChannel(token, name string, zapLogger *zap.Logger) notifier.Channel {
	if token == "" {
		zapLogger.Warn("bot token not configured, notifications disabled", zap.String("bot", name))
		return notifier.NewDisabledChannel()
	}
	channel, err := notifier.NewTelegramChannel(token)
	if err != nil {
		zapLogger.Warn("creating telegram channel failed, notifications disabled",
			zap.String("bot", name), zap.Error(err))
		return notifier.NewDisabledChannel()
	}
	zapLogger.Info("telegram channel ready", zap.String("bot", name))
	return channel
}
