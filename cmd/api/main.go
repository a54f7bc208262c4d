package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"channelengine-sync/internal/channelengine"
	"channelengine-sync/internal/config"
	"channelengine-sync/internal/db"
	"channelengine-sync/internal/httpserver"
	categoryrepo "channelengine-sync/internal/repository/category"
	productrepo "channelengine-sync/internal/repository/product"
	settingsrepo "channelengine-sync/internal/repository/settings"
	loginsvc "channelengine-sync/internal/service/login"
	syncsvc "channelengine-sync/internal/service/sync"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, db.Options{MaxConns: cfg.DBMaxConns, PingTimeout: cfg.DBPingTimeout})
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	categoryRepo := categoryrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, categoryRepo, cfg.PlaceholderImageURL, logger)
	settingsStore := settingsrepo.NewPostgres(dbpool, logger)

	apiClient := channelengine.New(cfg.ChannelEngineHost, cfg.ChannelEngineTimeout, logger)
	syncService := syncsvc.New(productRepo, settingsStore, apiClient, logger)
	loginService := loginsvc.New(apiClient, settingsStore, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Sync:  syncService,
		Login: loginService,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Infof("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Errorf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	} else {
		logger.Info("server stopped")
	}
}
