package main

import (
	"context"
	"os"

	"channelengine-sync/internal/config"
	"channelengine-sync/internal/db"
	categoryrepo "channelengine-sync/internal/repository/category"
	productrepo "channelengine-sync/internal/repository/product"
	"channelengine-sync/internal/seed"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, db.Options{MaxConns: cfg.DBMaxConns, PingTimeout: cfg.DBPingTimeout})
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	products := productrepo.NewPostgres(pool, categoryrepo.NewPostgres(pool), cfg.PlaceholderImageURL, logger)

	if err := seed.Apply(ctx, pool, products); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Info("seed applied")
}
