package main

import (
	"context"
	"flag"
	"os"
	"time"

	"channelengine-sync/internal/config"
	"channelengine-sync/internal/db"
	"channelengine-sync/internal/importer"
	categoryrepo "channelengine-sync/internal/repository/category"
	productrepo "channelengine-sync/internal/repository/product"
	"github.com/sirupsen/logrus"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to catalog CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

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

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	products := productrepo.NewPostgres(pool, categoryrepo.NewPostgres(pool), cfg.PlaceholderImageURL, logger)
	imp := importer.NewCSVImporter(f, products)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed: %v", err)
	}

	logger.Infof("imported %d products in %s", count, time.Since(start).Truncate(time.Millisecond))
}
