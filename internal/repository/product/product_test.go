package product

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"channelengine-sync/internal/domain"
	"channelengine-sync/internal/migrate"
	categoryrepo "channelengine-sync/internal/repository/category"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping database integration test")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect test db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(ctx, `TRUNCATE product_images, stock_available, products, categories, configuration`)
	if err != nil {
		t.Fatalf("reset tables: %v", err)
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestPostgres_UpsertListGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	var home, kitchen int64
	if err := pool.QueryRow(ctx, `INSERT INTO categories (name) VALUES ('Home') RETURNING id`).Scan(&home); err != nil {
		t.Fatalf("insert category: %v", err)
	}
	if err := pool.QueryRow(ctx, `INSERT INTO categories (name, parent_id) VALUES ('Kitchen', $1) RETURNING id`, home).Scan(&kitchen); err != nil {
		t.Fatalf("insert category: %v", err)
	}

	repo := NewPostgres(pool, categoryrepo.NewPostgres(pool), "path/to/default-image.jpg", quietLogger())

	if err := repo.Upsert(ctx, UpsertInput{
		ID:         1,
		Name:       "Mug",
		Price:      9.99,
		Brand:      "DemoWare",
		CategoryID: &kitchen,
		ImageURL:   "https://cdn.example.com/mug.jpg",
		Quantity:   3,
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Upsert(ctx, UpsertInput{ID: 2, Name: "Tee", Price: 19.99}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 products, got %d", len(list))
	}
	if list[0].ID != 1 || list[1].ID != 2 {
		t.Fatalf("unexpected order: %+v", list)
	}
	if list[0].CategoryTrail != "Home > Kitchen" {
		t.Fatalf("expected trail 'Home > Kitchen', got %q", list[0].CategoryTrail)
	}
	if list[1].ImageURL != "path/to/default-image.jpg" {
		t.Fatalf("expected placeholder image for product without cover, got %q", list[1].ImageURL)
	}

	got, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Mug" || got.Quantity != 3 || got.ImageURL != "https://cdn.example.com/mug.jpg" {
		t.Fatalf("unexpected product %+v", got)
	}
}

func TestPostgres_QuantityIsFresh(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, categoryrepo.NewPostgres(pool), "", quietLogger())
	if err := repo.Upsert(ctx, UpsertInput{ID: 1, Name: "Mug", Price: 9.99, Quantity: 3}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if _, err := pool.Exec(ctx, `UPDATE stock_available SET quantity = 0 WHERE product_id = 1`); err != nil {
		t.Fatalf("update stock: %v", err)
	}

	got, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Quantity != 0 {
		t.Fatalf("expected fresh quantity 0, got %d", got.Quantity)
	}
}

func TestPostgres_GetMissing(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, categoryrepo.NewPostgres(pool), "", quietLogger())

	_, err := repo.GetByID(ctx, 404)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
