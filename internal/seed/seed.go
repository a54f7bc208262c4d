package seed

import (
	"context"
	"fmt"

	"channelengine-sync/internal/repository/product"
	"github.com/jackc/pgx/v5/pgxpool"
)

type categorySeed struct {
	ID       int64
	Name     string
	ParentID *int64
}

// Apply inserts a small demo catalog for manual testing. It is idempotent
// via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool, products product.Repository) error {
	home, kitchen, apparel := int64(1), int64(2), int64(3)
	categories := []categorySeed{
		{ID: home, Name: "Home"},
		{ID: kitchen, Name: "Kitchen", ParentID: &home},
		{ID: apparel, Name: "Apparel"},
	}
	for _, c := range categories {
		if err := upsertCategory(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Name, err)
		}
	}

	rows := []product.UpsertInput{
		{
			ID:          1,
			Name:        "Demo Mug",
			Description: "Ceramic mug with demo logo",
			Price:       9.99,
			Brand:       "DemoWare",
			EAN:         "4006381333931",
			Reference:   "MUG-001",
			CategoryID:  &kitchen,
			ImageURL:    "https://cdn.example.com/products/demo-mug.jpg",
			Quantity:    42,
		},
		{
			ID:          2,
			Name:        "Demo T-Shirt",
			Description: "Soft cotton tee for demo purposes",
			Price:       19.99,
			CategoryID:  &apparel,
			Quantity:    17,
		},
		{
			ID:       3,
			Name:     "Mystery Box",
			Price:    4.5,
			Quantity: 0,
		},
	}
	for _, p := range rows {
		if err := products.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %d: %w", p.ID, err)
		}
	}

	return fixSequences(ctx, pool)
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, c categorySeed) error {
	const q = `
INSERT INTO categories (id, name, parent_id)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, parent_id = EXCLUDED.parent_id
`
	_, err := pool.Exec(ctx, q, c.ID, c.Name, c.ParentID)
	return err
}

// fixSequences realigns the serial sequences after inserting explicit ids.
func fixSequences(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
SELECT setval(pg_get_serial_sequence('products', 'id'), COALESCE(MAX(id), 1)) FROM products;
`
	if _, err := pool.Exec(ctx, q); err != nil {
		return err
	}
	const cq = `
SELECT setval(pg_get_serial_sequence('categories', 'id'), COALESCE(MAX(id), 1)) FROM categories;
`
	_, err := pool.Exec(ctx, cq)
	return err
}
