package product

import (
	"context"

	"channelengine-sync/internal/domain"
	"channelengine-sync/internal/repository/category"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type postgresRepo struct {
	pool           *pgxpool.Pool
	categories     category.Repository
	placeholderURL string
	logger         *logrus.Logger
}

// NewPostgres builds the catalog read path. placeholderURL is substituted
// when a product has no cover image, mirroring the storefront behavior.
func NewPostgres(pool *pgxpool.Pool, categories category.Repository, placeholderURL string, logger *logrus.Logger) Repository {
	if logger == nil {
		logger = logrus.New()
	}
	return &postgresRepo{
		pool:           pool,
		categories:     categories,
		placeholderURL: placeholderURL,
		logger:         logger,
	}
}

// Quantity comes from stock_available at query time so a sync never ships a
// stale count.
const selectColumns = `
SELECT p.id,
       p.name,
       COALESCE(p.description, ''),
       p.price,
       COALESCE(p.brand, ''),
       COALESCE(p.ean, ''),
       COALESCE(p.reference, ''),
       p.category_id,
       i.url,
       COALESCE(s.quantity, 0)
FROM products p
LEFT JOIN product_images i ON i.product_id = p.id AND i.cover
LEFT JOIN stock_available s ON s.product_id = p.id
`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = selectColumns + `ORDER BY p.id ASC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.WithError(err).Error("product repo: list")
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, categoryID, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		if err := r.resolveTrail(ctx, &p, categoryID); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.WithError(err).Error("product repo: list rows")
		return nil, err
	}

	r.logger.WithField("count", len(result)).Debug("product repo: list")
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = selectColumns + `WHERE p.id = $1`

	rows, err := r.pool.Query(ctx, q, id)
	if err != nil {
		r.logger.WithField("id", id).WithError(err).Error("product repo: get")
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		r.logger.WithField("id", id).Debug("product repo: get not found")
		return nil, domain.ErrNotFound
	}

	p, categoryID, err := r.scan(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.resolveTrail(ctx, &p, categoryID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, in UpsertInput) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const productQ = `
INSERT INTO products (id, name, description, price, brand, ean, reference, category_id)
VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    brand = EXCLUDED.brand,
    ean = EXCLUDED.ean,
    reference = EXCLUDED.reference,
    category_id = EXCLUDED.category_id
`
	if _, err := tx.Exec(ctx, productQ,
		in.ID, in.Name, in.Description, in.Price, in.Brand, in.EAN, in.Reference, in.CategoryID,
	); err != nil {
		r.logger.WithField("id", in.ID).WithError(err).Error("product repo: upsert product")
		return err
	}

	if in.ImageURL != "" {
		const imageQ = `
INSERT INTO product_images (product_id, url, cover)
VALUES ($1, $2, TRUE)
ON CONFLICT (product_id) WHERE cover DO UPDATE SET url = EXCLUDED.url
`
		if _, err := tx.Exec(ctx, imageQ, in.ID, in.ImageURL); err != nil {
			r.logger.WithField("id", in.ID).WithError(err).Error("product repo: upsert image")
			return err
		}
	}

	const stockQ = `
INSERT INTO stock_available (product_id, quantity)
VALUES ($1, $2)
ON CONFLICT (product_id) DO UPDATE SET quantity = EXCLUDED.quantity
`
	if _, err := tx.Exec(ctx, stockQ, in.ID, in.Quantity); err != nil {
		r.logger.WithField("id", in.ID).WithError(err).Error("product repo: upsert stock")
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) scan(rows pgx.Rows) (domain.Product, *int64, error) {
	var (
		p          domain.Product
		categoryID *int64
		imageURL   *string
	)
	if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Brand, &p.EAN, &p.Reference, &categoryID, &imageURL, &p.Quantity); err != nil {
		r.logger.WithError(err).Error("product repo: scan")
		return domain.Product{}, nil, err
	}
	if imageURL != nil && *imageURL != "" {
		p.ImageURL = *imageURL
	} else {
		p.ImageURL = r.placeholderURL
	}
	return p, categoryID, nil
}

func (r *postgresRepo) resolveTrail(ctx context.Context, p *domain.Product, categoryID *int64) error {
	if categoryID == nil || r.categories == nil {
		return nil
	}
	trail, err := r.categories.Trail(ctx, *categoryID)
	if err != nil {
		r.logger.WithField("category_id", *categoryID).WithError(err).Error("product repo: resolve trail")
		return err
	}
	p.CategoryTrail = trail
	return nil
}
