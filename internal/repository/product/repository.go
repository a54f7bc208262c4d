package product

import (
	"context"

	"channelengine-sync/internal/domain"
)

// Repository is the catalog read path the sync consumes, plus the write path
// the importer and seeder feed.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Upsert(ctx context.Context, in UpsertInput) error
}

// UpsertInput is a raw catalog row as imported or seeded, before the image
// and stock joins that produce a domain.Product.
type UpsertInput struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Brand       string
	EAN         string
	Reference   string
	CategoryID  *int64
	ImageURL    string
	Quantity    int
}
