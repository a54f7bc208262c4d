package category

import "context"

// Repository resolves category trails for products.
type Repository interface {
	// Trail returns the category path from the root to the given category,
	// joined with " > ". A missing category yields an empty string.
	Trail(ctx context.Context, categoryID int64) (string, error)
}
