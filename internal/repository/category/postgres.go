package category

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Trail(ctx context.Context, categoryID int64) (string, error) {
	const q = `
WITH RECURSIVE trail AS (
    SELECT id, name, parent_id, 1 AS depth
    FROM categories
    WHERE id = $1
  UNION ALL
    SELECT c.id, c.name, c.parent_id, t.depth + 1
    FROM categories c
    JOIN trail t ON c.id = t.parent_id
)
SELECT name FROM trail ORDER BY depth DESC
`
	rows, err := r.pool.Query(ctx, q, categoryID)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	return strings.Join(names, " > "), nil
}
