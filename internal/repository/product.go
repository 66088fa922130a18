package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ProductTable is the externally owned table the post router counts.
const ProductTable = `"Product"`

// Querier is the subset of *pgxpool.Pool the repositories use.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProductRepository reads from the product table.
type ProductRepository struct {
	db Querier
}

func NewProductRepository(db Querier) *ProductRepository {
	return &ProductRepository{db: db}
}

// Count returns the number of rows in the product table.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	query := "SELECT count(*) FROM " + ProductTable
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}
