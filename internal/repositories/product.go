package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/clima-dashboard/internal/logger"
	"github.com/sbilibin2017/clima-dashboard/internal/models"
)

// ProductWriteRepository inserts products.
type ProductWriteRepository struct {
	db *sqlx.DB
}

func NewProductWriteRepository(db *sqlx.DB) *ProductWriteRepository {
	return &ProductWriteRepository{db: db}
}

// Save inserts p and returns the stored row.
func (r *ProductWriteRepository) Save(ctx context.Context, p models.Product) (*models.Product, error) {
	const query = `
		INSERT INTO products (name, description, stock, type, color, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, name, description, stock, type, color, price, created_at
	`
	args := []any{p.Name, p.Description, p.Stock, p.Type, p.Color, p.Price}

	var product models.Product
	err := r.db.GetContext(ctx, &product, query, args...)

	// Log with query in single line
	logger.Log.Infow("sql query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", product.ID,
		"error", err,
	)

	if err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}
