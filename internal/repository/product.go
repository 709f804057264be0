package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/model"
)

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *Repository) ListProducts(ctx context.Context, onlyActive bool) ([]model.Product, error) {
	var products []model.Product
	query := "SELECT * FROM products ORDER BY created_at"
	if onlyActive {
		query = "SELECT * FROM products WHERE is_active ORDER BY created_at"
	}
	err := r.db.SelectContext(ctx, &products, query)
	return products, err
}

func (r *Repository) CreateProduct(ctx context.Context, product *model.Product) error {
	return r.db.QueryRowxContext(ctx, `
		INSERT INTO products (name, description, price, kind, requires_review, giftable, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		product.Name, product.Description, product.Price, product.Kind, product.RequiresReview, product.Giftable, product.IsActive,
	).Scan(&product.ID, &product.CreatedAt)
}
