package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"yibyerm/internal/models"
)

func (s *Storage) CreateProduct(ctx context.Context, p *models.Product) error {
	const op = "storage.CreateProduct"

	err := s.pool.QueryRow(ctx,
		`INSERT INTO products (id, name, category, description, image_url, stock)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Category, p.Description, p.ImageURL, p.Stock).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	return nil
}

func (s *Storage) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	const op = "storage.GetProduct"

	var p models.Product
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, category, description, image_url, stock, created_at, updated_at
		 FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.ImageURL, &p.Stock,
			&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	return &p, nil
}

func (s *Storage) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	const op = "storage.ListProducts"

	query := `SELECT id, name, category, description, image_url, stock, created_at, updated_at
	          FROM products`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY name`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.ImageURL,
			&p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Storage) UpdateProduct(ctx context.Context, p *models.Product) error {
	const op = "storage.UpdateProduct"

	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET name = $2, category = $3, description = $4, image_url = $5,
		 stock = $6, updated_at = CURRENT_TIMESTAMP WHERE id = $1`,
		p.ID, p.Name, p.Category, p.Description, p.ImageURL, p.Stock)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Storage) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	const op = "storage.DeleteProduct"

	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Storage) CountProducts(ctx context.Context) (int, error) {
	const op = "storage.CountProducts"

	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %v", op, err)
	}
	return n, nil
}
