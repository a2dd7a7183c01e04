package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"yibyerm/internal/models"
)

func (s *Storage) CreateDepartment(ctx context.Context, d *models.Department) error {
	const op = "storage.CreateDepartment"

	err := s.pool.QueryRow(ctx,
		`INSERT INTO departments (id, code, name, faculty) VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		d.ID, d.Code, d.Name, d.Faculty).Scan(&d.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.ErrDuplicate
		}
		return fmt.Errorf("%s: %v", op, err)
	}
	return nil
}

func (s *Storage) GetDepartment(ctx context.Context, id uuid.UUID) (*models.Department, error) {
	const op = "storage.GetDepartment"

	var d models.Department
	err := s.pool.QueryRow(ctx,
		`SELECT id, code, name, faculty, created_at FROM departments WHERE id = $1`, id).
		Scan(&d.ID, &d.Code, &d.Name, &d.Faculty, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	return &d, nil
}

func (s *Storage) ListDepartments(ctx context.Context) ([]models.Department, error) {
	const op = "storage.ListDepartments"

	rows, err := s.pool.Query(ctx,
		`SELECT id, code, name, faculty, created_at FROM departments ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	var out []models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Code, &d.Name, &d.Faculty, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Storage) UpdateDepartment(ctx context.Context, d *models.Department) error {
	const op = "storage.UpdateDepartment"

	tag, err := s.pool.Exec(ctx,
		`UPDATE departments SET code = $2, name = $3, faculty = $4 WHERE id = $1`,
		d.ID, d.Code, d.Name, d.Faculty)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Storage) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	const op = "storage.DeleteDepartment"

	tag, err := s.pool.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
