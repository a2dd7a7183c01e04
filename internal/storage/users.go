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

func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	const op = "storage.CreateUser"

	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, name, role, department_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING is_active, created_at, updated_at`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.DepartmentID).
		Scan(&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.ErrDuplicate
		}
		return fmt.Errorf("%s: %v", op, err)
	}
	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"

	u, err := s.scanUser(s.pool.QueryRow(ctx, userSelect+` WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	return u, nil
}

func (s *Storage) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage.GetUser"

	u, err := s.scanUser(s.pool.QueryRow(ctx, userSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	return u, nil
}

func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.CountUsers"

	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %v", op, err)
	}
	return n, nil
}

const userSelect = `SELECT id, email, password_hash, name, role, department_id, avatar_url, is_active, created_at, updated_at FROM users`

func (s *Storage) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&u.DepartmentID, &u.AvatarURL, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
