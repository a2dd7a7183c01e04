package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"yibyerm/internal/models"
)

// CreateRequest inserts the request with its item snapshots and reserves
// stock, all in one transaction. Stock is restored when the request is
// rejected, cancelled or returned.
func (s *Storage) CreateRequest(ctx context.Context, req *models.BorrowRequest) error {
	const op = "storage.CreateRequest"

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO borrow_requests (id, request_number, user_id, status, purpose, note)
		 VALUES ($1, 'REQ-' || LPAD(nextval('request_number_seq')::text, 6, '0'), $2, $3, $4, $5)
		 RETURNING request_number, created_at, updated_at`,
		req.ID, req.UserID, req.Status, req.Purpose, req.Note).
		Scan(&req.RequestNumber, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}

	for i := range req.Items {
		item := &req.Items[i]
		tag, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock - $2 WHERE id = $1 AND stock >= $2`,
			item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("%s: %v", op, err)
		}
		if tag.RowsAffected() == 0 {
			return models.ErrInsufficientStock
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO request_items (id, request_id, product_id, name, category, quantity)
			 SELECT $1, $2, p.id, p.name, p.category, $3 FROM products p WHERE p.id = $4
			 RETURNING name, category`,
			item.ID, req.ID, item.Quantity, item.ProductID).
			Scan(&item.Name, &item.Category)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrNotFound
			}
			return fmt.Errorf("%s: %v", op, err)
		}
		item.RequestID = req.ID
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	return nil
}

const requestSelect = `
	SELECT r.id, r.request_number, r.user_id, r.status, r.purpose, r.note, r.review_note,
	       r.approved_by, r.approved_at, r.returned_at, r.created_at, r.updated_at,
	       u.name, u.email, COALESCE(d.name, ''), a.name
	FROM borrow_requests r
	JOIN users u ON u.id = r.user_id
	LEFT JOIN departments d ON d.id = u.department_id
	LEFT JOIN users a ON a.id = r.approved_by`

func scanRequest(row pgx.Row) (*models.BorrowRequest, error) {
	var r models.BorrowRequest
	err := row.Scan(&r.ID, &r.RequestNumber, &r.UserID, &r.Status, &r.Purpose, &r.Note, &r.ReviewNote,
		&r.ApprovedBy, &r.ApprovedAt, &r.ReturnedAt, &r.CreatedAt, &r.UpdatedAt,
		&r.UserName, &r.UserEmail, &r.DepartmentName, &r.ApproverName)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Storage) GetRequest(ctx context.Context, id uuid.UUID) (*models.BorrowRequest, error) {
	const op = "storage.GetRequest"

	req, err := scanRequest(s.pool.QueryRow(ctx, requestSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, request_id, product_id, name, category, quantity
		 FROM request_items WHERE request_id = $1 ORDER BY name`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.RequestItem
		if err := rows.Scan(&item.ID, &item.RequestID, &item.ProductID,
			&item.Name, &item.Category, &item.Quantity); err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		req.Items = append(req.Items, item)
	}
	return req, rows.Err()
}

// ListRequests returns all requests when userID is nil (admin view),
// otherwise only the given user's. Status filters when non-empty.
func (s *Storage) ListRequests(ctx context.Context, userID *uuid.UUID, status models.RequestStatus) ([]models.BorrowRequest, error) {
	const op = "storage.ListRequests"

	query := requestSelect
	args := []any{}
	where := ""
	if userID != nil {
		args = append(args, *userID)
		where = fmt.Sprintf(" WHERE r.user_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		if where == "" {
			where = fmt.Sprintf(" WHERE r.status = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND r.status = $%d", len(args))
		}
	}
	query += where + ` ORDER BY r.created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	var out []models.BorrowRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

// TransitionRequest moves a request from one of the allowed source
// statuses to the target status. The guard lives in the UPDATE itself so
// concurrent reviews cannot double-apply.
func (s *Storage) TransitionRequest(ctx context.Context, id uuid.UUID, from []models.RequestStatus, to models.RequestStatus, reviewer *uuid.UUID, reviewNote string) error {
	const op = "storage.TransitionRequest"

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	defer tx.Rollback(ctx)

	var now *time.Time
	if to == models.RequestApproved || to == models.RequestRejected {
		t := time.Now()
		now = &t
	}

	query := `UPDATE borrow_requests
	          SET status = $2, updated_at = CURRENT_TIMESTAMP`
	args := []any{id, to}
	if reviewer != nil {
		args = append(args, reviewer, now)
		query += fmt.Sprintf(", approved_by = $%d, approved_at = $%d", len(args)-1, len(args))
	}
	if to == models.RequestCompleted {
		query += ", returned_at = CURRENT_TIMESTAMP"
	}
	// The requester's note is never touched; the reviewer's remark has
	// its own column.
	if reviewNote != "" {
		args = append(args, reviewNote)
		query += fmt.Sprintf(", review_note = $%d", len(args))
	}
	statuses := make([]string, len(from))
	for i, st := range from {
		statuses[i] = string(st)
	}
	args = append(args, statuses)
	query += fmt.Sprintf(" WHERE id = $1 AND status = ANY($%d)", len(args))

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or in the wrong state; distinguish for the caller.
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM borrow_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("%s: %v", op, err)
		}
		if !exists {
			return models.ErrNotFound
		}
		return models.ErrInvalidStatus
	}

	// Terminal transitions hand the reserved stock back.
	if to == models.RequestRejected || to == models.RequestCancelled || to == models.RequestCompleted {
		_, err = tx.Exec(ctx,
			`UPDATE products p SET stock = p.stock + i.quantity
			 FROM request_items i WHERE i.request_id = $1 AND i.product_id = p.id`, id)
		if err != nil {
			return fmt.Errorf("%s: %v", op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	return nil
}

func (s *Storage) GetAdminStats(ctx context.Context) (*models.AdminStats, error) {
	const op = "storage.GetAdminStats"

	stats := &models.AdminStats{RequestsByStat: map[string]int{}}

	var err error
	if stats.TotalUsers, err = s.CountUsers(ctx); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	if stats.TotalProducts, err = s.CountProducts(ctx); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM borrow_requests GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		stats.RequestsByStat[status] = n
		stats.TotalRequests += n
	}
	return stats, rows.Err()
}
