package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"yibyerm/internal/models"
)

func (s *Storage) SaveImage(ctx context.Context, img *models.AssetImage) error {
	const op = "storage.SaveImage"

	_, err := s.pool.Exec(ctx,
		`INSERT INTO asset_images (id, status, original_path, thumbnail_path, watermarked_path,
		 width, height, thumbnail_status, watermark_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		img.ID, img.Status, img.OriginalPath, img.ThumbnailPath, img.WatermarkedPath,
		img.Width, img.Height, img.ThumbnailStatus, img.WatermarkStatus)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	return nil
}

func (s *Storage) GetImage(ctx context.Context, id uuid.UUID) (*models.AssetImage, error) {
	const op = "storage.GetImage"

	var img models.AssetImage
	err := s.pool.QueryRow(ctx,
		`SELECT id, status, original_path, thumbnail_path, watermarked_path, width, height,
		 COALESCE(thumbnail_status, 'pending'), COALESCE(watermark_status, 'pending')
		 FROM asset_images WHERE id = $1`, id).
		Scan(&img.ID, &img.Status, &img.OriginalPath, &img.ThumbnailPath, &img.WatermarkedPath,
			&img.Width, &img.Height, &img.ThumbnailStatus, &img.WatermarkStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	return &img, nil
}

func (s *Storage) UpdateImage(ctx context.Context, img *models.AssetImage) error {
	const op = "storage.UpdateImage"

	_, err := s.pool.Exec(ctx,
		`UPDATE asset_images SET status = $2, thumbnail_path = $3, watermarked_path = $4,
		 thumbnail_status = $5, watermark_status = $6 WHERE id = $1`,
		img.ID, img.Status, img.ThumbnailPath, img.WatermarkedPath,
		img.ThumbnailStatus, img.WatermarkStatus)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	return nil
}

func (s *Storage) DeleteImage(ctx context.Context, id uuid.UUID) error {
	const op = "storage.DeleteImage"

	_, err := s.pool.Exec(ctx, `DELETE FROM asset_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	return nil
}
