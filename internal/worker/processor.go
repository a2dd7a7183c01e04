package worker

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"yibyerm/internal/models"
	"yibyerm/internal/storage"
)

const thumbnailSize = 256

// Processor runs the post-upload steps for a stored product image:
// thumbnail and watermark, each tracked by its own status column.
type Processor struct {
	db          *storage.Storage
	storagePath string
	watermark   string
	log         *zap.Logger
}

func NewProcessor(db *storage.Storage, cfg *models.Config, log *zap.Logger) *Processor {
	return &Processor{
		db:          db,
		storagePath: cfg.StoragePath,
		watermark:   cfg.WatermarkText,
		log:         log,
	}
}

// ProcessImage handles one queued image id. Already-processed ids are
// skipped so redelivered messages stay harmless.
func (p *Processor) ProcessImage(ctx context.Context, idStr string) error {
	const op = "worker.ProcessImage"

	id, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}

	img, err := p.db.GetImage(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	if img.Status != "pending" {
		return nil // Already processed or error
	}

	img.Status = "processing"
	if err := p.db.UpdateImage(ctx, img); err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}

	src, err := imaging.Open(img.OriginalPath)
	if err != nil {
		img.Status = "error"
		p.db.UpdateImage(ctx, img)
		return fmt.Errorf("%s: %v", op, err)
	}

	failed := false

	thumb := imaging.Thumbnail(src, thumbnailSize, thumbnailSize, imaging.Lanczos)
	thumbPath := filepath.Join(p.storagePath, "processed", id.String()+"_thumb.jpg")
	if err := imaging.Save(thumb, thumbPath); err != nil {
		p.log.Error("thumbnail failed", zap.String("id", idStr), zap.Error(err))
		img.ThumbnailStatus = "error"
		failed = true
	} else {
		img.ThumbnailPath = thumbPath
		img.ThumbnailStatus = "done"
	}

	if p.watermark != "" {
		watermarked, err := watermarkText(src, p.watermark)
		if err != nil {
			p.log.Error("watermark failed", zap.String("id", idStr), zap.Error(err))
			img.WatermarkStatus = "error"
			failed = true
		} else {
			wmPath := filepath.Join(p.storagePath, "processed", id.String()+"_watermarked.jpg")
			if err := imaging.Save(watermarked, wmPath); err != nil {
				p.log.Error("watermark save failed", zap.String("id", idStr), zap.Error(err))
				img.WatermarkStatus = "error"
				failed = true
			} else {
				img.WatermarkedPath = wmPath
				img.WatermarkStatus = "done"
			}
		}
	} else {
		img.WatermarkStatus = "done"
	}

	if failed {
		img.Status = "error"
	} else {
		img.Status = "done"
	}
	if err := p.db.UpdateImage(ctx, img); err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}

	p.log.Info("image processed",
		zap.String("id", idStr),
		zap.String("status", img.Status))
	return nil
}
