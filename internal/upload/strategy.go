package upload

import (
	"context"

	"yibyerm/internal/models"
)

// Strategy persists an accepted, optimized file. Exactly two
// implementations exist: local disk and Cloudinary. The strategy is
// chosen once at service construction, never per call.
type Strategy interface {
	Store(ctx context.Context, f *File, onProgress ProgressFunc) (*models.UploadResult, error)
}
