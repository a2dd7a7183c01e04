package upload

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"yibyerm/internal/models"
)

// Service runs the full pipeline for one file: validate, optimize,
// store. It never retries; a validation failure aborts before any
// storage call is made.
type Service struct {
	validator *Validator
	optimizer *Optimizer
	strategy  Strategy
	log       *zap.Logger
}

func NewService(cfg models.UploadConfig, strategy Strategy, log *zap.Logger) *Service {
	cfg = cfg.WithDefaults()
	return &Service{
		validator: NewValidator(cfg.Validation),
		optimizer: NewOptimizer(cfg.Optimization),
		strategy:  strategy,
		log:       log,
	}
}

// NewStrategy builds the strategy the config names. The choice is made
// here, once, not per upload.
func NewStrategy(cfg models.UploadConfig, storagePath, baseURL string) (Strategy, error) {
	cfg = cfg.WithDefaults()
	switch cfg.Strategy {
	case "local":
		return NewLocalStrategy(storagePath, baseURL), nil
	case "cloudinary":
		if cfg.CloudinaryCloudName == "" || cfg.CloudinaryPreset == "" {
			return nil, fmt.Errorf("cloudinary strategy requires cloud name and upload preset")
		}
		return NewCloudinaryStrategy(cfg.CloudinaryCloudName, cfg.CloudinaryPreset,
			cfg.CloudinaryFolder, cfg.Timeout()), nil
	default:
		return nil, fmt.Errorf("unknown upload strategy %q", cfg.Strategy)
	}
}

func (s *Service) Upload(ctx context.Context, f *File, onProgress ProgressFunc) (*models.UploadResult, error) {
	if err := s.validator.Validate(f); err != nil {
		return nil, err
	}

	optimized, err := s.optimizer.Optimize(f)
	if err != nil {
		return nil, err
	}
	if optimized != f {
		s.log.Info("image optimized",
			zap.String("filename", f.Name),
			zap.Int64("original_size", f.Size()),
			zap.Int64("optimized_size", optimized.Size()))
	}

	result, err := s.strategy.Store(ctx, optimized, onProgress)
	if err != nil {
		return nil, err
	}

	s.log.Info("file uploaded",
		zap.String("filename", result.Filename),
		zap.String("public_id", result.PublicID),
		zap.Int64("size", result.Size))
	return result, nil
}

// Validate exposes the validation step alone for callers that check a
// file before committing to an upload.
func (s *Service) Validate(f *File) error {
	return s.validator.Validate(f)
}
