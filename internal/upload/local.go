package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"yibyerm/internal/models"
)

// LocalStrategy writes files under <storagePath>/original and serves
// them from the /files static route.
type LocalStrategy struct {
	storagePath string
	baseURL     string
}

func NewLocalStrategy(storagePath, baseURL string) *LocalStrategy {
	return &LocalStrategy{storagePath: storagePath, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStrategy) Store(ctx context.Context, f *File, onProgress ProgressFunc) (*models.UploadResult, error) {
	const op = "upload.LocalStrategy.Store"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.New()
	filename := id.String() + strings.ToLower(filepath.Ext(f.Name))
	path := s.OriginalPath(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer dst.Close()

	src := newProgressReader(bytes.NewReader(f.Data), f.Size(), onProgress)
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	result := &models.UploadResult{
		URL:      s.baseURL + "/files/original/" + filename,
		PublicID: id.String(),
		Filename: filename,
		Size:     f.Size(),
		Format:   strings.TrimPrefix(f.ContentType, "image/"),
	}

	if f.IsImage() {
		if conf, _, err := image.DecodeConfig(bytes.NewReader(f.Data)); err == nil {
			result.Width = conf.Width
			result.Height = conf.Height
		}
	}

	return result, nil
}

// OriginalPath maps a stored filename back to its on-disk location.
func (s *LocalStrategy) OriginalPath(filename string) string {
	return filepath.Join(s.storagePath, "original", filename)
}
