package upload

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"yibyerm/internal/models"
)

// ratioTolerance is the fixed allowed deviation from the configured
// aspect ratio.
const ratioTolerance = 0.10

type Validator struct {
	cfg models.ValidationConfig
}

func NewValidator(cfg models.ValidationConfig) *Validator {
	return &Validator{cfg: cfg.WithDefaults()}
}

// Validate runs the checks in a fixed order and stops at the first
// failure: size, extension, MIME type, pixel dimensions, aspect ratio.
// The image is only decoded when a dimension or ratio check needs it.
// Errors carry user-facing messages.
func (v *Validator) Validate(f *File) error {
	if f.Size() > v.cfg.MaxFileSize {
		return fmt.Errorf("file size exceeds the maximum of %s", FormatSize(v.cfg.MaxFileSize))
	}

	ext := strings.ToLower(filepath.Ext(f.Name))
	if !contains(v.cfg.AllowedExtensions, ext) {
		return fmt.Errorf("file extension %q is not allowed (allowed: %s)",
			ext, strings.Join(v.cfg.AllowedExtensions, ", "))
	}

	if !contains(v.cfg.AllowedMIMETypes, f.ContentType) {
		return fmt.Errorf("file type %q is not allowed", f.ContentType)
	}

	needDims := v.cfg.MaxWidth > 0 || v.cfg.MaxHeight > 0
	needRatio := v.cfg.EnforceRatio && v.cfg.AspectRatio > 0
	if !f.IsImage() || (!needDims && !needRatio) {
		return nil
	}

	conf, _, err := image.DecodeConfig(bytes.NewReader(f.Data))
	if err != nil {
		return fmt.Errorf("unable to read image: %v", err)
	}

	if (v.cfg.MaxWidth > 0 && conf.Width > v.cfg.MaxWidth) ||
		(v.cfg.MaxHeight > 0 && conf.Height > v.cfg.MaxHeight) {
		return fmt.Errorf("image dimensions %dx%d exceed the maximum of %dx%d",
			conf.Width, conf.Height, v.cfg.MaxWidth, v.cfg.MaxHeight)
	}

	if needRatio && conf.Height > 0 {
		ratio := float64(conf.Width) / float64(conf.Height)
		if math.Abs(ratio-v.cfg.AspectRatio)/v.cfg.AspectRatio > ratioTolerance {
			return fmt.Errorf("image aspect ratio %.2f is outside the allowed range (required %.2f, tolerance 10%%)",
				ratio, v.cfg.AspectRatio)
		}
	}

	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// FormatSize renders a byte count the way the limit appears in error
// messages, e.g. "5.0 MB".
func FormatSize(n int64) string {
	const unit = 1024
	switch {
	case n >= unit*unit*unit:
		return fmt.Sprintf("%.1f GB", float64(n)/(unit*unit*unit))
	case n >= unit*unit:
		return fmt.Sprintf("%.1f MB", float64(n)/(unit*unit))
	case n >= unit:
		return fmt.Sprintf("%.1f KB", float64(n)/unit)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
