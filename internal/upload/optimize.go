package upload

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/disintegration/imaging"

	"yibyerm/internal/models"
)

type Optimizer struct {
	cfg models.OptimizationConfig
}

func NewOptimizer(cfg models.OptimizationConfig) *Optimizer {
	return &Optimizer{cfg: cfg.WithDefaults()}
}

// Optimize resizes an image to fit the configured bounds and re-encodes
// it. Non-images, disabled auto-resize and images already within bounds
// pass through untouched.
//
// The clamp order is width first, then height, recomputing the other
// dimension each time, so neither dimension can end up over its bound.
func (o *Optimizer) Optimize(f *File) (*File, error) {
	if !f.IsImage() || !o.cfg.AutoResize {
		return f, nil
	}

	src, err := imaging.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode image: %v", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= o.cfg.MaxWidth && h <= o.cfg.MaxHeight {
		return f, nil
	}

	newW, newH := w, h
	if newW > o.cfg.MaxWidth {
		newH = int(math.Round(float64(newH) * float64(o.cfg.MaxWidth) / float64(newW)))
		newW = o.cfg.MaxWidth
	}
	if newH > o.cfg.MaxHeight {
		newW = int(math.Round(float64(newW) * float64(o.cfg.MaxHeight) / float64(newH)))
		newH = o.cfg.MaxHeight
	}

	resized := imaging.Resize(src, newW, newH, imaging.Lanczos)

	format := o.cfg.Format
	if format == "auto" {
		format = "jpeg"
	}

	var buf bytes.Buffer
	var contentType string
	switch format {
	case "png":
		err = imaging.Encode(&buf, resized, imaging.PNG)
		contentType = "image/png"
	default:
		err = imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(o.cfg.Quality))
		contentType = "image/jpeg"
	}
	if err != nil {
		return nil, fmt.Errorf("unable to encode image: %v", err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("image encoding produced no data")
	}

	return &File{
		Name:        f.Name,
		ContentType: contentType,
		Data:        buf.Bytes(),
		ModTime:     time.Now(),
	}, nil
}
