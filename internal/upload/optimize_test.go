package upload

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yibyerm/internal/models"
)

func decodeDims(t *testing.T, f *File) (int, int) {
	t.Helper()
	conf, _, err := image.DecodeConfig(bytes.NewReader(f.Data))
	require.NoError(t, err)
	return conf.Width, conf.Height
}

func TestOptimizeClampsWidthThenHeight(t *testing.T) {
	o := NewOptimizer(models.OptimizationConfig{AutoResize: true, MaxWidth: 1920, MaxHeight: 1080})

	out, err := o.Optimize(pngFile(t, "wide.png", 2000, 1000))
	require.NoError(t, err)

	w, h := decodeDims(t, out)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 960, h)
	assert.Equal(t, "image/jpeg", out.ContentType)
	assert.Equal(t, "wide.png", out.Name)
}

func TestOptimizeClampsBothDimensions(t *testing.T) {
	o := NewOptimizer(models.OptimizationConfig{AutoResize: true, MaxWidth: 1920, MaxHeight: 1080})

	// Width clamp alone leaves height at 1440; the second clamp brings
	// it to 1080 and recomputes the width.
	out, err := o.Optimize(pngFile(t, "tall.png", 2000, 1500))
	require.NoError(t, err)

	w, h := decodeDims(t, out)
	assert.Equal(t, 1080, h)
	assert.Equal(t, 1440, w)
}

func TestOptimizeWithinBoundsUntouched(t *testing.T) {
	o := NewOptimizer(models.OptimizationConfig{AutoResize: true, MaxWidth: 1920, MaxHeight: 1080})

	in := pngFile(t, "small.png", 640, 480)
	out, err := o.Optimize(in)
	require.NoError(t, err)
	assert.Same(t, in, out)
}

func TestOptimizeDisabled(t *testing.T) {
	o := NewOptimizer(models.OptimizationConfig{AutoResize: false})

	in := pngFile(t, "big.png", 4000, 3000)
	out, err := o.Optimize(in)
	require.NoError(t, err)
	assert.Same(t, in, out)
}

func TestOptimizeNonImagePassthrough(t *testing.T) {
	o := NewOptimizer(models.OptimizationConfig{AutoResize: true})

	in := &File{Name: "doc.txt", ContentType: "text/plain", Data: []byte("hello")}
	out, err := o.Optimize(in)
	require.NoError(t, err)
	assert.Same(t, in, out)
}

func TestOptimizePNGFormatTarget(t *testing.T) {
	o := NewOptimizer(models.OptimizationConfig{AutoResize: true, MaxWidth: 100, MaxHeight: 100, Format: "png"})

	out, err := o.Optimize(pngFile(t, "big.png", 200, 200))
	require.NoError(t, err)
	assert.Equal(t, "image/png", out.ContentType)

	w, h := decodeDims(t, out)
	assert.Equal(t, 100, w)
	assert.Equal(t, 100, h)
}

func TestOptimizeRejectsGarbage(t *testing.T) {
	o := NewOptimizer(models.OptimizationConfig{AutoResize: true})

	_, err := o.Optimize(&File{Name: "x.png", ContentType: "image/png", Data: []byte("garbage")})
	assert.Error(t, err)
}
