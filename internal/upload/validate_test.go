package upload

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yibyerm/internal/models"
)

func pngFile(t *testing.T, name string, w, h int) *File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))))
	return &File{Name: name, ContentType: "image/png", Data: buf.Bytes()}
}

func TestValidateSizeLimit(t *testing.T) {
	v := NewValidator(models.ValidationConfig{MaxFileSize: 5 * 1024 * 1024})

	f := &File{Name: "photo.jpg", ContentType: "image/jpeg", Data: make([]byte, 6*1024*1024)}
	err := v.Validate(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5")
	assert.Contains(t, err.Error(), "MB")
}

func TestValidateExtension(t *testing.T) {
	v := NewValidator(models.ValidationConfig{})

	err := v.Validate(&File{Name: "report.PDF", ContentType: "image/png", Data: []byte{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".pdf")
}

func TestValidateMIMEType(t *testing.T) {
	v := NewValidator(models.ValidationConfig{})

	err := v.Validate(&File{Name: "photo.png", ContentType: "application/pdf", Data: []byte{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application/pdf")
}

func TestValidateDimensions(t *testing.T) {
	v := NewValidator(models.ValidationConfig{MaxWidth: 80, MaxHeight: 80})

	assert.Error(t, v.Validate(pngFile(t, "big.png", 100, 50)))
	assert.NoError(t, v.Validate(pngFile(t, "ok.png", 80, 50)))
}

func TestValidateAspectRatio(t *testing.T) {
	v := NewValidator(models.ValidationConfig{AspectRatio: 2.0, EnforceRatio: true})

	// Exactly the target ratio passes.
	assert.NoError(t, v.Validate(pngFile(t, "exact.png", 100, 50)))
	// 20% off the target is outside the 10% tolerance.
	assert.Error(t, v.Validate(pngFile(t, "off.png", 120, 50)))
	// 5% off stays within tolerance.
	assert.NoError(t, v.Validate(pngFile(t, "close.png", 105, 50)))
}

func TestValidateSkipsDecodeWhenNoDimensionLimits(t *testing.T) {
	v := NewValidator(models.ValidationConfig{})

	// Not decodable, but no dimension or ratio check is configured.
	f := &File{Name: "photo.png", ContentType: "image/png", Data: []byte("not an image")}
	assert.NoError(t, v.Validate(f))
}

func TestValidateOrderSizeFirst(t *testing.T) {
	v := NewValidator(models.ValidationConfig{MaxFileSize: 10})

	// Bad extension too, but the size failure must win.
	err := v.Validate(&File{Name: "x.exe", ContentType: "application/x-dosexec", Data: make([]byte, 11)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file size")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "5.0 MB", FormatSize(5*1024*1024))
	assert.Equal(t, "1.5 KB", FormatSize(1536))
	assert.Equal(t, "2.0 GB", FormatSize(2*1024*1024*1024))
	assert.Equal(t, "512 B", FormatSize(512))
}
