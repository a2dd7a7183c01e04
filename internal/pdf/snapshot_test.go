package pdf

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFromImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 400, 300))))

	data, err := testGenerator().GenerateFromImage(&buf, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data[:5]), "%PDF-"))
}

func TestGenerateFromImageTallerThanPage(t *testing.T) {
	// Very tall content is compressed onto a single page, not split.
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 200, 4000))))

	data, err := testGenerator().GenerateFromImage(&buf, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestGenerateFromImageInvalidInput(t *testing.T) {
	_, err := testGenerator().GenerateFromImage(strings.NewReader("not an image"), nil)
	assert.Error(t, err)
}
