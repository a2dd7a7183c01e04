package pdf

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/go-pdf/fpdf"
)

// GenerateFromImage embeds one raster image into a single PDF page,
// scaled to fit inside the margins while keeping its aspect ratio.
// Content taller than the page is compressed to fit, not split.
func (g *Generator) GenerateFromImage(r io.Reader, opts *Options) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read image: %v", err)
	}

	conf, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode image: %v", err)
	}
	if conf.Width <= 0 || conf.Height <= 0 {
		return nil, fmt.Errorf("image has no dimensions")
	}

	o := opts.withDefaults()
	doc := g.newDocument(o)
	doc.AddPage()

	pageW, pageH := doc.GetPageSize()
	availW := pageW - 2*o.Margin
	availH := pageH - 2*o.Margin

	scale := availW / float64(conf.Width)
	if h := float64(conf.Height) * scale; h > availH {
		scale = availH / float64(conf.Height)
	}
	w := float64(conf.Width) * scale
	h := float64(conf.Height) * scale

	imgOpts := fpdf.ImageOptions{ImageType: strings.ToUpper(format)}
	doc.RegisterImageOptionsReader("snapshot", imgOpts, bytes.NewReader(data))
	doc.ImageOptions("snapshot", o.Margin+(availW-w)/2, o.Margin+(availH-h)/2, w, h, false, imgOpts, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf render failed: %v", err)
	}
	return buf.Bytes(), nil
}
