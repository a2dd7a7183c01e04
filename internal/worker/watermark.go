package worker

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// watermarkText draws semi-transparent text near the bottom-left corner
// of the image. The bundled Go Regular face covers Latin text only.
func watermarkText(src image.Image, text string) (image.Image, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse watermark font: %v", err)
	}

	dst := imaging.Clone(src)
	bounds := dst.Bounds()

	size := float64(bounds.Dx()) / 24
	if size < 12 {
		size = 12
	}

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(size)
	c.SetClip(bounds)
	c.SetDst(dst)
	c.SetSrc(image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 180}))

	pt := freetype.Pt(bounds.Dx()/32, bounds.Dy()-int(size/2))
	if _, err := c.DrawString(text, pt); err != nil {
		return nil, fmt.Errorf("failed to draw watermark: %v", err)
	}
	return dst, nil
}
