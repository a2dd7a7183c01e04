package upload

import (
	"io"
	"math"

	"yibyerm/internal/models"
)

// ProgressFunc receives transfer snapshots while an upload is in flight.
type ProgressFunc func(models.UploadProgress)

// progressReader counts bytes as a strategy consumes them and reports
// each read to the callback.
type progressReader struct {
	r      io.Reader
	total  int64
	loaded int64
	fn     ProgressFunc
}

func newProgressReader(r io.Reader, total int64, fn ProgressFunc) io.Reader {
	if fn == nil {
		return r
	}
	return &progressReader{r: r, total: total, fn: fn}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.loaded += int64(n)
		pct := 0.0
		if p.total > 0 {
			pct = math.Round(float64(p.loaded)/float64(p.total)*10000) / 100
		}
		p.fn(models.UploadProgress{Loaded: p.loaded, Total: p.total, Percentage: pct})
	}
	return n, err
}
