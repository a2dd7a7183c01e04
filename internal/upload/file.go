package upload

import (
	"strings"
	"time"
)

// File is an in-memory upload candidate. The optimizer may replace Data,
// ContentType and ModTime; Name always survives.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	ModTime     time.Time
}

func (f *File) Size() int64 {
	return int64(len(f.Data))
}

func (f *File) IsImage() bool {
	return strings.HasPrefix(f.ContentType, "image/")
}
