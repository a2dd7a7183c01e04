package server

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"yibyerm/internal/models"
	"yibyerm/internal/upload"
)

func (s *Server) handleUpload(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "missing multipart field \"image\"")
		return
	}

	// Oversize payloads are rejected before the body is buffered; the
	// validator repeats the check on the bytes it actually gets.
	if header.Size > s.maxUpload {
		fail(c, http.StatusBadRequest,
			fmt.Sprintf("file size exceeds the maximum of %s", upload.FormatSize(s.maxUpload)))
		return
	}

	src, err := header.Open()
	if err != nil {
		failErr(c, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.maxUpload+1))
	if err != nil {
		failErr(c, err)
		return
	}

	f := &upload.File{
		Name:        filepath.Base(header.Filename),
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
		ModTime:     time.Now(),
	}

	result, err := s.uploads.Upload(c.Request.Context(), f, nil)
	if err != nil {
		if err == models.ErrRateLimited {
			failErr(c, err)
			return
		}
		// Pipeline errors carry user-facing validation messages.
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	// Locally stored images get a DB row and are queued for
	// thumbnail/watermark processing.
	if s.local != nil {
		id, err := uuid.Parse(result.PublicID)
		if err == nil {
			img := &models.AssetImage{
				ID:              id,
				Status:          "pending",
				OriginalPath:    s.local.OriginalPath(result.Filename),
				Width:           result.Width,
				Height:          result.Height,
				ThumbnailStatus: "pending",
				WatermarkStatus: "pending",
			}
			if err := s.db.SaveImage(c.Request.Context(), img); err != nil {
				failErr(c, err)
				return
			}
			if err := s.producer.WriteMessages(c.Request.Context(),
				kafka.Message{Value: []byte(id.String())}); err != nil {
				failErr(c, err)
				return
			}
		}
	}

	ok(c, http.StatusOK, result)
}

func (s *Server) handleGetImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid image id")
		return
	}

	img, err := s.db.GetImage(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}

	if img.Status != "done" {
		c.JSON(http.StatusAccepted, gin.H{"success": true, "data": gin.H{"status": img.Status}})
		return
	}
	ok(c, http.StatusOK, img)
}

func (s *Server) handleDeleteImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid image id")
		return
	}

	img, err := s.db.GetImage(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}

	removeFiles(img.OriginalPath, img.ThumbnailPath, img.WatermarkedPath)

	if err := s.db.DeleteImage(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleImagePDF rasterizes an uploaded image into a one-page PDF, the
// server-side counterpart of printing a dashboard element.
func (s *Server) handleImagePDF(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "missing multipart field \"image\"")
		return
	}

	src, err := header.Open()
	if err != nil {
		failErr(c, err)
		return
	}
	defer src.Close()

	data, err := s.receipts.GenerateFromImage(src, nil)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	filename := c.PostForm("filename")
	if filename == "" {
		filename = "snapshot.pdf"
	}
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

func removeFiles(paths ...string) {
	for _, path := range paths {
		if path != "" {
			os.Remove(path)
		}
	}
}
