package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"yibyerm/internal/models"
)

// CloudinaryStrategy uploads straight to Cloudinary's unsigned upload
// endpoint and maps its response into the common UploadResult shape.
type CloudinaryStrategy struct {
	cloudName string
	preset    string
	folder    string
	client    *http.Client

	// endpoint overrides the Cloudinary URL in tests.
	endpoint string
}

func NewCloudinaryStrategy(cloudName, preset, folder string, timeout time.Duration) *CloudinaryStrategy {
	return &CloudinaryStrategy{
		cloudName: cloudName,
		preset:    preset,
		folder:    folder,
		client:    &http.Client{Timeout: timeout},
	}
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Bytes     int64  `json:"bytes"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *CloudinaryStrategy) Store(ctx context.Context, f *File, onProgress ProgressFunc) (*models.UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", f.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %v", err)
	}
	if _, err := part.Write(f.Data); err != nil {
		return nil, fmt.Errorf("failed to build upload request: %v", err)
	}
	writer.WriteField("upload_preset", s.preset)
	writer.WriteField("folder", s.folder)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload request: %v", err)
	}

	url := s.endpoint
	if url == "" {
		url = fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", s.cloudName)
	}

	total := int64(body.Len())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		url, newProgressReader(&body, total, onProgress))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = total

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, models.ErrRateLimited
	}

	var parsed cloudinaryResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && parsed.Error.Message != "" {
			return nil, fmt.Errorf("upload failed: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("upload failed: HTTP %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("upload failed: invalid response: %v", decodeErr)
	}

	return &models.UploadResult{
		URL:      parsed.SecureURL,
		PublicID: parsed.PublicID,
		Filename: f.Name,
		Size:     parsed.Bytes,
		Width:    parsed.Width,
		Height:   parsed.Height,
		Format:   parsed.Format,
	}, nil
}
