package models

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	ServerAddr    string       `yaml:"server_addr"`
	DatabaseURL   string       `yaml:"database_url"`
	KafkaBroker   string       `yaml:"kafka_broker"`
	KafkaTopic    string       `yaml:"kafka_topic"`
	StoragePath   string       `yaml:"storage_path"`
	PublicBaseURL string       `yaml:"public_base_url"`
	JWTSecret     string       `yaml:"jwt_secret"`
	WatermarkText string       `yaml:"watermark_text"`
	Upload        UploadConfig `yaml:"upload"`
	PDF           PDFConfig    `yaml:"pdf"`
}

// UploadConfig combines validation limits, optimization targets and the
// storage strategy selection for product image uploads.
type UploadConfig struct {
	Strategy       string             `yaml:"strategy"` // "local" or "cloudinary"
	TimeoutSeconds int                `yaml:"timeout_seconds"`
	Validation     ValidationConfig   `yaml:"validation"`
	Optimization   OptimizationConfig `yaml:"optimization"`

	CloudinaryCloudName string `yaml:"cloudinary_cloud_name"`
	CloudinaryPreset    string `yaml:"cloudinary_preset"`
	CloudinaryFolder    string `yaml:"cloudinary_folder"`
}

// ValidationConfig holds the declarative limits a candidate file is
// checked against before any storage call.
type ValidationConfig struct {
	MaxFileSize       int64    `yaml:"max_file_size"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
	AllowedMIMETypes  []string `yaml:"allowed_mime_types"`
	MaxWidth          int      `yaml:"max_width"`  // 0 disables the dimension check
	MaxHeight         int      `yaml:"max_height"` // 0 disables the dimension check
	AspectRatio       float64  `yaml:"aspect_ratio"`
	EnforceRatio      bool     `yaml:"enforce_ratio"`
}

// OptimizationConfig holds the resize and re-encode targets applied to
// accepted images.
type OptimizationConfig struct {
	AutoResize bool   `yaml:"auto_resize"`
	MaxWidth   int    `yaml:"max_width"`
	MaxHeight  int    `yaml:"max_height"`
	Quality    int    `yaml:"quality"`
	Format     string `yaml:"format"` // "auto", "jpeg", "png"
}

type PDFConfig struct {
	Institution string `yaml:"institution"`
	FontPath    string `yaml:"font_path"` // TTF with Thai glyphs; built-in font used when empty
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Upload = cfg.Upload.WithDefaults()
	if cfg.PDF.Institution == "" {
		cfg.PDF.Institution = "KU Asset - ระบบเบิกจ่ายครุภัณฑ์"
	}
	return &cfg, nil
}

func (c UploadConfig) WithDefaults() UploadConfig {
	if c.Strategy == "" {
		c.Strategy = "local"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.CloudinaryFolder == "" {
		c.CloudinaryFolder = "products"
	}
	c.Validation = c.Validation.WithDefaults()
	c.Optimization = c.Optimization.WithDefaults()
	return c
}

func (c ValidationConfig) WithDefaults() ValidationConfig {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 5 * 1024 * 1024
	}
	if len(c.AllowedExtensions) == 0 {
		c.AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}
	}
	if len(c.AllowedMIMETypes) == 0 {
		c.AllowedMIMETypes = []string{"image/jpeg", "image/png", "image/webp"}
	}
	return c
}

func (c OptimizationConfig) WithDefaults() OptimizationConfig {
	if c.MaxWidth <= 0 {
		c.MaxWidth = 1920
	}
	if c.MaxHeight <= 0 {
		c.MaxHeight = 1080
	}
	if c.Quality <= 0 {
		c.Quality = 85
	}
	if c.Format == "" {
		c.Format = "auto"
	}
	return c
}

func (c UploadConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
