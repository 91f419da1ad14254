package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth; empty disables it
	APIKey string

	// Document storage
	DataDir string

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF conversion
	SofficePath    string
	ConvertTimeout time.Duration

	// Import
	PDFFallbackPdftotext bool

	// Rendering
	DefaultFont string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("NOTEGEN_API_KEY"),

		DataDir: envOr("DATA_DIR", "./data"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		SofficePath:    envOr("SOFFICE_PATH", "soffice"),
		ConvertTimeout: envDuration("CONVERT_TIMEOUT", 60*time.Second),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		DefaultFont: envOr("DEFAULT_FONT", "Jojoba"),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.ConvertTimeout <= 0 {
		cfg.ConvertTimeout = 60 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %q", c.Port)
	}
	if c.SofficePath == "" {
		return fmt.Errorf("SOFFICE_PATH is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
