// Package config loads pic2block settings from the environment.
//
// Every setting has a default, so an empty environment is valid. Command-line
// flags override what Load returns.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvTolerance     = "PIC2BLOCK_TOLERANCE"
	EnvThreshold     = "PIC2BLOCK_THRESHOLD"
	EnvEpsilon       = "PIC2BLOCK_APPROX_EPSILON"
	EnvMinRegionArea = "PIC2BLOCK_MIN_REGION_AREA"
	EnvMaxDimension  = "PIC2BLOCK_MAX_DIMENSION"
	EnvOCR           = "PIC2BLOCK_OCR"
	EnvOCRLanguage   = "PIC2BLOCK_OCR_LANGUAGE"
	EnvLogLevel      = "PIC2BLOCK_LOG_LEVEL"
)

// Config holds the recognition settings.
type Config struct {
	// Tolerance is the pixel distance below which coordinates are equal.
	Tolerance int

	// Threshold is the binarization level; pixels at or above it are white.
	Threshold int

	// Epsilon is the polygon approximation tolerance as a fraction of the
	// region perimeter.
	Epsilon float64

	// MinRegionArea is the smallest region, in pixels, that is classified.
	MinRegionArea int

	// MaxDimension, when positive, shrinks larger images before extraction.
	MaxDimension int

	// OCR enables reading the text inside classified blocks.
	OCR bool

	// OCRLanguage is the Tesseract language code.
	OCRLanguage string

	// LogLevel is the minimum level logged.
	LogLevel slog.Level
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Tolerance:     5,
		Threshold:     128,
		Epsilon:       0.01,
		MinRegionArea: 100,
		MaxDimension:  0,
		OCR:           false,
		OCRLanguage:   "eng",
		LogLevel:      slog.LevelInfo,
	}
}

// Load reads the environment on top of Default and validates the result.
func Load() (*Config, error) {
	cfg := Default()
	var err error

	if cfg.Tolerance, err = getInt(EnvTolerance, cfg.Tolerance); err != nil {
		return nil, err
	}
	if cfg.Threshold, err = getInt(EnvThreshold, cfg.Threshold); err != nil {
		return nil, err
	}
	if cfg.Epsilon, err = getFloat(EnvEpsilon, cfg.Epsilon); err != nil {
		return nil, err
	}
	if cfg.MinRegionArea, err = getInt(EnvMinRegionArea, cfg.MinRegionArea); err != nil {
		return nil, err
	}
	if cfg.MaxDimension, err = getInt(EnvMaxDimension, cfg.MaxDimension); err != nil {
		return nil, err
	}
	if cfg.OCR, err = getBool(EnvOCR, cfg.OCR); err != nil {
		return nil, err
	}
	cfg.OCRLanguage = getEnv(EnvOCRLanguage, cfg.OCRLanguage)

	if v := getEnv(EnvLogLevel, ""); v != "" {
		if cfg.LogLevel, err = ParseLevel(v); err != nil {
			return nil, fmt.Errorf("config: %s: %w", EnvLogLevel, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting is in range.
func (c *Config) Validate() error {
	switch {
	case c.Tolerance <= 0:
		return fmt.Errorf("config: tolerance must be positive, got %d", c.Tolerance)
	case c.Threshold < 1 || c.Threshold > 255:
		return fmt.Errorf("config: threshold must be in 1..255, got %d", c.Threshold)
	case c.Epsilon <= 0 || c.Epsilon >= 1:
		return fmt.Errorf("config: approximation epsilon must be in (0, 1), got %v", c.Epsilon)
	case c.MinRegionArea < 0:
		return fmt.Errorf("config: minimum region area must not be negative, got %d", c.MinRegionArea)
	case c.MaxDimension < 0:
		return fmt.Errorf("config: max dimension must not be negative, got %d", c.MaxDimension)
	case c.OCR && c.OCRLanguage == "":
		return fmt.Errorf("config: OCR language must not be empty")
	}
	return nil
}

// ParseLevel parses debug, info, warn (warning) or error (critical),
// case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "critical":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer", key, v)
	}
	return n, nil
}

func getFloat(key string, defaultVal float64) (float64, error) {
	v := getEnv(key, "")
	if v == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a number", key, v)
	}
	return f, nil
}

func getBool(key string, defaultVal bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("config: %s=%q is not a boolean", key, v)
	}
	return b, nil
}
