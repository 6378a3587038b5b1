package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
	APIBind string `toml:"api_bind"`
}

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey       string `toml:"api_key"`
	BaseURL      string `toml:"base_url"`
	ImageBaseURL string `toml:"image_base_url"`
	Language     string `toml:"language"`
}

// OCR contains configuration for the hosted text-detection service.
type OCR struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Embedding contains configuration for the hosted image embedding service.
type Embedding struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	Dimensions     int    `toml:"dimensions"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Recognition contains the fusion engine thresholds. The confidence values
// are calibrated constants, not derived statistics; treat them as tuning
// knobs, not measurements.
type Recognition struct {
	// MinTokenConfidence gates OCR tokens before title filtering. Default: 0.30
	MinTokenConfidence float64 `toml:"min_token_confidence"`
	// SimilarityThreshold is the cosine similarity a visual match must clear. Default: 0.90
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	// TextMatchConfidence is reported for verified text-route matches. Default: 0.95
	TextMatchConfidence float64 `toml:"text_match_confidence"`
	// VisualMatchConfidence is reported for verified visual-route matches. Default: 0.90
	VisualMatchConfidence float64 `toml:"visual_match_confidence"`
}

// Index contains configuration for the poster embedding index artifact.
type Index struct {
	// Path is the sqlite artifact holding (id, vector) rows. Defaults to
	// <data_dir>/index.db when empty.
	Path string `toml:"path"`
	// WatchProviderID selects the streaming catalog used by `index build`.
	// TMDB provider 8 is Netflix.
	WatchProviderID int    `toml:"watch_provider_id"`
	WatchRegion     string `toml:"watch_region"`
	// TitlesPerType caps how many movies and how many shows `index build` embeds.
	TitlesPerType int `toml:"titles_per_type"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for snapid.
//
// Configuration sections by subsystem:
//   - Paths: data/log directories and API bind address
//   - TMDB: metadata verification via The Movie Database
//   - OCR: hosted text-detection model endpoint
//   - Embedding: hosted image embedding model endpoint
//   - Recognition: fusion thresholds and reported confidences
//   - Index: poster embedding index artifact and build source
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	TMDB        TMDB        `toml:"tmdb"`
	OCR         OCR         `toml:"ocr"`
	Embedding   Embedding   `toml:"embedding"`
	Recognition Recognition `toml:"recognition"`
	Index       Index       `toml:"index"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/snapid/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg, resolvedPath, exists, err := Resolve(path)
	if err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return cfg, resolvedPath, exists, nil
}

// Resolve locates, parses, and normalizes a configuration file without
// validating it. Callers that only inspect the config use this.
func Resolve(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("snapid.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// IndexPath returns the resolved location of the embedding index artifact.
func (c *Config) IndexPath() string {
	if strings.TrimSpace(c.Index.Path) != "" {
		return c.Index.Path
	}
	return filepath.Join(c.Paths.DataDir, "index.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
