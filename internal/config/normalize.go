package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTMDB()
	c.normalizeServices()
	c.normalizeRecognition()
	if err := c.normalizeIndex(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeTMDB() {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.ImageBaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.ImageBaseURL), "/")
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = defaultTMDBImageBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
}

func (c *Config) normalizeServices() {
	c.OCR.BaseURL = strings.TrimRight(strings.TrimSpace(c.OCR.BaseURL), "/")
	c.OCR.APIKey = strings.TrimSpace(c.OCR.APIKey)
	if c.OCR.TimeoutSeconds <= 0 {
		c.OCR.TimeoutSeconds = defaultOCRTimeoutSeconds
	}
	c.Embedding.BaseURL = strings.TrimRight(strings.TrimSpace(c.Embedding.BaseURL), "/")
	c.Embedding.APIKey = strings.TrimSpace(c.Embedding.APIKey)
	c.Embedding.Model = strings.TrimSpace(c.Embedding.Model)
	if c.Embedding.Model == "" {
		c.Embedding.Model = defaultEmbeddingModel
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = defaultEmbeddingDimensions
	}
	if c.Embedding.TimeoutSeconds <= 0 {
		c.Embedding.TimeoutSeconds = defaultEmbedTimeoutSeconds
	}
}

func (c *Config) normalizeRecognition() {
	if c.Recognition.MinTokenConfidence <= 0 || c.Recognition.MinTokenConfidence >= 1 {
		c.Recognition.MinTokenConfidence = defaultMinTokenConfidence
	}
	if c.Recognition.SimilarityThreshold <= 0 || c.Recognition.SimilarityThreshold > 1 {
		c.Recognition.SimilarityThreshold = defaultSimilarityThreshold
	}
	if c.Recognition.TextMatchConfidence <= 0 || c.Recognition.TextMatchConfidence > 1 {
		c.Recognition.TextMatchConfidence = defaultTextMatchConfidence
	}
	if c.Recognition.VisualMatchConfidence <= 0 || c.Recognition.VisualMatchConfidence > 1 {
		c.Recognition.VisualMatchConfidence = defaultVisualMatchConfidence
	}
}

func (c *Config) normalizeIndex() error {
	c.Index.Path = strings.TrimSpace(c.Index.Path)
	if c.Index.Path != "" {
		expanded, err := expandPath(c.Index.Path)
		if err != nil {
			return fmt.Errorf("index.path: %w", err)
		}
		c.Index.Path = expanded
	}
	if c.Index.WatchProviderID <= 0 {
		c.Index.WatchProviderID = defaultWatchProviderID
	}
	c.Index.WatchRegion = strings.ToUpper(strings.TrimSpace(c.Index.WatchRegion))
	if c.Index.WatchRegion == "" {
		c.Index.WatchRegion = defaultWatchRegion
	}
	if c.Index.TitlesPerType <= 0 {
		c.Index.TitlesPerType = defaultTitlesPerType
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
