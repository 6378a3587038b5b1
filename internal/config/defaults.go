package config

const (
	defaultDataDir             = "~/.local/share/snapid"
	defaultLogDir              = "~/.local/share/snapid/logs"
	defaultAPIBind             = "127.0.0.1:8642"
	defaultTMDBBaseURL         = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL    = "https://image.tmdb.org/t/p/w500"
	defaultTMDBLanguage        = "en-US"
	defaultOCRTimeoutSeconds   = 30
	defaultEmbeddingModel      = "clip-vit-base-patch32"
	defaultEmbeddingDimensions = 512
	defaultEmbedTimeoutSeconds = 60
	defaultWatchProviderID     = 8 // Netflix
	defaultWatchRegion         = "US"
	defaultTitlesPerType       = 25
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"

	defaultMinTokenConfidence    = 0.30
	defaultSimilarityThreshold   = 0.90
	defaultTextMatchConfidence   = 0.95
	defaultVisualMatchConfidence = 0.90
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		TMDB: TMDB{
			BaseURL:      defaultTMDBBaseURL,
			ImageBaseURL: defaultTMDBImageBaseURL,
			Language:     defaultTMDBLanguage,
		},
		OCR: OCR{
			TimeoutSeconds: defaultOCRTimeoutSeconds,
		},
		Embedding: Embedding{
			Model:          defaultEmbeddingModel,
			Dimensions:     defaultEmbeddingDimensions,
			TimeoutSeconds: defaultEmbedTimeoutSeconds,
		},
		Recognition: Recognition{
			MinTokenConfidence:    defaultMinTokenConfidence,
			SimilarityThreshold:   defaultSimilarityThreshold,
			TextMatchConfidence:   defaultTextMatchConfidence,
			VisualMatchConfidence: defaultVisualMatchConfidence,
		},
		Index: Index{
			WatchProviderID: defaultWatchProviderID,
			WatchRegion:     defaultWatchRegion,
			TitlesPerType:   defaultTitlesPerType,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
