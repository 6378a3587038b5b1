package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"snapid/internal/config"
	"snapid/internal/logging"
	"snapid/internal/metadata"
	"snapid/internal/metadata/tmdb"
	"snapid/internal/recognition"
	"snapid/internal/services/embedder"
	"snapid/internal/services/ocr"
	"snapid/internal/titleid"
	"snapid/internal/visualid"
)

func buildLogger(cfg *config.Config, extraPaths ...string) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: extraPaths,
	})
}

func buildMetadataService(cfg *config.Config, logger *slog.Logger) (*metadata.Service, error) {
	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithImageBaseURL(cfg.TMDB.ImageBaseURL))
	if err != nil {
		return nil, fmt.Errorf("create tmdb client: %w", err)
	}
	return metadata.NewService(client, metadata.CatalogOptions{
		WatchProviderID: cfg.Index.WatchProviderID,
		WatchRegion:     cfg.Index.WatchRegion,
	}, logger), nil
}

func buildEmbedder(cfg *config.Config) (*embedder.Client, error) {
	return embedder.NewClient(cfg.Embedding.BaseURL, cfg.Embedding.APIKey,
		embedder.WithModel(cfg.Embedding.Model),
		embedder.WithDimensions(cfg.Embedding.Dimensions),
		embedder.WithTimeout(time.Duration(cfg.Embedding.TimeoutSeconds)*time.Second))
}

// buildEngine wires the full recognition pipeline. The caller owns the
// returned store and must close it.
func buildEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*recognition.Engine, *visualid.Store, error) {
	metadataSvc, err := buildMetadataService(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	ocrClient, err := ocr.NewClient(cfg.OCR.BaseURL, cfg.OCR.APIKey,
		ocr.WithTimeout(time.Duration(cfg.OCR.TimeoutSeconds)*time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("create ocr client: %w", err)
	}
	embedClient, err := buildEmbedder(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create embedder client: %w", err)
	}

	store, err := visualid.OpenStore(cfg.IndexPath())
	if err != nil {
		return nil, nil, fmt.Errorf("open index store: %w", err)
	}
	index, err := store.LoadIndex(ctx)
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("load index: %w", err)
	}

	policy := titleid.DefaultPolicy()
	policy.MinTokenConfidence = cfg.Recognition.MinTokenConfidence

	engine := recognition.NewEngine(ocrClient, embedClient, metadataSvc, index, recognition.Options{
		SimilarityThreshold:   cfg.Recognition.SimilarityThreshold,
		TextMatchConfidence:   cfg.Recognition.TextMatchConfidence,
		VisualMatchConfidence: cfg.Recognition.VisualMatchConfidence,
		Policy:                policy,
	}, logger)
	return engine, store, nil
}
