package visualid

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"snapid/internal/logging"
)

// CatalogTitle is one title discovered from the metadata catalog.
type CatalogTitle struct {
	ID         string
	MediaType  string
	Title      string
	PosterPath string
}

// CatalogSource lists titles available on a watch provider and serves their
// poster images.
type CatalogSource interface {
	DiscoverByProvider(ctx context.Context, mediaType string, limit int) ([]CatalogTitle, error)
	PosterImage(ctx context.Context, posterPath string) ([]byte, error)
}

// ImageEmbedder converts an image into a unit-length embedding vector.
type ImageEmbedder interface {
	EmbedImage(ctx context.Context, image []byte) (Vector, error)
}

// BuildSummary reports what a catalog build accomplished.
type BuildSummary struct {
	Processed int
	Stored    int
	Skipped   int
	Failed    int
	Elapsed   time.Duration
}

// Builder populates the index artifact from the metadata catalog. One failed
// title never aborts the build; failures are counted and logged so a partial
// catalog still produces a usable index.
type Builder struct {
	source   CatalogSource
	embedder ImageEmbedder
	store    *Store
	logger   *slog.Logger
	perType  int
}

// NewBuilder wires a catalog build. titlesPerType caps how many titles are
// pulled for each media type.
func NewBuilder(source CatalogSource, embedder ImageEmbedder, store *Store, titlesPerType int, logger *slog.Logger) *Builder {
	return &Builder{
		source:   source,
		embedder: embedder,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "index-builder"),
		perType:  titlesPerType,
	}
}

// Build discovers movies and series, embeds each poster, and persists the
// results. Existing entries for the same media id are replaced.
func (b *Builder) Build(ctx context.Context) (BuildSummary, error) {
	started := time.Now()
	summary := BuildSummary{}

	for _, mediaType := range []string{"movie", "tv"} {
		titles, err := b.source.DiscoverByProvider(ctx, mediaType, b.perType)
		if err != nil {
			return summary, fmt.Errorf("discover %s titles: %w", mediaType, err)
		}
		b.logger.Info("discovered titles",
			logging.String("media_type", mediaType),
			logging.Int("count", len(titles)))

		for _, title := range titles {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			summary.Processed++
			stored, err := b.buildOne(ctx, title)
			switch {
			case err != nil:
				summary.Failed++
				b.logger.Warn("failed to index title",
					logging.String("media_id", title.ID),
					logging.String("title", title.Title),
					logging.Error(err))
			case stored:
				summary.Stored++
			default:
				summary.Skipped++
			}
		}
	}

	summary.Elapsed = time.Since(started)
	b.logger.Info("index build complete",
		logging.Int("processed", summary.Processed),
		logging.Int("stored", summary.Stored),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

func (b *Builder) buildOne(ctx context.Context, title CatalogTitle) (bool, error) {
	if title.PosterPath == "" {
		b.logger.Debug("title has no poster, skipping",
			logging.String("media_id", title.ID),
			logging.String("title", title.Title))
		return false, nil
	}

	image, err := b.source.PosterImage(ctx, title.PosterPath)
	if err != nil {
		return false, fmt.Errorf("fetch poster: %w", err)
	}

	vector, err := b.embedder.EmbedImage(ctx, image)
	if err != nil {
		return false, fmt.Errorf("embed poster: %w", err)
	}

	record := Record{
		MediaID:   title.ID,
		MediaType: title.MediaType,
		Title:     title.Title,
		Vector:    vector,
	}
	if err := b.store.Put(ctx, record); err != nil {
		return false, fmt.Errorf("store entry: %w", err)
	}
	return true, nil
}
