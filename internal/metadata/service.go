package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"snapid/internal/logging"
	"snapid/internal/metadata/tmdb"
	"snapid/internal/services"
	"snapid/internal/visualid"
)

// Title is a resolved movie or series.
type Title struct {
	MediaID     string
	TMDBID      int64
	MediaType   string
	Title       string
	Overview    string
	ReleaseDate string
	PosterPath  string
	VoteAverage float64
}

// CatalogOptions scope discovery to one streaming catalog.
type CatalogOptions struct {
	WatchProviderID int
	WatchRegion     string
}

// Service exposes title search, detail resolution, and catalog discovery on
// top of the TMDB client.
type Service struct {
	client  tmdb.Searcher
	catalog CatalogOptions
	logger  *slog.Logger
}

// NewService wires a metadata service.
func NewService(client tmdb.Searcher, catalog CatalogOptions, logger *slog.Logger) *Service {
	return &Service{
		client:  client,
		catalog: catalog,
		logger:  logging.NewComponentLogger(logger, "metadata"),
	}
}

var _ visualid.CatalogSource = (*Service)(nil)

// SearchTitle verifies an extracted title against TMDB. Person results are
// skipped so a cast name on screen never masquerades as a title. Returns
// found=false when nothing but people match.
func (s *Service) SearchTitle(ctx context.Context, query string) (*Title, bool, error) {
	resp, err := s.client.SearchMulti(ctx, query)
	if err != nil {
		return nil, false, services.Wrap(services.ErrExternalTool, "metadata", "search", "multi search failed", err)
	}

	for _, result := range resp.Results {
		if result.MediaType != "movie" && result.MediaType != "tv" {
			continue
		}
		title := fromResult(result)
		s.logger.Debug("title verified",
			logging.String("query", query),
			logging.String("media_id", title.MediaID),
			logging.String("title", title.Title))
		return title, true, nil
	}

	s.logger.Debug("no title results", logging.String("query", query))
	return nil, false, nil
}

// Detail resolves a media id to full details. Prefixed ids ("movie:27205",
// "tv:70523") go straight to the right endpoint. A bare numeric id is tried
// as a movie first, then as a series.
func (s *Service) Detail(ctx context.Context, mediaID string) (*Title, error) {
	mediaType, tmdbID, err := ParseMediaID(mediaID)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "metadata", "detail", "invalid media id", err)
	}

	switch mediaType {
	case "movie":
		result, err := s.client.GetMovieDetails(ctx, tmdbID)
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "metadata", "detail", "movie lookup failed", err)
		}
		return fromResult(*result), nil
	case "tv":
		result, err := s.client.GetTVDetails(ctx, tmdbID)
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "metadata", "detail", "tv lookup failed", err)
		}
		return fromResult(*result), nil
	default:
		if result, err := s.client.GetMovieDetails(ctx, tmdbID); err == nil {
			return fromResult(*result), nil
		}
		result, err := s.client.GetTVDetails(ctx, tmdbID)
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "metadata", "detail", "movie and tv lookups failed", err)
		}
		return fromResult(*result), nil
	}
}

// DiscoverByProvider lists up to limit titles of one media type available on
// the configured watch provider, most popular first.
func (s *Service) DiscoverByProvider(ctx context.Context, mediaType string, limit int) ([]visualid.CatalogTitle, error) {
	if limit <= 0 {
		return nil, nil
	}

	var titles []visualid.CatalogTitle
	for page := 1; len(titles) < limit; page++ {
		opts := tmdb.DiscoverOptions{
			WatchProviderID: s.catalog.WatchProviderID,
			WatchRegion:     s.catalog.WatchRegion,
			Page:            page,
		}
		var (
			resp *tmdb.Response
			err  error
		)
		switch mediaType {
		case "movie":
			resp, err = s.client.DiscoverMovies(ctx, opts)
		case "tv":
			resp, err = s.client.DiscoverTV(ctx, opts)
		default:
			return nil, fmt.Errorf("unsupported media type %q", mediaType)
		}
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "metadata", "discover", "discover failed", err)
		}

		for _, result := range resp.Results {
			if len(titles) >= limit {
				break
			}
			titles = append(titles, visualid.CatalogTitle{
				ID:         FormatMediaID(mediaType, result.ID),
				MediaType:  mediaType,
				Title:      result.DisplayTitle(),
				PosterPath: result.PosterPath,
			})
		}
		if resp.Page >= resp.TotalPages || len(resp.Results) == 0 {
			break
		}
	}
	return titles, nil
}

// PosterImage downloads a poster by path.
func (s *Service) PosterImage(ctx context.Context, posterPath string) ([]byte, error) {
	image, err := s.client.PosterImage(ctx, posterPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "metadata", "poster", "poster download failed", err)
	}
	return image, nil
}

// FormatMediaID builds the canonical "type:id" media id.
func FormatMediaID(mediaType string, tmdbID int64) string {
	return fmt.Sprintf("%s:%d", mediaType, tmdbID)
}

// ParseMediaID splits a media id into its type and numeric TMDB id. The type
// is empty for bare numeric ids.
func ParseMediaID(mediaID string) (string, int64, error) {
	mediaID = strings.TrimSpace(mediaID)
	if mediaID == "" {
		return "", 0, fmt.Errorf("media id must not be empty")
	}

	mediaType := ""
	idPart := mediaID
	if before, after, found := strings.Cut(mediaID, ":"); found {
		mediaType = before
		idPart = after
		if mediaType != "movie" && mediaType != "tv" {
			return "", 0, fmt.Errorf("unknown media type %q", mediaType)
		}
	}

	tmdbID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || tmdbID <= 0 {
		return "", 0, fmt.Errorf("invalid tmdb id %q", idPart)
	}
	return mediaType, tmdbID, nil
}

func fromResult(result tmdb.Result) *Title {
	releaseDate := result.ReleaseDate
	if releaseDate == "" {
		releaseDate = result.FirstAirDate
	}
	return &Title{
		MediaID:     FormatMediaID(result.MediaType, result.ID),
		TMDBID:      result.ID,
		MediaType:   result.MediaType,
		Title:       result.DisplayTitle(),
		Overview:    result.Overview,
		ReleaseDate: releaseDate,
		PosterPath:  result.PosterPath,
		VoteAverage: result.VoteAverage,
	}
}
