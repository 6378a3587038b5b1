package recognition

import (
	"context"
	"errors"
	"log/slog"

	"snapid/internal/logging"
	"snapid/internal/metadata"
	"snapid/internal/services"
	"snapid/internal/titleid"
	"snapid/internal/visualid"
)

// TokenExtractor reads text regions out of a screenshot.
type TokenExtractor interface {
	ExtractTokens(ctx context.Context, image []byte) ([]titleid.Token, error)
}

// TitleResolver verifies extracted titles and resolves media ids against the
// metadata catalog.
type TitleResolver interface {
	SearchTitle(ctx context.Context, query string) (*metadata.Title, bool, error)
	Detail(ctx context.Context, mediaID string) (*metadata.Title, error)
}

// Options tune the fusion policy.
type Options struct {
	// SimilarityThreshold is the minimum cosine similarity a visual match
	// must reach before it counts.
	SimilarityThreshold float64
	// TextMatchConfidence is reported on text route results.
	TextMatchConfidence float64
	// VisualMatchConfidence is reported on visual route results.
	VisualMatchConfidence float64
	// Policy governs token filtering and title selection.
	Policy titleid.Policy
}

// DefaultOptions returns the fusion policy defaults. Text results carry a
// higher confidence than visual ones: a verified on-screen title is stronger
// evidence than poster similarity.
func DefaultOptions() Options {
	return Options{
		SimilarityThreshold:   0.90,
		TextMatchConfidence:   0.95,
		VisualMatchConfidence: 0.90,
		Policy:                titleid.DefaultPolicy(),
	}
}

func (o Options) normalized() Options {
	defaults := DefaultOptions()
	if o.SimilarityThreshold <= 0 || o.SimilarityThreshold > 1 {
		o.SimilarityThreshold = defaults.SimilarityThreshold
	}
	if o.TextMatchConfidence <= 0 || o.TextMatchConfidence > 1 {
		o.TextMatchConfidence = defaults.TextMatchConfidence
	}
	if o.VisualMatchConfidence <= 0 || o.VisualMatchConfidence > 1 {
		o.VisualMatchConfidence = defaults.VisualMatchConfidence
	}
	return o
}

// Engine runs the two recognition routes in order.
type Engine struct {
	extractor TokenExtractor
	embedder  visualid.ImageEmbedder
	resolver  TitleResolver
	index     *visualid.Index
	opts      Options
	logger    *slog.Logger
}

// NewEngine wires a recognition engine. The index may be empty; the visual
// route then reports a configuration error instead of a miss.
func NewEngine(
	extractor TokenExtractor,
	embedder visualid.ImageEmbedder,
	resolver TitleResolver,
	index *visualid.Index,
	opts Options,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		extractor: extractor,
		embedder:  embedder,
		resolver:  resolver,
		index:     index,
		opts:      opts.normalized(),
		logger:    logging.NewComponentLogger(logger, "recognition"),
	}
}

// Recognize identifies the title shown in a screenshot. The text route is
// tried first; the visual route only runs when text produced no verified
// title. A request never errors because a collaborator failed mid-route;
// those failures degrade to the next route or to a MethodNone result.
func (e *Engine) Recognize(ctx context.Context, image []byte) (Result, error) {
	if len(image) == 0 {
		return Result{}, services.Wrap(services.ErrValidation, "recognition", "recognize", "image required", nil)
	}
	logger := logging.WithContext(ctx, e.logger)

	result, done := e.textRoute(ctx, image, logger)
	if done {
		return result, nil
	}

	visual, err := e.visualRoute(ctx, image, result.ExtractedText, logger)
	if err != nil {
		return Result{}, err
	}
	return visual, nil
}

// textRoute returns (result, true) only when a verified title came out of the
// extracted text. Otherwise it returns the partial result (extracted text, if
// any) for the visual route to carry forward.
func (e *Engine) textRoute(ctx context.Context, image []byte, logger *slog.Logger) (Result, bool) {
	miss := Result{Method: MethodNone}

	tokens, err := e.extractor.ExtractTokens(ctx, image)
	if err != nil {
		logger.Warn("ocr failed, trying visual route", logging.Error(err))
		return miss, false
	}
	if len(tokens) == 0 {
		logger.Debug("no text regions detected")
		return miss, false
	}

	candidates := titleid.FilterCandidates(tokens, e.opts.Policy)
	rawTexts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		rawTexts = append(rawTexts, token.Text)
	}
	extracted, ok := titleid.SelectTitle(candidates, rawTexts, e.opts.Policy)
	if !ok {
		logger.Debug("no title candidate in extracted text",
			logging.Int("tokens", len(tokens)),
			logging.Int("candidates", len(candidates)))
		return miss, false
	}
	miss.ExtractedText = extracted

	title, found, err := e.resolver.SearchTitle(ctx, extracted)
	if err != nil {
		logger.Warn("title verification failed, trying visual route",
			logging.String("extracted", extracted),
			logging.Error(err))
		return miss, false
	}
	if !found {
		logger.Debug("extracted text matched no catalog title",
			logging.String("extracted", extracted))
		return miss, false
	}

	logger.Info("identified by text",
		logging.String("extracted", extracted),
		logging.String("media_id", title.MediaID),
		logging.String("title", title.Title))
	return Result{
		Method:        MethodText,
		ExtractedText: extracted,
		Title:         title,
		Confidence:    e.opts.TextMatchConfidence,
	}, true
}

func (e *Engine) visualRoute(ctx context.Context, image []byte, extracted string, logger *slog.Logger) (Result, error) {
	miss := Result{Method: MethodNone, ExtractedText: extracted}

	query, err := e.embedder.EmbedImage(ctx, image)
	if err != nil {
		logger.Warn("embedding failed", logging.Error(err))
		return miss, nil
	}

	match, err := e.index.Nearest(query)
	if errors.Is(err, visualid.ErrEmptyIndex) {
		return Result{}, services.Wrap(services.ErrConfiguration, "recognition", "recognize",
			"embedding index is empty, build it with 'snapid index build'", err)
	}
	if err != nil {
		logger.Warn("index lookup failed", logging.Error(err))
		return miss, nil
	}

	if match.Score < e.opts.SimilarityThreshold {
		logger.Debug("best visual match below threshold",
			logging.String("media_id", match.ID),
			logging.Float64("similarity", match.Score),
			logging.Float64("threshold", e.opts.SimilarityThreshold))
		return miss, nil
	}

	title, err := e.resolver.Detail(ctx, match.ID)
	if err != nil {
		logger.Warn("detail lookup failed for visual match",
			logging.String("media_id", match.ID),
			logging.Error(err))
		return miss, nil
	}

	logger.Info("identified by poster similarity",
		logging.String("media_id", title.MediaID),
		logging.String("title", title.Title),
		logging.Float64("similarity", match.Score))
	return Result{
		Method:        MethodVisual,
		ExtractedText: extracted,
		Title:         title,
		Confidence:    e.opts.VisualMatchConfidence,
		Similarity:    match.Score,
	}, nil
}
