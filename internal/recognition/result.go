package recognition

import "snapid/internal/metadata"

// Method identifies which route produced a result.
type Method string

const (
	// MethodText means the title was read off the screenshot and verified
	// against TMDB.
	MethodText Method = "text_extraction"
	// MethodVisual means the screenshot matched a poster embedding in the
	// index.
	MethodVisual Method = "visual_embedding"
	// MethodNone means both routes came up empty.
	MethodNone Method = "none"
)

// Result is the outcome of one recognition request.
type Result struct {
	Method Method `json:"method"`
	// ExtractedText is the title string the text route assembled from OCR
	// tokens, present even when TMDB verification failed and the visual
	// route answered instead.
	ExtractedText string          `json:"extracted_text,omitempty"`
	Title         *metadata.Title `json:"title,omitempty"`
	// Confidence is the fixed per-route confidence, not a similarity.
	Confidence float64 `json:"confidence"`
	// Similarity is the cosine similarity of the matched poster. Only set
	// for visual results.
	Similarity float64 `json:"similarity,omitempty"`
}

// Matched reports whether either route identified a title.
func (r Result) Matched() bool {
	return r.Method != MethodNone && r.Title != nil
}
