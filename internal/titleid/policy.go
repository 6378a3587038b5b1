package titleid

// Token is a text fragment and the detection confidence reported by the OCR
// model for one image region. Token order follows the detector's raster
// order, which approximates reading order.
type Token struct {
	Text       string
	Confidence float64
}

// Policy centralizes the title extraction thresholds and caps.
type Policy struct {
	// MinTokenConfidence gates tokens before any structural filtering.
	// Tokens at or below this confidence are discarded.
	MinTokenConfidence float64
	// MinTokenLength rejects fragments shorter than this many runes.
	MinTokenLength int
	// MaxTitleWords rejects fragments longer than this many words; anything
	// past it reads as synopsis text, not a title.
	MaxTitleWords int
	// JoinTopCandidates caps how many scored candidates are joined into the
	// final title when several strong candidates exist.
	JoinTopCandidates int
	// ReconstructionCap bounds the positional reconstruction walk.
	ReconstructionCap int
	// LetterSpacingMinLength and LetterSpacingRatio flag letter-spaced OCR
	// artifacts ("L E O N A R D O"): strings longer than the minimum whose
	// space-to-character ratio exceeds the ratio are heavily penalized.
	LetterSpacingMinLength int
	LetterSpacingRatio     float64
}

// DefaultPolicy returns the tuned extraction defaults.
func DefaultPolicy() Policy {
	return Policy{
		MinTokenConfidence:     0.30,
		MinTokenLength:         3,
		MaxTitleWords:          10,
		JoinTopCandidates:      3,
		ReconstructionCap:      7,
		LetterSpacingMinLength: 10,
		LetterSpacingRatio:     0.3,
	}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()

	if p.MinTokenConfidence <= 0 || p.MinTokenConfidence >= 1 {
		p.MinTokenConfidence = d.MinTokenConfidence
	}
	if p.MinTokenLength <= 0 {
		p.MinTokenLength = d.MinTokenLength
	}
	if p.MaxTitleWords <= 0 {
		p.MaxTitleWords = d.MaxTitleWords
	}
	if p.JoinTopCandidates <= 0 {
		p.JoinTopCandidates = d.JoinTopCandidates
	}
	if p.ReconstructionCap <= 0 {
		p.ReconstructionCap = d.ReconstructionCap
	}
	if p.LetterSpacingMinLength <= 0 {
		p.LetterSpacingMinLength = d.LetterSpacingMinLength
	}
	if p.LetterSpacingRatio <= 0 || p.LetterSpacingRatio >= 1 {
		p.LetterSpacingRatio = d.LetterSpacingRatio
	}

	return p
}
