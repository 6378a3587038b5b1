package visualid

import (
	"errors"
	"fmt"
)

// ErrEmptyIndex signals that the index holds no entries. This is a startup
// configuration problem (missing or unbuilt artifact), not a per-request
// miss, and callers must surface it as such.
var ErrEmptyIndex = errors.New("embedding index is empty")

// Entry pairs a media identifier with its poster embedding.
type Entry struct {
	ID     string
	Vector Vector
}

// Match is a nearest-neighbor result.
type Match struct {
	ID    string
	Score float64
}

// Index is an immutable ordered collection of entries. Construct once before
// serving; concurrent readers need no locking.
type Index struct {
	entries []Entry
	dims    int
}

// NewIndex validates entries and builds an index. All vectors must share one
// dimensionality and be unit length. Entry order is preserved: it decides
// ties in Nearest.
func NewIndex(entries []Entry) (*Index, error) {
	if len(entries) == 0 {
		return &Index{}, nil
	}
	dims := len(entries[0].Vector)
	for i, entry := range entries {
		if entry.ID == "" {
			return nil, fmt.Errorf("index entry %d has empty id", i)
		}
		if err := validateVector(entry.Vector, dims); err != nil {
			return nil, fmt.Errorf("index entry %q: %w", entry.ID, err)
		}
	}
	owned := make([]Entry, len(entries))
	copy(owned, entries)
	return &Index{entries: owned, dims: dims}, nil
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// Dimensions returns the vector dimensionality, or 0 for an empty index.
func (ix *Index) Dimensions() int {
	if ix == nil {
		return 0
	}
	return ix.dims
}

// Nearest returns the entry most similar to query by cosine similarity.
// Ties keep the earliest entry in insertion order. Deterministic for a fixed
// index and query.
func (ix *Index) Nearest(query Vector) (Match, error) {
	if ix.Len() == 0 {
		return Match{}, ErrEmptyIndex
	}
	if len(query) != ix.dims {
		return Match{}, fmt.Errorf("query has %d dimensions, index has %d", len(query), ix.dims)
	}

	best := Match{Score: -1}
	for _, entry := range ix.entries {
		score := query.Dot(entry.Vector)
		if best.ID == "" || score > best.Score {
			best = Match{ID: entry.ID, Score: score}
		}
	}
	return best, nil
}
