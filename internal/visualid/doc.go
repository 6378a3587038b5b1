// Package visualid matches screenshots against a fixed catalog of poster
// embeddings.
//
// The Index holds an immutable, ordered set of (media id, vector) entries and
// answers nearest-neighbor queries by cosine similarity. Every stored vector
// and every query vector is L2-normalized, so similarity reduces to a dot
// product. The index is built once at startup from a sqlite artifact (Store)
// and is safe for concurrent readers; nothing mutates it during serving.
//
// Builder populates the artifact offline: it discovers a streaming catalog
// from TMDB, downloads posters, runs them through the hosted embedding model,
// and writes the rows the Store later loads.
package visualid
