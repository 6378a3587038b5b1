// Package metadata resolves media titles and details against TMDB.
//
// The Service narrows TMDB's multi search to movie and series results (people
// also match actor names pulled from screenshots and must be dropped), maps
// payloads into the internal Title shape, and resolves catalog media ids back
// to full details. It also feeds catalog builds with provider-filtered
// discovery and poster downloads.
package metadata
