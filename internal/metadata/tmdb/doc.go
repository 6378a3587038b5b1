// Package tmdb is a minimal client for The Movie Database API covering the
// operations recognition needs: multi search for verifying extracted titles,
// detail fetches by id, provider-filtered discovery for catalog builds, and
// poster image downloads.
package tmdb
