package tmdb_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"snapid/internal/metadata/tmdb"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com", "en-US"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestSearchMultiSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/multi" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "key" {
			t.Fatalf("expected api_key query parameter, got %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("query") != "Inception" {
			t.Fatalf("unexpected query %q", r.URL.Query().Get("query"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[
			{"id":27205,"title":"Inception","media_type":"movie","poster_path":"/inc.jpg"},
			{"id":6193,"name":"Leonardo DiCaprio","media_type":"person"}
		]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "en-US")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	resp, err := client.SearchMulti(context.Background(), "Inception")
	if err != nil {
		t.Fatalf("SearchMulti returned error: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].DisplayTitle() != "Inception" {
		t.Fatalf("unexpected title %q", resp.Results[0].DisplayTitle())
	}
	if resp.Results[1].MediaType != "person" {
		t.Fatalf("expected person result preserved, got %q", resp.Results[1].MediaType)
	}
}

func TestSearchMultiEmptyQuery(t *testing.T) {
	client, err := tmdb.New("key", "https://example.com", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SearchMulti(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestSearchMultiHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status_code":500}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SearchMulti(context.Background(), "fail"); err == nil {
		t.Fatal("expected error when TMDB returns non-200")
	}
}

func TestGetDetailsSetMediaType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/movie/27205":
			_, _ = w.Write([]byte(`{"id":27205,"title":"Inception"}`))
		case "/tv/70523":
			_, _ = w.Write([]byte(`{"id":70523,"name":"Dark"}`))
		default:
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	movie, err := client.GetMovieDetails(context.Background(), 27205)
	if err != nil {
		t.Fatalf("GetMovieDetails returned error: %v", err)
	}
	if movie.MediaType != "movie" || movie.Title != "Inception" {
		t.Fatalf("unexpected movie result: %#v", movie)
	}

	show, err := client.GetTVDetails(context.Background(), 70523)
	if err != nil {
		t.Fatalf("GetTVDetails returned error: %v", err)
	}
	if show.MediaType != "tv" || show.Name != "Dark" {
		t.Fatalf("unexpected tv result: %#v", show)
	}
}

func TestGetDetailsRejectInvalidIDs(t *testing.T) {
	client, err := tmdb.New("key", "https://example.com", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.GetMovieDetails(context.Background(), 0); err == nil {
		t.Fatal("expected error for non-positive movie id")
	}
	if _, err := client.GetTVDetails(context.Background(), -1); err == nil {
		t.Fatal("expected error for non-positive show id")
	}
}

func TestDiscoverMoviesSendsProviderFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/discover/movie" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("with_watch_providers") != "8" || q.Get("watch_region") != "US" {
			t.Fatalf("missing provider filters: %q", r.URL.RawQuery)
		}
		if q.Get("sort_by") != "popularity.desc" {
			t.Fatalf("expected popularity sort, got %q", q.Get("sort_by"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":1,"title":"Popular Movie","poster_path":"/p.jpg"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	resp, err := client.DiscoverMovies(context.Background(), tmdb.DiscoverOptions{WatchProviderID: 8, WatchRegion: "US"})
	if err != nil {
		t.Fatalf("DiscoverMovies returned error: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Title != "Popular Movie" {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

func TestDiscoverRequiresProvider(t *testing.T) {
	client, err := tmdb.New("key", "https://example.com", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.DiscoverTV(context.Background(), tmdb.DiscoverOptions{WatchRegion: "US"}); err == nil {
		t.Fatal("expected error when provider id missing")
	}
	if _, err := client.DiscoverTV(context.Background(), tmdb.DiscoverOptions{WatchProviderID: 8}); err == nil {
		t.Fatal("expected error when region missing")
	}
}

func TestPosterImageDownloadsBytes(t *testing.T) {
	poster := []byte{0xff, 0xd8, 0xff, 0xe0}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/poster.jpg" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write(poster)
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", "https://example.com", "", tmdb.WithImageBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	image, err := client.PosterImage(context.Background(), "/poster.jpg")
	if err != nil {
		t.Fatalf("PosterImage returned error: %v", err)
	}
	if !bytes.Equal(image, poster) {
		t.Fatalf("poster bytes do not match: %v", image)
	}
}

func TestPosterImageHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", "https://example.com", "", tmdb.WithImageBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.PosterImage(context.Background(), "/missing.jpg"); err == nil {
		t.Fatal("expected error when poster fetch returns non-200")
	}
}
