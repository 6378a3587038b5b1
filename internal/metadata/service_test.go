package metadata

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"snapid/internal/metadata/tmdb"
	"snapid/internal/services"
)

type fakeSearcher struct {
	multiResp    *tmdb.Response
	multiErr     error
	movieDetails map[int64]*tmdb.Result
	tvDetails    map[int64]*tmdb.Result
	moviePages   []*tmdb.Response
	tvPages      []*tmdb.Response
	posters      map[string][]byte
}

func (f *fakeSearcher) SearchMulti(context.Context, string) (*tmdb.Response, error) {
	if f.multiErr != nil {
		return nil, f.multiErr
	}
	return f.multiResp, nil
}

func (f *fakeSearcher) GetMovieDetails(_ context.Context, movieID int64) (*tmdb.Result, error) {
	result, ok := f.movieDetails[movieID]
	if !ok {
		return nil, fmt.Errorf("movie %d not found", movieID)
	}
	out := *result
	out.MediaType = "movie"
	return &out, nil
}

func (f *fakeSearcher) GetTVDetails(_ context.Context, showID int64) (*tmdb.Result, error) {
	result, ok := f.tvDetails[showID]
	if !ok {
		return nil, fmt.Errorf("show %d not found", showID)
	}
	out := *result
	out.MediaType = "tv"
	return &out, nil
}

func (f *fakeSearcher) DiscoverMovies(_ context.Context, opts tmdb.DiscoverOptions) (*tmdb.Response, error) {
	return pageOf(f.moviePages, opts.Page)
}

func (f *fakeSearcher) DiscoverTV(_ context.Context, opts tmdb.DiscoverOptions) (*tmdb.Response, error) {
	return pageOf(f.tvPages, opts.Page)
}

func (f *fakeSearcher) PosterImage(_ context.Context, posterPath string) ([]byte, error) {
	image, ok := f.posters[posterPath]
	if !ok {
		return nil, fmt.Errorf("poster %s not found", posterPath)
	}
	return image, nil
}

func pageOf(pages []*tmdb.Response, page int) (*tmdb.Response, error) {
	if page <= 0 {
		page = 1
	}
	if page > len(pages) {
		return &tmdb.Response{Page: page, TotalPages: len(pages)}, nil
	}
	return pages[page-1], nil
}

func TestSearchTitleSkipsPersonResults(t *testing.T) {
	service := NewService(&fakeSearcher{multiResp: &tmdb.Response{Results: []tmdb.Result{
		{ID: 6193, Name: "Leonardo DiCaprio", MediaType: "person"},
		{ID: 27205, Title: "Inception", MediaType: "movie", ReleaseDate: "2010-07-16"},
	}}}, CatalogOptions{}, nil)

	title, found, err := service.SearchTitle(context.Background(), "Inception")
	if err != nil {
		t.Fatalf("SearchTitle returned error: %v", err)
	}
	if !found {
		t.Fatal("expected a match")
	}
	if title.MediaID != "movie:27205" || title.Title != "Inception" {
		t.Fatalf("unexpected title: %+v", title)
	}
	if title.ReleaseDate != "2010-07-16" {
		t.Fatalf("unexpected release date %q", title.ReleaseDate)
	}
}

func TestSearchTitleOnlyPeopleMeansNoMatch(t *testing.T) {
	service := NewService(&fakeSearcher{multiResp: &tmdb.Response{Results: []tmdb.Result{
		{ID: 6193, Name: "Leonardo DiCaprio", MediaType: "person"},
	}}}, CatalogOptions{}, nil)

	_, found, err := service.SearchTitle(context.Background(), "Leonardo DiCaprio")
	if err != nil {
		t.Fatalf("SearchTitle returned error: %v", err)
	}
	if found {
		t.Fatal("person-only results must not produce a match")
	}
}

func TestSearchTitleWrapsClientFailure(t *testing.T) {
	service := NewService(&fakeSearcher{multiErr: errors.New("boom")}, CatalogOptions{}, nil)

	_, _, err := service.SearchTitle(context.Background(), "Inception")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
}

func TestDetailPrefixedIDs(t *testing.T) {
	service := NewService(&fakeSearcher{
		movieDetails: map[int64]*tmdb.Result{27205: {ID: 27205, Title: "Inception"}},
		tvDetails:    map[int64]*tmdb.Result{70523: {ID: 70523, Name: "Dark", FirstAirDate: "2017-12-01"}},
	}, CatalogOptions{}, nil)

	movie, err := service.Detail(context.Background(), "movie:27205")
	if err != nil {
		t.Fatalf("Detail returned error: %v", err)
	}
	if movie.MediaType != "movie" || movie.Title != "Inception" {
		t.Fatalf("unexpected movie: %+v", movie)
	}

	show, err := service.Detail(context.Background(), "tv:70523")
	if err != nil {
		t.Fatalf("Detail returned error: %v", err)
	}
	if show.MediaType != "tv" || show.Title != "Dark" || show.ReleaseDate != "2017-12-01" {
		t.Fatalf("unexpected show: %+v", show)
	}
}

func TestDetailBareIDFallsBackToTV(t *testing.T) {
	service := NewService(&fakeSearcher{
		movieDetails: map[int64]*tmdb.Result{},
		tvDetails:    map[int64]*tmdb.Result{70523: {ID: 70523, Name: "Dark"}},
	}, CatalogOptions{}, nil)

	show, err := service.Detail(context.Background(), "70523")
	if err != nil {
		t.Fatalf("Detail returned error: %v", err)
	}
	if show.MediaType != "tv" || show.Title != "Dark" {
		t.Fatalf("expected tv fallback, got %+v", show)
	}
}

func TestDetailInvalidID(t *testing.T) {
	service := NewService(&fakeSearcher{}, CatalogOptions{}, nil)

	_, err := service.Detail(context.Background(), "book:12")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if _, err := service.Detail(context.Background(), "movie:abc"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker for non-numeric id, got %v", err)
	}
}

func TestDiscoverByProviderPagesUntilLimit(t *testing.T) {
	service := NewService(&fakeSearcher{
		moviePages: []*tmdb.Response{
			{Page: 1, TotalPages: 2, Results: []tmdb.Result{
				{ID: 1, Title: "First", PosterPath: "/1.jpg"},
				{ID: 2, Title: "Second", PosterPath: "/2.jpg"},
			}},
			{Page: 2, TotalPages: 2, Results: []tmdb.Result{
				{ID: 3, Title: "Third", PosterPath: "/3.jpg"},
			}},
		},
	}, CatalogOptions{WatchProviderID: 8, WatchRegion: "US"}, nil)

	titles, err := service.DiscoverByProvider(context.Background(), "movie", 3)
	if err != nil {
		t.Fatalf("DiscoverByProvider returned error: %v", err)
	}
	if len(titles) != 3 {
		t.Fatalf("expected 3 titles, got %d", len(titles))
	}
	if titles[0].ID != "movie:1" || titles[2].ID != "movie:3" {
		t.Fatalf("unexpected ids: %+v", titles)
	}
}

func TestDiscoverByProviderStopsAtLastPage(t *testing.T) {
	service := NewService(&fakeSearcher{
		tvPages: []*tmdb.Response{
			{Page: 1, TotalPages: 1, Results: []tmdb.Result{
				{ID: 9, Name: "Only Show", PosterPath: "/9.jpg"},
			}},
		},
	}, CatalogOptions{WatchProviderID: 8, WatchRegion: "US"}, nil)

	titles, err := service.DiscoverByProvider(context.Background(), "tv", 25)
	if err != nil {
		t.Fatalf("DiscoverByProvider returned error: %v", err)
	}
	if len(titles) != 1 || titles[0].ID != "tv:9" || titles[0].Title != "Only Show" {
		t.Fatalf("unexpected titles: %+v", titles)
	}
}

func TestParseMediaID(t *testing.T) {
	tests := []struct {
		input     string
		mediaType string
		tmdbID    int64
		wantErr   bool
	}{
		{"movie:27205", "movie", 27205, false},
		{"tv:70523", "tv", 70523, false},
		{"27205", "", 27205, false},
		{"book:1", "", 0, true},
		{"movie:", "", 0, true},
		{"movie:-5", "", 0, true},
		{"", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mediaType, tmdbID, err := ParseMediaID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMediaID returned error: %v", err)
			}
			if mediaType != tt.mediaType || tmdbID != tt.tmdbID {
				t.Fatalf("got (%q, %d), want (%q, %d)", mediaType, tmdbID, tt.mediaType, tt.tmdbID)
			}
		})
	}
}
