package services

import (
	"errors"
	"net/http"
	"testing"
)

func TestWrapPreservesMarker(t *testing.T) {
	inner := errors.New("connection refused")
	err := Wrap(ErrExternalTool, "ocr", "extract", "request failed", inner)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatal("expected marker to survive wrapping")
	}
	if !errors.Is(err, inner) {
		t.Fatal("expected inner error to survive wrapping")
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "engine", "recognize", "", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatal("expected nil marker to default to ErrExternalTool")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{Wrap(ErrValidation, "api", "upload", "not an image", nil), http.StatusBadRequest},
		{Wrap(ErrNotFound, "metadata", "detail", "", nil), http.StatusNotFound},
		{Wrap(ErrConfiguration, "index", "load", "empty index", nil), http.StatusServiceUnavailable},
		{errors.New("opaque"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
