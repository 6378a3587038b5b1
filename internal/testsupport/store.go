package testsupport

import (
	"context"
	"testing"

	"snapid/internal/config"
	"snapid/internal/visualid"
)

// MustOpenStore opens a visualid.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *visualid.Store {
	t.Helper()

	store, err := visualid.OpenStore(cfg.IndexPath())
	if err != nil {
		t.Fatalf("visualid.OpenStore: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedIndex writes normalized vectors into the store keyed by media id.
func SeedIndex(t testing.TB, store *visualid.Store, entries map[string][]float32) {
	t.Helper()

	for mediaID, values := range entries {
		vector, err := visualid.Normalize(values)
		if err != nil {
			t.Fatalf("normalize vector for %s: %v", mediaID, err)
		}
		record := visualid.Record{MediaID: mediaID, MediaType: "movie", Vector: vector}
		if err := store.Put(context.Background(), record); err != nil {
			t.Fatalf("seed index entry %s: %v", mediaID, err)
		}
	}
}
