package visualid

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current artifact schema version. Bump this when the
// schema changes; stale artifacts must be rebuilt with `snapid index build`.
const schemaVersion = 1

// ErrSchemaMismatch indicates the artifact was written by an incompatible version.
var ErrSchemaMismatch = errors.New("index schema version mismatch")

// Record is one persisted catalog entry. MediaID and Vector feed the in-memory
// Index; MediaType and Title exist for inspection and detail lookups.
type Record struct {
	MediaID   string
	MediaType string
	Title     string
	Vector    Vector
	CreatedAt time.Time
}

// Store manages the embedding index artifact backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore initializes or connects to the index artifact at path.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the artifact location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: artifact has version %d, expected %d (rebuild with 'snapid index build')",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Put inserts or replaces a catalog entry. The vector must already be
// normalized.
func (s *Store) Put(ctx context.Context, record Record) error {
	if record.MediaID == "" {
		return errors.New("record media id required")
	}
	if !record.Vector.IsNormalized() {
		return fmt.Errorf("record %q vector is not unit length", record.MediaID)
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO index_entries (media_id, media_type, title, dimensions, embedding, created_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(media_id) DO UPDATE SET
            media_type = excluded.media_type,
            title = excluded.title,
            dimensions = excluded.dimensions,
            embedding = excluded.embedding,
            created_at = excluded.created_at`,
		record.MediaID,
		record.MediaType,
		record.Title,
		len(record.Vector),
		encodeVector(record.Vector),
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert index entry: %w", err)
	}
	return nil
}

// List returns all catalog entries in insertion order.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT media_id, media_type, title, dimensions, embedding, created_at
         FROM index_entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query index entries: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			record    Record
			dims      int
			blob      []byte
			createdAt string
		)
		if err := rows.Scan(&record.MediaID, &record.MediaType, &record.Title, &dims, &blob, &createdAt); err != nil {
			return nil, fmt.Errorf("scan index entry: %w", err)
		}
		vector, err := decodeVector(blob, dims)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", record.MediaID, err)
		}
		record.Vector = vector
		if ts, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			record.CreatedAt = ts
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate index entries: %w", err)
	}
	return records, nil
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM index_entries").Scan(&count); err != nil {
		return 0, fmt.Errorf("count index entries: %w", err)
	}
	return count, nil
}

// MediaType returns the stored media type for an id, if present.
func (s *Store) MediaType(ctx context.Context, mediaID string) (string, bool, error) {
	var mediaType string
	err := s.db.QueryRowContext(ctx,
		"SELECT media_type FROM index_entries WHERE media_id = ?", mediaID,
	).Scan(&mediaType)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query media type: %w", err)
	}
	return mediaType, true, nil
}

// LoadIndex reads every entry and constructs the in-memory Index in
// insertion order. The index is loaded once before serving begins and is
// read-only afterwards.
func (s *Store) LoadIndex(ctx context.Context) (*Index, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, Entry{ID: record.MediaID, Vector: record.Vector})
	}
	return NewIndex(entries)
}

func encodeVector(v Vector) []byte {
	buf := make([]byte, 4*len(v))
	for i, value := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(value))
	}
	return buf
}

func decodeVector(blob []byte, dims int) (Vector, error) {
	if len(blob) != 4*dims {
		return nil, fmt.Errorf("embedding blob is %d bytes, expected %d", len(blob), 4*dims)
	}
	v := make(Vector, dims)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return v, nil
}
