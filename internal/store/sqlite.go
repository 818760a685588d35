// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"
)

// Only embeddings are persisted: vectors are a pure function of model and
// text, so they are safe to keep. Grading results are never stored.
const schema = `
CREATE TABLE IF NOT EXISTS embeddings (
    model TEXT NOT NULL,
    content_hash TEXT NOT NULL,
    dimensions INTEGER NOT NULL,
    vector BLOB NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (model, content_hash)
);
`

// SQLiteStore is a persistent embedding cache.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection avoids "database is locked".
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Embeddings
// ============================================================================

func (s *SQLiteStore) GetEmbedding(ctx context.Context, model, contentHash string) ([]float32, error) {
	var dims int
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT dimensions, vector FROM embeddings WHERE model = ? AND content_hash = ?",
		model, contentHash,
	).Scan(&dims, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeVector(blob, dims)
}

func (s *SQLiteStore) PutEmbedding(ctx context.Context, model, contentHash string, vec []float32) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO embeddings (model, content_hash, dimensions, vector, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		model, contentHash, len(vec), encodeVector(vec), time.Now().Unix(),
	)
	return err
}

// CountEmbeddings returns the number of cached vectors for model.
func (s *SQLiteStore) CountEmbeddings(ctx context.Context, model string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM embeddings WHERE model = ?", model).Scan(&n)
	return n, err
}

// encodeVector packs vec as little-endian float32s.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(blob []byte, dims int) ([]float32, error) {
	if len(blob) != 4*dims {
		return nil, fmt.Errorf("corrupt embedding: %d bytes for %d dimensions", len(blob), dims)
	}
	vec := make([]float32, dims)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[4*i:]))
	}
	return vec, nil
}
