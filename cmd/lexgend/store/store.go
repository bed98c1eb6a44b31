// Package store persists the daemon's API keys and a log of past
// compilation requests to a pure-Go (no cgo) SQLite database, grounded on
// tunaq's server/dao/sqlite package: a thin store type wrapping
// *sql.DB, one init() that creates every table, and wrapDBError
// translating sql.ErrNoRows into the ErrNotFound sentinel.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup by ID finds no row.
var ErrNotFound = errors.New("not found")

// APIKey is a daemon credential: an opaque ID paired with a bcrypt hash of
// its secret (hashing itself is authstore's job, not this package's).
type APIKey struct {
	ID         uuid.UUID
	SecretHash string
	CreatedAt  time.Time
}

// CompileRecord logs one past /compile request, keyed by a fresh job ID.
type CompileRecord struct {
	ID         uuid.UUID
	SourceHash string
	Success    bool
	Message    string
	CreatedAt  time.Time
}

// Store is the daemon's SQLite-backed persistence layer.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and opens the SQLite database at path, and runs
// schema initialization.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS api_keys (
			id TEXT PRIMARY KEY,
			secret_hash TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS compilations (
			id TEXT PRIMARY KEY,
			source_hash TEXT NOT NULL,
			success INTEGER NOT NULL,
			message TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateAPIKey stores a new API key record with id as its ID.
func (s *Store) CreateAPIKey(id uuid.UUID, secretHash string) error {
	_, err := s.db.Exec(
		`INSERT INTO api_keys (id, secret_hash, created_at) VALUES (?, ?, ?)`,
		id.String(), secretHash, time.Now().Unix(),
	)
	return wrapDBError(err)
}

// GetAPIKey looks up a key by ID.
func (s *Store) GetAPIKey(id uuid.UUID) (APIKey, error) {
	row := s.db.QueryRow(`SELECT id, secret_hash, created_at FROM api_keys WHERE id = ?`, id.String())

	var idStr, hash string
	var createdAt int64
	if err := row.Scan(&idStr, &hash, &createdAt); err != nil {
		return APIKey{}, wrapDBError(err)
	}

	parsedID, err := uuid.Parse(idStr)
	if err != nil {
		return APIKey{}, fmt.Errorf("stored key id %q is not a valid uuid: %w", idStr, err)
	}

	return APIKey{ID: parsedID, SecretHash: hash, CreatedAt: time.Unix(createdAt, 0)}, nil
}

// LogCompile records the outcome of a /compile request.
func (s *Store) LogCompile(rec CompileRecord) error {
	success := 0
	if rec.Success {
		success = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO compilations (id, source_hash, success, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.SourceHash, success, rec.Message, rec.CreatedAt.Unix(),
	)
	return wrapDBError(err)
}

// GetCompileRecord looks up a past /compile request by its job ID.
func (s *Store) GetCompileRecord(id uuid.UUID) (CompileRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, source_hash, success, message, created_at FROM compilations WHERE id = ?`,
		id.String(),
	)

	var idStr, sourceHash, message string
	var success int
	var createdAt int64
	if err := row.Scan(&idStr, &sourceHash, &success, &message, &createdAt); err != nil {
		return CompileRecord{}, wrapDBError(err)
	}

	parsedID, err := uuid.Parse(idStr)
	if err != nil {
		return CompileRecord{}, fmt.Errorf("stored compile id %q is not a valid uuid: %w", idStr, err)
	}

	return CompileRecord{
		ID:         parsedID,
		SourceHash: sourceHash,
		Success:    success != 0,
		Message:    message,
		CreatedAt:  time.Unix(createdAt, 0),
	}, nil
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
