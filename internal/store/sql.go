package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mesh-intelligence/repticare/pkg/types"
)

// dialect holds the statements that differ between SQL engines.
type dialect struct {
	name   string
	schema string
	get    string
	upsert string
}

// SQL keeps blobs in a single key/value table reached through database/sql.
// SQLite and Postgres share this implementation and differ only in dialect.
type SQL struct {
	mu      sync.Mutex
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

// newSQL applies the dialect schema and wraps db.
func newSQL(db *sql.DB, d dialect) (*SQL, error) {
	if _, err := db.Exec(d.schema); err != nil {
		return nil, fmt.Errorf("applying %s schema: %w", d.name, err)
	}
	return &SQL{db: db, dialect: d, now: time.Now}, nil
}

func (s *SQL) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, types.ErrStoreClosed
	}

	var value []byte
	err := s.db.QueryRow(s.dialect.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting %s: %w", key, err)
	}
	return value, nil
}

func (s *SQL) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return types.ErrStoreClosed
	}

	if _, err := s.db.Exec(s.dialect.upsert, key, value, s.now().UTC()); err != nil {
		return fmt.Errorf("upserting %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database. Idempotent.
func (s *SQL) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
