package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed schema_postgres.sql
var postgresSchema string

var postgresDialect = dialect{
	name:   "postgres",
	schema: postgresSchema,
	get:    `SELECT value FROM blobs WHERE key = $1`,
	upsert: `INSERT INTO blobs (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
}

// pingTimeout bounds the connectivity check in OpenPostgres.
const pingTimeout = 3 * time.Second

// OpenPostgres connects through the pgx database/sql driver and ensures the
// blobs table exists.
func OpenPostgres(dsn string) (*SQL, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	s, err := newSQL(db, postgresDialect)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}
