// SPDX-License-Identifier: EPL-2.0

package song

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema is the SQL DDL for the songs table. Execute it via
// [PostgresStore.Migrate] or apply it manually during deployment.
const Schema = `
CREATE TABLE IF NOT EXISTS songs (
    id         BIGSERIAL PRIMARY KEY,
    file_name  TEXT NOT NULL,
    file_type  TEXT NOT NULL DEFAULT '',
    data_url   TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_songs_file_name ON songs(file_name);
`

// DB is the database interface used by [PostgresStore]. Both *pgxpool.Pool
// and *pgx.Conn satisfy this interface.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore is a [Store] backed by a PostgreSQL database.
type PostgresStore struct {
	db DB
}

var (
	_ Store    = (*PostgresStore)(nil)
	_ Searcher = (*PostgresStore)(nil)
)

// NewPostgresStore creates a store over db. The caller is responsible for
// calling [PostgresStore.Migrate] before issuing queries.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate executes the [Schema] DDL.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return &PersistenceError{Op: "migrate", Err: err}
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, r Record) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}

	const query = `
		INSERT INTO songs (file_name, file_type, data_url)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int64
	if err := s.db.QueryRow(ctx, query, r.FileName, r.FileType, r.DataURL).Scan(&id); err != nil {
		return 0, &PersistenceError{Op: "save", Err: err}
	}

	return id, nil
}

func (s *PostgresStore) All(ctx context.Context) ([]Record, error) {
	const query = `
		SELECT id, file_name, file_type, data_url
		FROM songs
		ORDER BY id`

	return s.list(ctx, "all", query)
}

func (s *PostgresStore) ByName(ctx context.Context, name string) ([]Record, error) {
	const query = `
		SELECT id, file_name, file_type, data_url
		FROM songs
		WHERE file_name = $1
		ORDER BY id`

	return s.list(ctx, "by name", query, name)
}

// Search matches with strpos so the term needs no LIKE escaping.
func (s *PostgresStore) Search(ctx context.Context, term string) ([]Record, error) {
	const query = `
		SELECT id, file_name, file_type, data_url
		FROM songs
		WHERE strpos(file_name, $1) > 0
		ORDER BY id`

	return s.list(ctx, "search", query, term)
}

func (s *PostgresStore) list(ctx context.Context, op, query string, args ...any) ([]Record, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, &PersistenceError{Op: op, Err: err}
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.FileName, &r.FileType, &r.DataURL); err != nil {
			return nil, &PersistenceError{Op: op, Err: fmt.Errorf("scan: %w", err)}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: op, Err: err}
	}

	return out, nil
}
