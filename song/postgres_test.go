// SPDX-License-Identifier: EPL-2.0

package song

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// mockRow implements pgx.Row for testing.
type mockRow struct {
	scanFunc func(dest ...any) error
}

func (r *mockRow) Scan(dest ...any) error { return r.scanFunc(dest...) }

// mockRows implements pgx.Rows for testing.
type mockRows struct {
	data   [][]any
	idx    int
	err    error
	closed bool
}

func (r *mockRows) Close()                                       { r.closed = true }
func (r *mockRows) Err() error                                   { return r.err }
func (r *mockRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *mockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *mockRows) RawValues() [][]byte                          { return nil }
func (r *mockRows) Conn() *pgx.Conn                              { return nil }
func (r *mockRows) Values() ([]any, error)                       { return nil, nil }

func (r *mockRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *mockRows) Scan(dest ...any) error {
	row := r.data[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: expected %d columns, got %d destinations", len(row), len(dest))
	}
	for i, v := range row {
		switch d := dest[i].(type) {
		case *int64:
			*d = v.(int64)
		case *string:
			*d = v.(string)
		default:
			return fmt.Errorf("scan: unsupported type at index %d: %T", i, dest[i])
		}
	}
	return nil
}

// mockDB implements the DB interface for testing.
type mockDB struct {
	queryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	queryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	execFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.queryRowFunc != nil {
		return m.queryRowFunc(ctx, sql, args...)
	}
	return &mockRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }}
}

func (m *mockDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, sql, args...)
	}
	return &mockRows{}, nil
}

func (m *mockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.execFunc != nil {
		return m.execFunc(ctx, sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

func TestPostgresStore_Migrate(t *testing.T) {
	t.Parallel()

	var gotSQL string
	db := &mockDB{execFunc: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
		gotSQL = sql
		return pgconn.CommandTag{}, nil
	}}

	if err := NewPostgresStore(db).Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if gotSQL != Schema {
		t.Error("Migrate() did not execute Schema")
	}
	if !strings.Contains(Schema, "idx_songs_file_name") {
		t.Error("Schema lacks the file_name index")
	}
}

func TestPostgresStore_MigrateError(t *testing.T) {
	t.Parallel()

	db := &mockDB{execFunc: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
		return pgconn.CommandTag{}, errors.New("connection refused")
	}}

	err := NewPostgresStore(db).Migrate(context.Background())

	var perr *PersistenceError
	if !errors.As(err, &perr) || perr.Op != "migrate" {
		t.Errorf("Migrate() error = %v, want migrate PersistenceError", err)
	}
}

func TestPostgresStore_Save(t *testing.T) {
	t.Parallel()

	var gotArgs []any
	db := &mockDB{queryRowFunc: func(_ context.Context, sql string, args ...any) pgx.Row {
		gotArgs = args
		return &mockRow{scanFunc: func(dest ...any) error {
			*dest[0].(*int64) = 42
			return nil
		}}
	}}

	r := rec("intro")
	id, err := NewPostgresStore(db).Save(context.Background(), r)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if id != 42 {
		t.Errorf("Save() id = %d, want 42", id)
	}
	if len(gotArgs) != 3 || gotArgs[0] != r.FileName || gotArgs[1] != r.FileType || gotArgs[2] != r.DataURL {
		t.Errorf("Save() args = %v", gotArgs)
	}
}

func TestPostgresStore_SaveErrors(t *testing.T) {
	t.Parallel()

	s := NewPostgresStore(&mockDB{})

	if _, err := s.Save(context.Background(), Record{}); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("Save(empty) error = %v, want ErrInvalidRecord", err)
	}

	_, err := s.Save(context.Background(), rec("a"))
	var perr *PersistenceError
	if !errors.As(err, &perr) || !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("Save() error = %v, want PersistenceError wrapping ErrNoRows", err)
	}
}

func TestPostgresStore_Queries(t *testing.T) {
	t.Parallel()

	rows := [][]any{
		{int64(1), "intro", "audio/wav", "data:a"},
		{int64(3), "intro", "audio/mpeg", "data:b"},
	}

	tests := []struct {
		name     string
		call     func(s *PostgresStore) ([]Record, error)
		wantSQL  string
		wantArgs []any
	}{
		{"all", func(s *PostgresStore) ([]Record, error) { return s.All(context.Background()) }, "ORDER BY id", nil},
		{"by name", func(s *PostgresStore) ([]Record, error) { return s.ByName(context.Background(), "intro") }, "file_name = $1", []any{"intro"}},
		{"search", func(s *PostgresStore) ([]Record, error) { return Search(context.Background(), s, " int ") }, "strpos(file_name, $1)", []any{"int"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mr := &mockRows{data: rows}
			var gotSQL string
			var gotArgs []any
			db := &mockDB{queryFunc: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				gotSQL, gotArgs = sql, args
				return mr, nil
			}}

			got, err := tt.call(NewPostgresStore(db))
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if !strings.Contains(gotSQL, tt.wantSQL) {
				t.Errorf("query %q lacks %q", gotSQL, tt.wantSQL)
			}
			if fmt.Sprint(gotArgs) != fmt.Sprint(tt.wantArgs) {
				t.Errorf("args = %v, want %v", gotArgs, tt.wantArgs)
			}
			if len(got) != 2 || got[1].ID != 3 || got[1].FileType != "audio/mpeg" || got[0].DataURL != "data:a" {
				t.Errorf("records = %+v", got)
			}
			if !mr.closed {
				t.Error("rows not closed")
			}
		})
	}
}

func TestPostgresStore_QueryErrors(t *testing.T) {
	t.Parallel()

	queryErr := &mockDB{queryFunc: func(context.Context, string, ...any) (pgx.Rows, error) {
		return nil, errors.New("timeout")
	}}
	rowsErr := &mockDB{queryFunc: func(context.Context, string, ...any) (pgx.Rows, error) {
		return &mockRows{err: errors.New("conn reset")}, nil
	}}
	scanErr := &mockDB{queryFunc: func(context.Context, string, ...any) (pgx.Rows, error) {
		return &mockRows{data: [][]any{{"short"}}}, nil
	}}

	for name, db := range map[string]*mockDB{"query": queryErr, "rows": rowsErr, "scan": scanErr} {
		_, err := NewPostgresStore(db).All(context.Background())

		var perr *PersistenceError
		if !errors.As(err, &perr) || perr.Op != "all" {
			t.Errorf("%s: All() error = %v, want PersistenceError", name, err)
		}
	}
}
