// SPDX-License-Identifier: EPL-2.0

// Package song stores shared songs and answers name searches over them.
//
// Three Store implementations are provided: MemStore for tests and
// short-lived peers, FileStore for a local JSON-lines library and
// PostgresStore for a durable database-backed library.
package song

import (
	"context"
	"strings"
)

// Store is a library of songs keyed by an auto-incrementing id, with a
// non-unique index on FileName.
type Store interface {
	// Save stores r under a new id and returns that id. r.ID is ignored.
	Save(ctx context.Context, r Record) (int64, error)
	// All returns every record in id order.
	All(ctx context.Context) ([]Record, error)
	// ByName returns the records whose FileName equals name exactly.
	ByName(ctx context.Context, name string) ([]Record, error)
}

// Searcher is implemented by stores that can filter by name themselves.
type Searcher interface {
	Search(ctx context.Context, term string) ([]Record, error)
}

// Search returns the records whose FileName contains term after trimming
// surrounding white space. The match is case-sensitive; an empty term
// matches every record.
func Search(ctx context.Context, store Store, term string) ([]Record, error) {
	term = strings.TrimSpace(term)

	if s, ok := store.(Searcher); ok {
		return s.Search(ctx, term)
	}

	all, err := store.All(ctx)
	if err != nil {
		return nil, err
	}

	return filter(all, term), nil
}

func filter(records []Record, term string) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(r.FileName, term) {
			out = append(out, r)
		}
	}

	return out
}
