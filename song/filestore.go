// SPDX-License-Identifier: EPL-2.0

package song

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"sync"
)

var _ Store = (*FileStore)(nil)

// fileRecord is the on-disk line; unlike the wire form it keeps the id.
type fileRecord struct {
	ID int64 `json:"id"`
	Record
}

// FileStore keeps songs as append-only JSON lines in a local file.
// Safe for concurrent use; a file should have a single FileStore.
type FileStore struct {
	mu     sync.Mutex
	path   string
	lastID int64
	loaded bool
	// size is where the next line starts; a torn last line sits past it
	size int64
	torn bool
}

// NewFileStore returns a store backed by path. The file is created on the
// first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(ctx context.Context, r Record) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if _, err := s.read(); err != nil {
			return 0, err
		}
	}

	line, err := json.Marshal(fileRecord{ID: s.lastID + 1, Record: r})
	if err != nil {
		return 0, &PersistenceError{Op: "marshal", Err: err}
	}

	var data []byte
	if s.torn && s.size > 0 {
		data = append(data, '\n')
	}
	data = append(append(data, line...), '\n')

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, &PersistenceError{Op: "open", Err: err}
	}
	defer f.Close()

	// drops a torn line left by an earlier failed write
	if err := f.Truncate(s.size); err != nil {
		return 0, &PersistenceError{Op: "truncate", Err: err}
	}
	if _, err := f.WriteAt(data, s.size); err != nil {
		_ = f.Truncate(s.size)
		return 0, &PersistenceError{Op: "write", Err: err}
	}

	s.size += int64(len(data))
	s.torn = false
	s.lastID++
	return s.lastID, nil
}

func (s *FileStore) All(ctx context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

func (s *FileStore) ByName(ctx context.Context, name string) ([]Record, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0)
	for _, r := range all {
		if r.FileName == name {
			out = append(out, r)
		}
	}

	return out, nil
}

// read decodes the whole file and refreshes lastID. A missing file is an
// empty library. A truncated last line, left by an interrupted write, is
// ignored and overwritten by the next Save. Caller holds mu.
func (s *FileStore) read() ([]Record, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.loaded, s.size, s.torn = true, 0, false
		return []Record{}, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}
	defer f.Close()

	// lines hold whole data URLs, well past bufio.Scanner's token size
	dec := json.NewDecoder(f)
	out := make([]Record, 0)
	var end int64
	torn := false
	for {
		var fr fileRecord
		err := dec.Decode(&fr)
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			torn = true
			break
		}
		if err != nil {
			return nil, &PersistenceError{Op: "decode", Err: err}
		}

		fr.Record.ID = fr.ID
		out = append(out, fr.Record)
		s.lastID = max(s.lastID, fr.ID)
		end = dec.InputOffset()
	}

	if !torn {
		info, err := f.Stat()
		if err != nil {
			return nil, &PersistenceError{Op: "stat", Err: err}
		}
		end = info.Size()
	}
	s.loaded, s.size, s.torn = true, end, torn

	return out, nil
}
