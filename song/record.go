// SPDX-License-Identifier: EPL-2.0

package song

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRecord = errors.New("invalid song record")

// Record is a shared song as it travels between peers and as it is stored.
// DataURL embeds either an encoded WAV or the original file bytes.
type Record struct {
	// ID is assigned by the store on Save and never sent to peers.
	ID       int64  `json:"-"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	DataURL  string `json:"dataURL"`
}

// Validate rejects records without a name or a payload.
func (r Record) Validate() error {
	if strings.TrimSpace(r.FileName) == "" {
		return fmt.Errorf("%w: empty file name", ErrInvalidRecord)
	}
	if r.DataURL == "" {
		return fmt.Errorf("%w: %q has no data", ErrInvalidRecord, r.FileName)
	}

	return nil
}

// PersistenceError reports that a store could not be read or written.
// Callers decide whether to retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("song store: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
