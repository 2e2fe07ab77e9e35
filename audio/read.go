// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds how many (0, nil) reads ReadAll tolerates in a row.
const maxEmptyReads = 64

// ReadAll drains src into a Buffer. src is not closed.
// On error no partial buffer is returned.
func ReadAll(src Source) (*Buffer, error) {
	f := Format{SampleRate: src.SampleRate(), Channels: src.Channels()}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	size := max(src.BufSize(), 4096)
	size -= size % f.Channels
	buf := make([]float32, size)

	var samples []float32
	empty := 0
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
			empty = 0
		} else if err == nil {
			empty++
			if empty >= maxEmptyReads {
				return nil, ErrNoProgress
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}
	}

	return Deinterleave(samples, f)
}
