// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"context"
	"fmt"
	"runtime"

	"github.com/ik5/audshare/audio"
	"golang.org/x/sync/errgroup"
)

// EncodeAll runs Encode for every buffer on up to workers goroutines,
// keeping the caller free while large buffers are serialized. out[i] is the
// encoding of bufs[i]. The first failure cancels the remaining work.
// workers <= 0 means runtime.GOMAXPROCS(0).
func EncodeAll(ctx context.Context, bufs []*audio.Buffer, workers int) ([][]byte, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([][]byte, len(bufs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, buf := range bufs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := Encode(buf)
			if err != nil {
				return fmt.Errorf("buffer %d: %w", i, err)
			}
			out[i] = data

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
