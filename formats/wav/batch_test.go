// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ik5/audshare/audio"
)

func TestEncodeAll_MatchesEncode(t *testing.T) {
	t.Parallel()

	bufs := make([]*audio.Buffer, 8)
	for i := range bufs {
		samples := make([]float32, 100*(i+1))
		for j := range samples {
			samples[j] = float32(j%(i+2)) / float32(i+2)
		}
		bufs[i] = mustBuffer(t, 8000*(i%3+1), samples)
	}

	got, err := EncodeAll(context.Background(), bufs, 3)
	if err != nil {
		t.Fatalf("EncodeAll() error = %v", err)
	}
	if len(got) != len(bufs) {
		t.Fatalf("len = %d, want %d", len(got), len(bufs))
	}

	for i, b := range bufs {
		want, err := Encode(b)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		if !bytes.Equal(got[i], want) {
			t.Errorf("result %d differs from Encode", i)
		}
	}
}

func TestEncodeAll_InvalidBuffer(t *testing.T) {
	t.Parallel()

	bufs := []*audio.Buffer{mustBuffer(t, 8000, []float32{0.1}), nil}

	_, err := EncodeAll(context.Background(), bufs, 0)
	if !errors.Is(err, audio.ErrInvalidBuffer) {
		t.Errorf("EncodeAll() error = %v, want ErrInvalidBuffer", err)
	}
}

func TestEncodeAll_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bufs := []*audio.Buffer{mustBuffer(t, 8000, []float32{0.1}), mustBuffer(t, 8000, []float32{0.2})}

	_, err := EncodeAll(ctx, bufs, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("EncodeAll() error = %v, want context.Canceled", err)
	}
}

func TestEncodeAll_Empty(t *testing.T) {
	t.Parallel()

	got, err := EncodeAll(context.Background(), nil, 2)
	if err != nil || len(got) != 0 {
		t.Errorf("EncodeAll(nil) = %v, %v, want empty, nil", got, err)
	}
}
