// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/audshare/utils"
)

// Conform converts buf to the target format. Zero fields in target keep the
// buffer's own value. When nothing changes buf itself is returned, which is
// safe because buffers are immutable.
func Conform(buf *Buffer, target Format) (*Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if target.SampleRate < 0 || target.Channels < 0 {
		return nil, fmt.Errorf("%w: target %s", ErrInvalidBuffer, target)
	}

	out := buf
	if target.Channels != 0 && target.Channels != out.Channels() {
		out = Remap(out, target.Channels)
	}
	if target.SampleRate != 0 && target.SampleRate != out.sampleRate {
		out = Resample(out, target.SampleRate)
	}

	return out, nil
}

// Remap changes the channel count. Going to mono averages all channels,
// going from mono duplicates the single channel, and any other change maps
// output channel c to input channel c mod N.
func Remap(buf *Buffer, channels int) *Buffer {
	src := len(buf.data)
	out := allocBuffer(Format{SampleRate: buf.sampleRate, Channels: channels}, buf.length)

	switch {
	case channels == 1:
		inv := float32(1) / float32(src)
		dst := out.data[0]
		for _, ch := range buf.data {
			for i, v := range ch {
				dst[i] += v
			}
		}
		for i := range dst {
			dst[i] *= inv
		}
	default:
		for c := range channels {
			copy(out.data[c], buf.data[c%src])
		}
	}

	return out
}

// lowPassAlpha is the coefficient of the one-pole filter run before
// downsampling.
const lowPassAlpha = 0.5

// Resample converts buf to rate with Catmull-Rom cubic interpolation.
// The output holds round(len * rate / sampleRate) frames. When downsampling
// every channel first goes through a one-pole low-pass filter to limit
// aliasing.
func Resample(buf *Buffer, rate int) *Buffer {
	ratio := float64(buf.sampleRate) / float64(rate)
	frames := int(math.Round(float64(buf.length) / ratio))
	out := allocBuffer(Format{SampleRate: rate, Channels: len(buf.data)}, frames)
	if buf.length == 0 {
		return out
	}

	last := buf.length - 1
	at := func(ch []float32, i int) float32 {
		return ch[min(max(i, 0), last)]
	}

	var filtered []float32
	if ratio > 1 {
		filtered = make([]float32, buf.length)
	}

	for c, ch := range buf.data {
		if filtered != nil {
			lowPass(filtered, ch)
			ch = filtered
		}

		dst := out.data[c]
		for j := range frames {
			pos := float64(j) * ratio
			idx := int(pos)
			x := float32(pos - float64(idx))
			dst[j] = utils.CubicInterpolate(at(ch, idx-1), at(ch, idx), at(ch, idx+1), at(ch, idx+2), x)
		}
	}

	return out
}

// lowPass writes y[n] = a*x[n] + (1-a)*y[n-1] of src into dst.
func lowPass(dst, src []float32) {
	var y float32
	for i, x := range src {
		y = lowPassAlpha*x + (1-lowPassAlpha)*y
		dst[i] = y
	}
}
