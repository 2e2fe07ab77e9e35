// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 quantizes a sample in [-1, 1] to signed 16-bit PCM.
// Input is clamped first; negative values scale by 32768 and positive ones
// by 32767 so both ends land exactly on the int16 limits. NaN maps to 0.
func Float32ToInt16(x float32) int16 {
	v := float64(x)
	switch {
	case math.IsNaN(v):
		return 0
	case v > 1:
		v = 1
	case v < -1:
		v = -1
	}

	if v < 0 {
		return int16(math.Round(v * 32768))
	}

	return int16(math.Round(v * 32767))
}

// Int16ToFloat32 is the decoder-side inverse used by PCM16 sources.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}
