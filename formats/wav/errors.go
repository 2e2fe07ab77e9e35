// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrOnlyPCMSupported     = errors.New("only integer PCM supported")
	ErrTooLarge             = errors.New("audio too large for a WAV container")
	ErrPartialFrame         = errors.New("sample count is not a whole number of frames")
)
