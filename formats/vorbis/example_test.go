// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ik5/audshare/audio"
	"github.com/ik5/audshare/formats/vorbis"
	"github.com/ik5/audshare/formats/wav"
)

// Example_rejected shows the error for input that is not Ogg Vorbis.
func Example_rejected() {
	_, err := vorbis.Decoder{}.Decode(bytes.NewReader([]byte("This is not Ogg Vorbis data")))

	fmt.Println(errors.Is(err, vorbis.ErrNotVorbis))
	// Output: true
}

// ExampleDecoder_Decode converts a Ogg Vorbis file to a 16-bit WAV file.
func ExampleDecoder_Decode() {
	in, err := os.Open("song.ogg")
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	src, err := vorbis.Decoder{}.Decode(in)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s, %v\n", buf.Format(), buf.Duration())

	out, err := os.Create("song.wav")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	if err := wav.WriteBuffer(out, buf); err != nil {
		log.Fatal(err)
	}
}

// ExampleDecoder_registry registers the decoder under its format key.
func ExampleDecoder_registry() {
	reg := audio.NewRegistry()
	reg.Register("ogg", vorbis.Decoder{})

	_, ok := reg.Get("ogg")
	fmt.Println(ok)
	// Output: true
}
