// SPDX-License-Identifier: EPL-2.0

// Package dataurl frames binary payloads as RFC 2397 data URLs, the form in
// which songs travel between peers and sit in the song store.
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"

	vdataurl "github.com/vincent-petithory/dataurl"
)

const (
	scheme = "data:"

	// fallbackType is used when a song's media type cannot be parsed.
	fallbackType = "application/octet-stream"
)

var (
	ErrNotDataURL = errors.New("not a data URL")
	ErrMalformed  = errors.New("malformed data URL payload")
)

// Encode returns "data:<mediaType>;base64,<payload>". Media type parameters
// are kept; an unparsable media type is replaced by application/octet-stream.
func Encode(mediaType string, data []byte) string {
	base, params, err := mime.ParseMediaType(mediaType)
	if err != nil || strings.Count(base, "/") != 1 {
		base, params = fallbackType, nil
	}

	pairs := make([]string, 0, 2*len(params))
	for k, v := range params {
		pairs = append(pairs, k, v)
	}

	return vdataurl.New(data, base, pairs...).String()
}

// Decode splits a data URL into its media type and payload. The media type
// is returned lower-cased and without parameters. Both base64 and
// percent-encoded payloads are accepted.
func Decode(s string) (mediaType string, data []byte, err error) {
	if len(s) < len(scheme) || !strings.EqualFold(s[:len(scheme)], scheme) {
		return "", nil, ErrNotDataURL
	}

	meta, payload, ok := strings.Cut(s[len(scheme):], ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing ','", ErrNotDataURL)
	}

	// The header goes through the parser on its own: it stops reading at the
	// first payload error and would strand its lexer goroutine.
	meta = strings.ToLower(meta)
	head, err := vdataurl.DecodeString(scheme + meta + ",")
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrNotDataURL, err)
	}

	if head.Encoding == vdataurl.EncodingBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// some encoders drop the padding
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
	} else {
		data, err = vdataurl.Unescape(payload)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if data == nil {
		data = []byte{}
	}

	return head.ContentType(), data, nil
}
