// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/base64"
	"strings"
)

// encodeChunkSize bounds every single write into the base64 encoder so that
// arbitrarily large payloads are converted piecewise.
const encodeChunkSize = 0x8000

// encodeBase64 is equivalent to base64.StdEncoding.EncodeToString but streams
// the input through the encoder in encodeChunkSize pieces.
func encodeBase64(b []byte) string {
	var sb strings.Builder
	sb.Grow(base64.StdEncoding.EncodedLen(len(b)))

	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	for start := 0; start < len(b); start += encodeChunkSize {
		end := min(start+encodeChunkSize, len(b))
		// strings.Builder never returns a write error
		_, _ = enc.Write(b[start:end])
	}
	_ = enc.Close()

	return sb.String()
}

func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
