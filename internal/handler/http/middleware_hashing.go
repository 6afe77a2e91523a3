// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/utils"
)

// withHashing verifies the HashSHA256 header of every non-empty request body
// and signs every non-empty response body. It is a no-op when no hash key is
// configured.
func (h *Handler) withHashing(next http.Handler) http.Handler {
	if !h.hasher.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		if r.Body != nil {
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxValueSize))
			if err != nil {
				writeBodyError(w, r, "*Handler.withHashing", err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			if len(body) > 0 && !h.hasher.Verify(body, r.Header.Get(utils.HashHeader)) {
				log.Error().Str("func", "*Handler.withHashing").
					Str("hash from request", r.Header.Get(utils.HashHeader)).
					Msg("hashes are not equal")
				utils.WriteError(w, ErrIntegrityCheckFailed.Error(), http.StatusBadRequest)
				return
			}
		}

		bw := &bufferedResponseWriter{ResponseWriter: w}
		next.ServeHTTP(bw, r)

		if bw.body.Len() > 0 {
			w.Header().Set(utils.HashHeader, h.hasher.SumHex(bw.body.Bytes()))
		}
		bw.flush()
	})
}
