// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/store"
	"github.com/Danford/PrintChecks/internal/utils"
)

var errorStatusMap = map[error]int{
	store.ErrKeyNotFound:   http.StatusNotFound,
	store.ErrQuotaExceeded: http.StatusInsufficientStorage,
	store.ErrUnavailable:   http.StatusServiceUnavailable,
	store.ErrClosed:        http.StatusServiceUnavailable,
}

// statusFromError returns the status for err and the message sent to the
// client. Unrecognised errors are reported as a bare 500 so that backend
// details stay in the server log.
func statusFromError(err error) (int, string) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, target.Error()
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func writeStoreError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status, message := statusFromError(err)
	logger.FromRequest(r).Err(err).Str("func", funcName).Int("status", status).Msg("storage operation failed")
	utils.WriteError(w, message, status)
}
