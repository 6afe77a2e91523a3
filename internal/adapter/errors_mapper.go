// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/Danford/PrintChecks/internal/store"
	"github.com/Danford/PrintChecks/internal/utils"
)

// mapHTTPError converts a non-2xx response into a storage error. A 404 is
// the plain store.ErrKeyNotFound answer; everything else is wrapped in a
// *store.StorageError for op and key.
func mapHTTPError(op, key string, resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := errorMessage(resp)

	var err error
	switch resp.StatusCode() {
	case http.StatusNotFound:
		return store.ErrKeyNotFound
	case http.StatusInsufficientStorage:
		err = fmt.Errorf("%w: %s", store.ErrQuotaExceeded, body)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		err = fmt.Errorf("%w: %s", store.ErrUnavailable, body)
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		err = fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusInternalServerError:
		err = fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		err = fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}

	return store.NewStorageError(op, key, err)
}

// transportError wraps a failure to reach the server.
func transportError(op, key string, err error) error {
	return store.NewStorageError(op, key, fmt.Errorf("%w: %w", store.ErrUnavailable, err))
}

// errorMessage extracts the message of an ErrorResponse body, falling back
// to the raw body and then to the status text.
func errorMessage(resp *resty.Response) string {
	raw := resp.Body()

	var payload utils.ErrorResponse
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}

	if body := strings.TrimSpace(string(raw)); body != "" {
		return body
	}
	return http.StatusText(resp.StatusCode())
}
