// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/utils"
	"github.com/Danford/PrintChecks/internal/validators"
	"github.com/Danford/PrintChecks/models"
)

// MaxValueSize bounds a single request body.
const MaxValueSize = 8 << 20

// keyParam returns the unescaped {key} route parameter. chi matches on the
// raw path when the request carried escaped characters.
func keyParam(r *http.Request) (string, error) {
	key := chi.URLParam(r, "key")
	if r.URL.RawPath != "" {
		var err error
		if key, err = url.PathUnescape(key); err != nil {
			return "", err
		}
	}
	if key == "" {
		return "", ErrInvalidKey
	}
	return key, nil
}

// key returns the validated {key} route parameter.
func (h *Handler) key(r *http.Request) (string, error) {
	key, err := keyParam(r)
	if err != nil {
		return "", err
	}
	if err = h.validator.Validate(r.Context(), key); err != nil {
		return "", err
	}
	return key, nil
}

// writeKeyError answers a rejected key. Reserved keys keep their reason.
func writeKeyError(w http.ResponseWriter, err error) {
	if errors.Is(err, validators.ErrReservedKey) {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.WriteError(w, ErrInvalidKey.Error(), http.StatusBadRequest)
}

func (h *Handler) listKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.store.Keys(r.Context())
	if err != nil {
		writeStoreError(w, r, "*Handler.listKeys", err)
		return
	}
	if keys == nil {
		keys = []string{}
	}

	_, _ = utils.WriteJSON(w, models.KeysResponse{Keys: keys}, http.StatusOK)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		writeStoreError(w, r, "*Handler.clear", err)
		return
	}

	logger.FromRequest(r).Info().Str("func", "*Handler.clear").Msg("store cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getValue(w http.ResponseWriter, r *http.Request) {
	key, err := h.key(r)
	if err != nil {
		writeKeyError(w, err)
		return
	}

	value, err := h.store.Get(r.Context(), key)
	if err != nil {
		writeStoreError(w, r, "*Handler.getValue", err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(value)
}

func (h *Handler) hasValue(w http.ResponseWriter, r *http.Request) {
	key, err := h.key(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ok, err := h.store.Has(r.Context(), key)
	if err != nil {
		status, _ := statusFromError(err)
		logger.FromRequest(r).Err(err).Str("func", "*Handler.hasValue").Str("key", key).Msg("storage operation failed")
		w.WriteHeader(status)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) setValue(w http.ResponseWriter, r *http.Request) {
	key, err := h.key(r)
	if err != nil {
		writeKeyError(w, err)
		return
	}

	value, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxValueSize))
	if err != nil {
		writeBodyError(w, r, "*Handler.setValue", err)
		return
	}

	if err = h.store.Set(r.Context(), key, value); err != nil {
		writeStoreError(w, r, "*Handler.setValue", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeValue(w http.ResponseWriter, r *http.Request) {
	key, err := h.key(r)
	if err != nil {
		writeKeyError(w, err)
		return
	}

	if err = h.store.Remove(r.Context(), key); err != nil {
		writeStoreError(w, r, "*Handler.removeValue", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) batchGet(w http.ResponseWriter, r *http.Request) {
	var req models.BatchGetRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxValueSize)).Decode(&req); err != nil {
		writeBodyError(w, r, "*Handler.batchGet", err)
		return
	}

	entries := map[string][]byte{}
	if len(req.Keys) > 0 {
		if err := h.validator.Validate(r.Context(), req); err != nil {
			writeValidationError(w, r, "*Handler.batchGet", err)
			return
		}
		var err error
		if entries, err = h.store.GetMany(r.Context(), req.Keys); err != nil {
			writeStoreError(w, r, "*Handler.batchGet", err)
			return
		}
	}

	_, _ = utils.WriteJSON(w, models.BatchEntries{Entries: entries}, http.StatusOK)
}

func (h *Handler) batchSet(w http.ResponseWriter, r *http.Request) {
	var req models.BatchEntries
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxValueSize)).Decode(&req); err != nil {
		writeBodyError(w, r, "*Handler.batchSet", err)
		return
	}

	if len(req.Entries) > 0 {
		if err := h.validator.Validate(r.Context(), req); err != nil {
			writeValidationError(w, r, "*Handler.batchSet", err)
			return
		}
		if err := h.store.SetMany(r.Context(), req.Entries); err != nil {
			writeStoreError(w, r, "*Handler.batchSet", err)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeBodyError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	logger.FromRequest(r).Err(err).Str("func", funcName).Msg("failed to read request body")

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		utils.WriteError(w, ErrValueTooLarge.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	utils.WriteError(w, ErrInvalidBody.Error(), http.StatusBadRequest)
}

func writeValidationError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	logger.FromRequest(r).Warn().Err(err).Str("func", funcName).Msg("request rejected")
	utils.WriteError(w, err.Error(), http.StatusBadRequest)
}
