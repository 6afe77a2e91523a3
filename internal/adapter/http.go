// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"

	"github.com/Danford/PrintChecks/internal/config"
	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/store"
	"github.com/Danford/PrintChecks/internal/utils"
	"github.com/Danford/PrintChecks/models"
)

const (
	pathKeys     = "/api/kv"
	pathKey      = "/api/kv/{key}"
	pathBatch    = "/api/kv/batch"
	pathBatchGet = "/api/kv/batch/get"
)

type httpStore struct {
	client *utils.HTTPClient
	hasher *utils.Hasher
	closed atomic.Bool

	logger *logger.Logger
}

// NewHTTPStore returns a [store.Backend] backed by the remote store server at
// cfg.HTTPAddress. A non-empty hashKey signs request bodies and verifies
// signed responses.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPStore(cfg config.Adapter, hashKey string, logger *logger.Logger) (store.Backend, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	logger.Debug().Str("func", "NewHTTPStore").Str("base_url", baseURL).Msg("remote store configured")

	return &httpStore{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		hasher: utils.NewHasher(hashKey),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (s *httpStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.closed.Load() {
		return nil, store.NewStorageError("get", key, store.ErrClosed)
	}

	resp, err := s.request(ctx).SetPathParam("key", key).Get(pathKey)
	if err != nil {
		return nil, transportError("get", key, err)
	}
	if err = mapHTTPError("get", key, resp); err != nil {
		return nil, err
	}

	body, err := s.verifiedBody("get", key, resp)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, body...), nil
}

func (s *httpStore) Set(ctx context.Context, key string, value []byte) error {
	if s.closed.Load() {
		return store.NewStorageError("set", key, store.ErrClosed)
	}

	resp, err := s.withBody(s.request(ctx), value, "application/octet-stream").
		SetPathParam("key", key).
		Put(pathKey)
	if err != nil {
		return transportError("set", key, err)
	}

	return mapHTTPError("set", key, resp)
}

func (s *httpStore) Remove(ctx context.Context, key string) error {
	if s.closed.Load() {
		return store.NewStorageError("remove", key, store.ErrClosed)
	}

	resp, err := s.request(ctx).SetPathParam("key", key).Delete(pathKey)
	if err != nil {
		return transportError("remove", key, err)
	}

	return mapHTTPError("remove", key, resp)
}

func (s *httpStore) Clear(ctx context.Context) error {
	if s.closed.Load() {
		return store.NewStorageError("clear", "", store.ErrClosed)
	}

	resp, err := s.request(ctx).Delete(pathKeys)
	if err != nil {
		return transportError("clear", "", err)
	}

	return mapHTTPError("clear", "", resp)
}

func (s *httpStore) Keys(ctx context.Context) ([]string, error) {
	if s.closed.Load() {
		return nil, store.NewStorageError("keys", "", store.ErrClosed)
	}

	resp, err := s.request(ctx).Get(pathKeys)
	if err != nil {
		return nil, transportError("keys", "", err)
	}
	if err = mapHTTPError("keys", "", resp); err != nil {
		return nil, err
	}

	var keys models.KeysResponse
	if err = s.decode("keys", "", resp, &keys); err != nil {
		return nil, err
	}
	return keys.Keys, nil
}

func (s *httpStore) Has(ctx context.Context, key string) (bool, error) {
	if s.closed.Load() {
		return false, store.NewStorageError("has", key, store.ErrClosed)
	}

	resp, err := s.request(ctx).SetPathParam("key", key).Head(pathKey)
	if err != nil {
		return false, transportError("has", key, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return false, nil
	}
	if err = mapHTTPError("has", key, resp); err != nil {
		return false, err
	}

	return true, nil
}

func (s *httpStore) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	if s.closed.Load() {
		return nil, store.NewStorageError("get many", "", store.ErrClosed)
	}

	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	body, err := json.Marshal(models.BatchGetRequest{Keys: keys})
	if err != nil {
		return nil, store.NewStorageError("get many", "", fmt.Errorf("%w: %w", store.ErrSerialization, err))
	}

	resp, err := s.withBody(s.request(ctx), body, "application/json").Post(pathBatchGet)
	if err != nil {
		return nil, transportError("get many", "", err)
	}
	if err = mapHTTPError("get many", "", resp); err != nil {
		return nil, err
	}

	var batch models.BatchEntries
	if err = s.decode("get many", "", resp, &batch); err != nil {
		return nil, err
	}

	for _, key := range keys {
		out[key] = batch.Entries[key]
	}
	return out, nil
}

func (s *httpStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	if s.closed.Load() {
		return store.NewStorageError("set many", "", store.ErrClosed)
	}
	if len(entries) == 0 {
		return nil
	}

	body, err := json.Marshal(models.BatchEntries{Entries: entries})
	if err != nil {
		return store.NewStorageError("set many", "", fmt.Errorf("%w: %w", store.ErrSerialization, err))
	}

	resp, err := s.withBody(s.request(ctx), body, "application/json").Put(pathBatch)
	if err != nil {
		return transportError("set many", "", err)
	}

	return mapHTTPError("set many", "", resp)
}

// Close marks the store closed. Idle connections are released; the server
// side data is untouched.
func (s *httpStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.client.GetClient().CloseIdleConnections()
	return nil
}

// request starts a request carrying the trace id of ctx, if any.
func (s *httpStore) request(ctx context.Context) *resty.Request {
	req := s.client.R().SetContext(ctx)
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader(utils.TraceIDHeader, traceID)
	}
	return req
}

// withBody attaches body and, when hashing is enabled, its signature.
func (s *httpStore) withBody(req *resty.Request, body []byte, contentType string) *resty.Request {
	req.SetHeader("Content-Type", contentType).SetBody(body)
	if s.hasher.Enabled() {
		req.SetHeader(utils.HashHeader, s.hasher.SumHex(body))
	}
	return req
}

// verifiedBody returns the response body after checking its signature. A
// server configured with the same key signs every non-empty body.
func (s *httpStore) verifiedBody(op, key string, resp *resty.Response) ([]byte, error) {
	body := resp.Body()
	if !s.hasher.Enabled() || len(body) == 0 {
		return body, nil
	}

	if !s.hasher.Verify(body, resp.Header().Get(utils.HashHeader)) {
		s.logger.Error().Str("func", "*httpStore.verifiedBody").Str("op", op).Msg("response hash mismatch")
		return nil, store.NewStorageError(op, key, ErrIntegrity)
	}
	return body, nil
}

func (s *httpStore) decode(op, key string, resp *resty.Response, target any) error {
	body, err := s.verifiedBody(op, key, resp)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(body, target); err != nil {
		return store.NewStorageError(op, key, fmt.Errorf("%w: %w", store.ErrSerialization, err))
	}
	return nil
}

var _ store.Backend = (*httpStore)(nil)
