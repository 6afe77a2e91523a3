// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/utils"
)

func newRequestWithTrace(method, target, traceID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if traceID != "" {
		req.Header.Set(utils.TraceIDHeader, traceID)
	}
	return req
}

func serveRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name           string
		requestTraceID string
		wantSame       bool
	}{
		{name: "trace id from request header is reused", requestTraceID: "my-custom-trace-id", wantSame: true},
		{name: "uuid string is reused", requestTraceID: "550e8400-e29b-41d4-a716-446655440000", wantSame: true},
		{name: "missing trace id is generated", requestTraceID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}

			var ctxTraceID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxTraceID, _ = utils.GetTraceIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			rr := serveRequest(h.withTraceID(next), newRequestWithTrace(http.MethodGet, "/test", tt.requestTraceID))

			got := rr.Header().Get(utils.TraceIDHeader)
			require.NotEmpty(t, got)
			assert.Equal(t, got, ctxTraceID)
			if tt.wantSame {
				assert.Equal(t, tt.requestTraceID, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithTraceID_UniquePerRequest(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	mw := h.withTraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	first := serveRequest(mw, newRequestWithTrace(http.MethodGet, "/", "")).Header().Get(utils.TraceIDHeader)
	second := serveRequest(mw, newRequestWithTrace(http.MethodGet, "/", "")).Header().Get(utils.TraceIDHeader)

	assert.NotEqual(t, first, second)
}

func TestWithTraceID_AttachesLoggerWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.New("test", &buf)}

	mw := h.withTraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	}))
	serveRequest(mw, newRequestWithTrace(http.MethodGet, "/", "trace-42"))

	assert.Contains(t, buf.String(), `"trace_id":"trace-42"`)
	assert.Contains(t, buf.String(), `"message":"inside"`)
}
