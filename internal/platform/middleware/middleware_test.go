// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/movielens/internal/platform/ctxutil"
	"github.com/taibuivan/movielens/internal/platform/middleware"
)

type corsConfig struct {
	development bool
	origins     []string
}

func (c corsConfig) IsDevelopment() bool      { return c.development }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

func okHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestRequestID_GeneratesAndPropagates covers both the generated and the client-supplied id.
*/
func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "abc-123")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "abc-123", seen)
}

/*
TestStructuredLogger_LogsStatus writes one access line with the final status.
*/
func TestStructuredLogger_LogsStatus(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	handler := middleware.StructuredLogger(logger)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/movies/9", nil))

	assert.Contains(t, buffer.String(), `"msg":"http_request_finished"`)
	assert.Contains(t, buffer.String(), `"status":404`)
	assert.Contains(t, buffer.String(), `"level":"WARN"`)
}

/*
TestRateLimiter_RejectsAfterBurst returns 429 once the bucket is empty.
*/
func TestRateLimiter_RejectsAfterBurst(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, 2)
	handler := limiter.Middleware()(okHandler())

	codes := make([]int, 0, 3)
	for range 3 {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "10.0.0.1:5000"
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
		if recorder.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, recorder.Header().Get("Retry-After"))
			assert.Contains(t, recorder.Body.String(), "RATE_LIMITED")
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

/*
TestRateLimiter_SeparatesClients keeps one bucket per IP.
*/
func TestRateLimiter_SeparatesClients(t *testing.T) {
	handler := middleware.NewRateLimiter(1, 1).Middleware()(okHandler())

	for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("X-Real-IP", ip)
		handler.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code, ip)
	}
}

/*
TestPanicRecovery_Returns500 converts a panic into the error envelope.
*/
func TestPanicRecovery_Returns500(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, recorder.Body.String(), "boom")
}

/*
TestCORS checks origin handling per environment.
*/
func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		config  corsConfig
		origin  string
		allowed bool
	}{
		{"development_accepts_any", corsConfig{development: true}, "http://localhost:3000", true},
		{"production_listed", corsConfig{origins: []string{"https://movielens.example"}}, "https://movielens.example", true},
		{"production_unlisted", corsConfig{origins: []string{"https://movielens.example"}}, "https://evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set("Origin", tt.origin)

			middleware.CORS(tt.config)(okHandler()).ServeHTTP(recorder, request)

			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

/*
TestCORS_Preflight short-circuits OPTIONS requests.
*/
func TestCORS_Preflight(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodOptions, "/api/v1/movies", nil)
	request.Header.Set("Origin", "http://localhost:3000")

	middleware.CORS(corsConfig{development: true})(okHandler()).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

/*
TestRealIP prefers proxy headers over the socket address.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", middleware.RealIP(request))
}
