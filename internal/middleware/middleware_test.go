package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-signing-key")

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	h := RequestIDMiddleware(LoggingMiddleware(zerolog.New(&buf), http.HandlerFunc(okHandler)))

	req := httptest.NewRequest(http.MethodGet, "/jobs?title=net", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"method":"GET"`)
	assert.Contains(t, out, `"url":"/jobs?title=net"`)
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"status":418`)
}

func TestHeadersMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	HeadersMiddleware(http.HandlerFunc(okHandler), "prod").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = httptest.NewRecorder()
	HeadersMiddleware(http.HandlerFunc(okHandler), "dev").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, rec.Header().Get("X-Content-Type-Options"))
}

func TestAdminAuthenticatedMiddleware(t *testing.T) {
	admin, err := CreateToken(testKey, "admin", true, time.Hour)
	require.NoError(t, err)
	user, err := CreateToken(testKey, "u1", false, time.Hour)
	require.NoError(t, err)
	expired, err := CreateToken(testKey, "admin", true, -time.Hour)
	require.NoError(t, err)
	forged, err := CreateToken([]byte("other-key"), "admin", true, time.Hour)
	require.NoError(t, err)

	h := AdminAuthenticatedMiddleware(testKey, okHandler)
	tests := []struct {
		name   string
		header string
		status int
	}{
		{"admin", "Bearer " + admin, http.StatusTeapot},
		{"not admin", "Bearer " + user, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"forged", "Bearer " + forged, http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + admin, http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/companies", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestGetUserFromJWT(t *testing.T) {
	tk, err := CreateToken(testKey, "admin", true, 0)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tk)
	claims, err := GetUserFromJWT(req, testKey)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "admin", claims.Username)
	assert.Zero(t, claims.ExpiresAt)
}
