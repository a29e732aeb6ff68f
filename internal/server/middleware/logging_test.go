package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

func TestLoggingMiddleware(t *testing.T) {
	logger, buf := newBufferLogger()

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/records/diagnoses", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	out := buf.String()
	assert.Contains(t, out, "/api/v1/records/diagnoses")
	assert.Contains(t, out, "status=201")
	assert.Contains(t, out, "bytes_written=7")
}

func TestLoggingMiddleware_ErrorLevels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"server error", http.StatusInternalServerError, "level=ERROR"},
		{"client error", http.StatusBadRequest, "level=WARN"},
		{"success", http.StatusOK, "level=INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger()
			handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Contains(t, buf.String(), tt.level)
		})
	}
}

func TestLoggingWithSkip(t *testing.T) {
	logger, buf := newBufferLogger()

	handler := LoggingWithSkip(logger, []string{"/api/v1/health"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Empty(t, buf.String(), "health probes must not be logged")

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/other", nil))
	assert.Contains(t, buf.String(), "/api/v1/other")
}
