package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishekk-y16/KisanMitra/internal/server/handlers"
	"github.com/abhishekk-y16/KisanMitra/internal/server/token"
)

func testTokenConfig() token.Config {
	return token.Config{
		Secret:         []byte("test-secret-key-at-least-32-bytes"),
		AccessTokenTTL: time.Hour,
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	logger, _ := newBufferLogger()
	cfg := testTokenConfig()

	signed, _, err := token.Issue(cfg, "field-tablet-01")
	require.NoError(t, err)

	var gotDeviceID string
	handler := AuthMiddleware(logger, cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDeviceID = handlers.DeviceIDFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/records/diagnoses", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "field-tablet-01", gotDeviceID)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	logger, _ := newBufferLogger()
	cfg := testTokenConfig()

	wrongKey, _, err := token.Issue(token.Config{
		Secret:         []byte("a-completely-different-secret-key"),
		AccessTokenTTL: time.Hour,
	}, "field-tablet-01")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signing key", "Bearer " + wrongKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(logger, cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not be reached")
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/records/diagnoses", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
