package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name        string
		development bool
		wantHSTS    bool
	}{
		{"production", false, true},
		{"development", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			SecurityHeaders(tt.development)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			h := rec.Header()
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
			assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
			assert.Equal(t, "no-referrer", h.Get("Referrer-Policy"))
			assert.Contains(t, h.Get("Content-Security-Policy"), "default-src 'self'")
			if tt.wantHSTS {
				assert.Contains(t, h.Get("Strict-Transport-Security"), "max-age=15552000")
			} else {
				assert.Empty(t, h.Get("Strict-Transport-Security"))
			}
		})
	}
}
