package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runWithHeaders(isHTTPS bool, csp string) http.Header {
	h := SecurityHeadersWithCSP(isHTTPS, csp)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	return rr.Header()
}

func TestSecurityHeaders(t *testing.T) {
	headers := runWithHeaders(false, "default-src 'self'")

	assert.Equal(t, "DENY", headers.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", headers.Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", headers.Get("Referrer-Policy"))
	assert.Equal(t, "default-src 'self'", headers.Get("Content-Security-Policy"))
	assert.Empty(t, headers.Get("Strict-Transport-Security"))
}

func TestSecurityHeaders_HTTPS(t *testing.T) {
	headers := runWithHeaders(true, "")

	assert.Contains(t, headers.Get("Strict-Transport-Security"), "max-age=")
	assert.Empty(t, headers.Get("Content-Security-Policy"))
}
