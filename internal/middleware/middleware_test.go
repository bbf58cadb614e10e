package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathfinder-edu/pathfinder-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTokens struct {
	claims *service.Claims
	err    error
}

func (s stubTokens) ValidateToken(string) (*service.Claims, error) { return s.claims, s.err }

type stubSessions struct{ err error }

func (s stubSessions) ValidateStudentSession(context.Context, int, string) error { return s.err }

func TestRateLimiter_RefillsPerInterval(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := newRateLimiter(2, time.Minute, func() time.Time { return now })

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"))

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("1.1.1.1"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := newRateLimiter(1, time.Minute, time.Now)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")
}

func TestRequireStudentJWT(t *testing.T) {
	claims := &service.Claims{UserID: 7}
	claims.ID = "jti-1"

	tests := []struct {
		name   string
		header string
		tokens TokenValidator
		want   int
		code   string
	}{
		{"missing", "", stubTokens{}, http.StatusUnauthorized, "TOKEN_REQUIRED"},
		{"expired", "Bearer x", stubTokens{err: jwt.ErrTokenExpired}, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"invalid", "Bearer x", stubTokens{err: errors.New("bad")}, http.StatusUnauthorized, "TOKEN_INVALID"},
		{"ok", "Bearer x", stubTokens{claims: claims}, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/me", RequireStudentJWT(tt.tokens), CheckSingleDeviceSession(stubSessions{}), func(c *gin.Context) {
				c.String(http.StatusOK, "%d", GetClaims(c).UserID)
			})
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.code != "" {
				assert.Contains(t, w.Body.String(), tt.code)
			} else {
				assert.Equal(t, "7", w.Body.String())
			}
		})
	}
}

func TestCheckSingleDeviceSession_Rejects(t *testing.T) {
	r := gin.New()
	r.GET("/me",
		RequireStudentWSAuth(stubTokens{claims: &service.Claims{UserID: 1}}),
		CheckSingleDeviceSession(stubSessions{err: errors.New("session invalidated")}),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me?token=abc", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_INVALIDATED")
}

func TestBrotli(t *testing.T) {
	large := strings.Repeat("pathfinder ", 500)
	r := gin.New()
	r.Use(BrotliWithConfig(BrotliConfig{MinLength: 256}))
	r.GET("/large", func(c *gin.Context) { c.String(http.StatusOK, large) })
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "tiny") })

	req := httptest.NewRequest(http.MethodGet, "/large", nil)
	req.Header.Set("Accept-Encoding", "gzip, br;q=1.0")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "br", w.Header().Get("Content-Encoding"))
	body, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, large, string(body))

	req = httptest.NewRequest(http.MethodGet, "/small", nil)
	req.Header.Set("Accept-Encoding", "br")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "tiny", w.Body.String())
}

func TestCacheHeaders(t *testing.T) {
	r := gin.New()
	r.GET("/public", CacheControl(300), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/private", NoStore(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
	assert.Equal(t, "public, max-age=300", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
