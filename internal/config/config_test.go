package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("ASSESSMENT_DEBOUNCE_MS", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 800*time.Millisecond, cfg.AssessmentDebounce)
	assert.Equal(t, 30, cfg.AuthRateLimit)
	assert.Nil(t, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("ASSESSMENT_DEBOUNCE_MS", "250")
	t.Setenv("AUTH_RATE_LIMIT_PER_MIN", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("JWT_EXPIRY_HOURS", "2")

	cfg := Load()
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 250*time.Millisecond, cfg.AssessmentDebounce)
	assert.Equal(t, 30, cfg.AuthRateLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
}

func TestLoad_ZeroFallsBack(t *testing.T) {
	t.Setenv("PROCTORING_SESSION_TTL_HOURS", "0")
	t.Setenv("AUTH_RATE_LIMIT_PER_MIN", "0")
	t.Setenv("JWT_EXPIRY_HOURS", "0")
	t.Setenv("MAX_DB_CONNS", "-4")
	t.Setenv("ASSESSMENT_DEBOUNCE_MS", "0")

	cfg := Load()
	assert.Equal(t, 12*time.Hour, cfg.ProctoringSessionTTL)
	assert.Equal(t, 30, cfg.AuthRateLimit)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.EqualValues(t, 16, cfg.MaxDBConns)
	assert.Zero(t, cfg.AssessmentDebounce)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "login:7", CacheKey.StudentSessionKey(7))
	assert.Equal(t, "student:7:proctoring:abc", CacheKey.ProctoringSessionKey(7, "abc"))
}
