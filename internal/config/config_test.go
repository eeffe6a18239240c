package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, SessionMemory, cfg.SessionStore)
	assert.Equal(t, time.Hour, cfg.UploadRateWindow)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL())
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORSOrigins)
	assert.Nil(t, cfg.TrustedProxies)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", StoragePostgres)
	t.Setenv("UPLOAD_RATE_LIMIT", "5")
	t.Setenv("UPLOAD_RATE_WINDOW", "10m")
	t.Setenv("JWT_REFRESH_EXPIRY", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg := Load()

	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, 5, cfg.UploadRateLimit)
	assert.Equal(t, 10*time.Minute, cfg.UploadRateWindow)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("UPLOAD_RATE_LIMIT", "many")
	t.Setenv("JWT_REFRESH_EXPIRY", "forever")

	cfg := Load()

	assert.Equal(t, 20, cfg.UploadRateLimit)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL())
}

func TestListsDropBlankEntries(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example,")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.1")

	cfg := Load()

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.TrustedProxies)
}

func TestBlankListFallsBack(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " , ")

	cfg := Load()

	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORSOrigins)
}
