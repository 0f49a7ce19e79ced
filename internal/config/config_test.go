package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad_ValidConfig(t *testing.T) {
	// Создаем временный конфиг файл
	configContent := `
env: test
http_server:
  addresshttp: ":8080"
  timeouthttp: 30s
  idle_timeout: 60s
jwttoken:
  jwt_secret_key: "test_secret_key"
  token_ttl: 168h
storage:
  driver: memory
rate_limit:
  default_limit: 60
  default_window: 1m
  sensitive_limit: 5
  sensitive_window: 1m
smtp:
  smtp_host: "smtp.example.com"
  smtp_port: "587"
news_cache:
  backend: memory
  ttl: 15m
  capacity: 128
`

	tmpFile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer func() {
		err = os.Remove(tmpFile.Name())
		require.NoError(t, err)
	}()

	_, err = tmpFile.WriteString(configContent)
	require.NoError(t, err)
	err = tmpFile.Close()
	require.NoError(t, err)

	originalPath := os.Getenv("CONFIG_PATH")
	defer func() {
		err = os.Setenv("CONFIG_PATH", originalPath)
		require.NoError(t, err)
	}()
	err = os.Setenv("CONFIG_PATH", tmpFile.Name())
	require.NoError(t, err)

	cfg := MustLoad()

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, ":8080", cfg.AddressHTTP)
	assert.Equal(t, 30*time.Second, cfg.TimeoutHTTP)
	assert.Equal(t, "test_secret_key", cfg.JWTSecretKey)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 60, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.Equal(t, 5, cfg.SensitiveLimit)
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
	assert.Equal(t, "memory", cfg.NewsCache.Backend)
	assert.Equal(t, 15*time.Minute, cfg.NewsCache.TTL)
	assert.Equal(t, 128, cfg.NewsCache.Capacity)
}

func TestMustLoad_Defaults(t *testing.T) {
	configContent := `
env: test
jwttoken:
  jwt_secret_key: "k"
`
	tmpFile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString(configContent)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	t.Setenv("CONFIG_PATH", tmpFile.Name())

	cfg := MustLoad()

	assert.Equal(t, "localhost:8080", cfg.AddressHTTP)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 60, cfg.DefaultLimit)
	assert.Equal(t, 5, cfg.SensitiveLimit)
	assert.Equal(t, 256, cfg.NewsCache.Capacity)
}
