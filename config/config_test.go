package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "generic", cfg.Formatter.DefaultProfile)
	assert.Equal(t, 24*time.Hour, cfg.Formatter.CacheTTLDuration())

	// 缺失时会写出默认配置文件
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
log:
  level: debug
  file: logs/app.log
cache:
  type: redis
  address: 127.0.0.1:6380
  password: ${READING_REDIS_PASSWORD}
formatter:
  default_profile: plain
  cache_ttl: 60
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("READING_REDIS_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host, "未设置的项使用默认值")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "logs/app.log", cfg.Log.File)
	assert.Equal(t, "redis", cfg.Cache.Type)
	assert.Equal(t, "secret", cfg.Cache.Password)
	assert.Equal(t, "plain", cfg.Formatter.DefaultProfile)
	assert.Equal(t, time.Minute, cfg.Formatter.CacheTTLDuration())
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("FORMATTER_DEFAULT_PROFILE", "tarot")
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tarot", cfg.Formatter.DefaultProfile)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
