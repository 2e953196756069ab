package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 256, cfg.Server.MaxTextLength)
	assert.Equal(t, CacheFile, cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "textsvg:", cfg.Redis.Prefix)
	assert.Empty(t, cfg.Presets.File)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	content := `
[server]
addr = "127.0.0.1:9000"

[cache]
backend = "redis"
ttl = "1h"

[redis]
addr = "redis:6379"
db = 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)

	rc := cfg.Redis.CacheOptions()
	assert.Equal(t, "redis:6379", rc.Addr)
	assert.Equal(t, 2, rc.DB)
}

func TestLoadSearchesConfigDir(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "textsvg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "textsvg", "textsvg.toml"),
		[]byte("[cache]\nbackend = \"none\"\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, CacheNone, cfg.Cache.Backend)
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("TEXTSVG_SERVER_ADDR", ":9999")
	t.Setenv("TEXTSVG_CACHE_BACKEND", "none")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, CacheNone, cfg.Cache.Backend)
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("invalid backend", func(t *testing.T) {
		t.Setenv("TEXTSVG_CACHE_BACKEND", "memcached")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cache.backend")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"file", Config{Cache: CacheConfig{Backend: CacheFile}}, false},
		{"none", Config{Cache: CacheConfig{Backend: CacheNone}}, false},
		{"redis with addr", Config{Cache: CacheConfig{Backend: CacheRedis}, Redis: RedisConfig{Addr: "x:1"}}, false},
		{"redis without addr", Config{Cache: CacheConfig{Backend: CacheRedis}}, true},
		{"empty backend", Config{}, true},
		{"negative text length", Config{Cache: CacheConfig{Backend: CacheNone}, Server: ServerConfig{MaxTextLength: -1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCacheDir(t *testing.T) {
	dir := isolate(t)

	got, err := (&Config{}).CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cache", "textsvg"), got)

	got, err = (&Config{Cache: CacheConfig{Dir: "/tmp/x"}}).CacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", got)
}
