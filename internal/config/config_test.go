package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
backend:
  url: https://project.example.com/
  anon_key: anon
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://project.example.com", c.Backend.URL)
	assert.Equal(t, "avatars", c.Backend.AvatarBucket)
	assert.Equal(t, 30*time.Second, c.Backend.Timeout)
	assert.Equal(t, 20, c.PageSize)
	assert.Equal(t, "./data/quotevault.db", c.Database.Path)
	assert.Equal(t, CacheTypeMemory, c.Cache.Type)
	assert.Equal(t, 24*time.Hour, c.Cache.QuoteOfDayTTL)
	assert.Equal(t, "0 */6 * * *", c.Sync.RefreshSchedule)
	assert.False(t, c.Email.Enabled)
	assert.Equal(t, "https://ntfy.sh", c.Ntfy.ServerURL)
	assert.Equal(t, time.Local, c.Location())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
backend:
  url: https://project.example.com
`)
	t.Setenv("QUOTEVAULT_BACKEND_ANON_KEY", "from-env")
	t.Setenv("QUOTEVAULT_PAGE_SIZE", "50")
	t.Setenv("QUOTEVAULT_TIMEZONE", "Europe/Zurich")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.Backend.AnonKey)
	assert.Equal(t, 50, c.PageSize)
	assert.Equal(t, "Europe/Zurich", c.Location().String())
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			PageSize: 20,
			Backend:  &BackendConfig{URL: "https://x", AnonKey: "k"},
			Database: &DatabaseConfig{Path: "db"},
			Sync:     &SyncConfig{RefreshSchedule: "0 * * * *", SyncSchedule: "*/5 * * * *"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing backend", mutate: func(c *Config) { c.Backend = nil }, wantErr: true},
		{name: "missing anon key", mutate: func(c *Config) { c.Backend.AnonKey = "" }, wantErr: true},
		{name: "bad page size", mutate: func(c *Config) { c.PageSize = 0 }, wantErr: true},
		{name: "page size above maximum", mutate: func(c *Config) { c.PageSize = 101 }, wantErr: true},
		{name: "bad timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, wantErr: true},
		{name: "redis without url", mutate: func(c *Config) { c.Cache = &CacheConfig{Type: CacheTypeRedis} }, wantErr: true},
		{name: "unknown cache", mutate: func(c *Config) { c.Cache = &CacheConfig{Type: "disk"} }, wantErr: true},
		{name: "short cron", mutate: func(c *Config) { c.Sync.SyncSchedule = "* * *" }, wantErr: true},
		{name: "invalid cron", mutate: func(c *Config) { c.Sync.RefreshSchedule = "99 * * * *" }, wantErr: true},
		{name: "email without host", mutate: func(c *Config) { c.Email = &EmailConfig{Enabled: true, FromEmail: "a@b"} }, wantErr: true},
		{name: "webpush without keys", mutate: func(c *Config) { c.WebPush = &WebPushConfig{Enabled: true} }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validateConfig(c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, CacheTypeMemory, c.Cache.Type)
		})
	}
}
