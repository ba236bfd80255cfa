package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:       "127.0.0.1",
			Port:       3000,
			ViewsDir:   "/tmp/views",
			StaticDir:  "/tmp/static",
			UploadsDir: "/tmp/uploads",
			BodyLimit:  5 * 1024 * 1024,
		},
		Store: StoreConfig{File: "/tmp/db.json"},
		Identity: IdentityConfig{
			CookieName: "identity",
			Secret:     "test-secret",
			TTL:        24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Capacity:     200,
			RefillRate:   10,
			RefillPeriod: time.Second,
		},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PROJECT_ROOT", t.TempDir())
	t.Setenv("IDENTITY_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.ServerAddress())
	assert.Equal(t, "identity", cfg.Identity.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Identity.TTL)
	assert.Equal(t, 5*1024*1024, cfg.Server.BodyLimit)
	assert.Equal(t, "db.json", filepath.Base(cfg.Store.File))
	assert.Empty(t, cfg.OAuth.ClientID)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PROJECT_ROOT", t.TempDir())
	t.Setenv("IDENTITY_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("IDENTITY_TTL", "1h")
	t.Setenv("STORE_FILE", "/var/data/users.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Identity.TTL)
	assert.Equal(t, "/var/data/users.json", cfg.Store.File)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("PROJECT_ROOT", t.TempDir())
	t.Setenv("IDENTITY_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IDENTITY_SECRET")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "missing uploads dir",
			mutate:  func(c *Config) { c.Server.UploadsDir = "" },
			wantErr: "UPLOADS_DIR",
		},
		{
			name:    "missing store file",
			mutate:  func(c *Config) { c.Store.File = "" },
			wantErr: "STORE_FILE",
		},
		{
			name:    "partial oauth",
			mutate:  func(c *Config) { c.OAuth.ClientID = "id-only" },
			wantErr: "must be set together",
		},
		{
			name:    "zero rate limit capacity",
			mutate:  func(c *Config) { c.RateLimit.Capacity = 0 },
			wantErr: "rate limit capacity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolvePath(t *testing.T) {
	root := t.TempDir()
	t.Setenv("PROJECT_ROOT", root)

	abs, err := resolvePath("/etc/app/db.json")
	require.NoError(t, err)
	assert.Equal(t, "/etc/app/db.json", abs)

	rel, err := resolvePath("./db-mock/db.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "db-mock/db.json"), rel)
}
