package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(lookupFrom(map[string]string{
		"PORT":             "9090",
		"ALLOWED_ORIGINS":  "https://a.example, https://b.example,",
		"REDIS_ADDR":       "localhost:6379",
		"REDIS_DB":         "2",
		"LEAD_RATE_LIMIT":  "3",
		"LEAD_RATE_WINDOW": "1m",
		"IMAGE_DELAY":      "500ms",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 3, cfg.Leads.RateLimit)
	assert.Equal(t, time.Minute, cfg.Leads.RateWindow)
	assert.Equal(t, 500*time.Millisecond, cfg.Images.Delay)
}

func TestApplyEnvRejectsBadNumbers(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(lookupFrom(map[string]string{
		"REDIS_DB":         "zero",
		"LEAD_RATE_WINDOW": "soon",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_DB")
	assert.Contains(t, err.Error(), "LEAD_RATE_WINDOW")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "unknown source",
			mutate:  func(c *Config) { c.Content.Source = "s3" },
			wantErr: "content source",
		},
		{
			name:    "mongo without uri",
			mutate:  func(c *Config) { c.Content.Source = SourceMongo },
			wantErr: "MONGODB_URI",
		},
		{
			name:    "admin without secret",
			mutate:  func(c *Config) { c.Admin.PasswordHash = "$2a$10$abc" },
			wantErr: "JWT_SECRET",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.Leads.RateLimit = -1 },
			wantErr: "rate limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := []byte("port: \"7000\"\nbase_url: https://coast.example\nleads:\n  rate_limit: 9\n  rate_window: 2m\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://coast.example", cfg.BaseURL)
	assert.Equal(t, 9, cfg.Leads.RateLimit)
	assert.Equal(t, 2*time.Minute, cfg.Leads.RateWindow)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, SourceFile, cfg.Content.Source)
}
