// Package config loads runtime configuration from an optional YAML file,
// .env files and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Content sources.
const (
	SourceFile  = "file"
	SourceMongo = "mongo"
)

// Config holds all runtime configuration for the site server and the image tool.
type Config struct {
	Port           string   `yaml:"port"`
	BaseURL        string   `yaml:"base_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	LogLevel       string   `yaml:"log_level"`

	Content ContentConfig `yaml:"content"`
	Redis   RedisConfig   `yaml:"redis"`
	Email   EmailConfig   `yaml:"email"`
	Admin   AdminConfig   `yaml:"admin"`
	Leads   LeadConfig    `yaml:"leads"`
	Images  ImageConfig   `yaml:"images"`
}

type ContentConfig struct {
	Source        string `yaml:"source"`
	DataDir       string `yaml:"data_dir"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
}

// RedisConfig is optional; an empty Addr disables throttling and sitemap caching.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type EmailConfig struct {
	APIKey          string `yaml:"api_key"`
	FromAddress     string `yaml:"from_address"`
	OperatorAddress string `yaml:"operator_address"`
}

type AdminConfig struct {
	PasswordHash string        `yaml:"password_hash"`
	JWTSecret    string        `yaml:"jwt_secret"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

type LeadConfig struct {
	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`
}

type ImageConfig struct {
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	OutputDir string        `yaml:"output_dir"`
	Delay     time.Duration `yaml:"delay"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:           "8080",
		BaseURL:        "https://www.example-coastal-realty.com",
		AllowedOrigins: []string{"http://localhost:3000"},
		LogLevel:       "info",
		Content: ContentConfig{
			Source:        SourceFile,
			DataDir:       "./data",
			MongoDatabase: "coastal",
		},
		Email: EmailConfig{
			FromAddress:     "Coastal Realty <noreply@example-coastal-realty.com>",
			OperatorAddress: "leads@example-coastal-realty.com",
		},
		Admin: AdminConfig{TokenTTL: 12 * time.Hour},
		Leads: LeadConfig{RateLimit: 5, RateWindow: 10 * time.Minute},
		Images: ImageConfig{
			Model:     "gemini-2.5-flash-image",
			OutputDir: "./public/images",
			Delay:     2 * time.Second,
		},
	}
}

// Load reads .env (if present), then the YAML file at path (skipped when path is
// empty or the file does not exist), then environment overrides, and validates.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s must be an integer, got %q", key, v))
				return
			}
			*dst = n
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s must be a duration, got %q", key, v))
				return
			}
			*dst = d
		}
	}

	str("PORT", &c.Port)
	str("BASE_URL", &c.BaseURL)
	str("LOG_LEVEL", &c.LogLevel)
	if v, ok := lookup("ALLOWED_ORIGINS"); ok && v != "" {
		c.AllowedOrigins = splitList(v)
	}

	str("CONTENT_SOURCE", &c.Content.Source)
	str("DATA_DIR", &c.Content.DataDir)
	str("MONGODB_URI", &c.Content.MongoURI)
	str("MONGODB_DATABASE", &c.Content.MongoDatabase)

	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)
	integer("REDIS_DB", &c.Redis.DB)

	str("EMAIL_API_KEY", &c.Email.APIKey)
	str("EMAIL_FROM", &c.Email.FromAddress)
	str("EMAIL_OPERATOR", &c.Email.OperatorAddress)

	str("ADMIN_PASSWORD_HASH", &c.Admin.PasswordHash)
	str("JWT_SECRET", &c.Admin.JWTSecret)
	duration("ADMIN_TOKEN_TTL", &c.Admin.TokenTTL)

	integer("LEAD_RATE_LIMIT", &c.Leads.RateLimit)
	duration("LEAD_RATE_WINDOW", &c.Leads.RateWindow)

	str("GENAI_API_KEY", &c.Images.APIKey)
	str("IMAGE_MODEL", &c.Images.Model)
	str("IMAGE_OUTPUT_DIR", &c.Images.OutputDir)
	duration("IMAGE_DELAY", &c.Images.Delay)

	return errors.Join(errs...)
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	switch c.Content.Source {
	case SourceFile:
		if c.Content.DataDir == "" {
			return fmt.Errorf("data_dir is required for the file content source")
		}
	case SourceMongo:
		if c.Content.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for the mongo content source")
		}
	default:
		return fmt.Errorf("content source must be %q or %q, got %q", SourceFile, SourceMongo, c.Content.Source)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	if c.Admin.PasswordHash != "" && c.Admin.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ADMIN_PASSWORD_HASH is set")
	}
	if c.Leads.RateLimit < 0 {
		return fmt.Errorf("lead rate limit must not be negative")
	}
	return nil
}

// AdminEnabled reports whether operator login is configured.
func (c *Config) AdminEnabled() bool {
	return c.Admin.PasswordHash != ""
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
