package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/afdei/federation-cms/internal/runtimeconfig"
)

func TestConfigValidate_DefaultsAreValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_Failures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"server addr", func(c *runtimeconfig.Config) { c.Server.Addr = " " }, runtimeconfig.ErrServerAddrRequired},
		{"driver", func(c *runtimeconfig.Config) { c.Database.Driver = "mysql" }, runtimeconfig.ErrDatabaseDriverUnknown},
		{"dsn", func(c *runtimeconfig.Config) { c.Database.DSN = "" }, runtimeconfig.ErrDatabaseDSNRequired},
		{"jwt secret", func(c *runtimeconfig.Config) { c.Auth.JWTSecret = "" }, runtimeconfig.ErrJWTSecretRequired},
		{"token ttl", func(c *runtimeconfig.Config) { c.Auth.TokenTTL = 0 }, runtimeconfig.ErrTokenTTLInvalid},
		{"upload dir", func(c *runtimeconfig.Config) { c.Media.UploadDir = "" }, runtimeconfig.ErrUploadDirRequired},
		{"upload limit", func(c *runtimeconfig.Config) { c.Media.MaxUploadBytes = -1 }, runtimeconfig.ErrUploadLimitInvalid},
		{"cache ttl", func(c *runtimeconfig.Config) {
			c.Cache.Enabled = true
			c.Cache.TTL = 0
		}, runtimeconfig.ErrCacheTTLInvalid},
		{"rate limit", func(c *runtimeconfig.Config) { c.RateLimit.RequestsPerMinute = 0 }, runtimeconfig.ErrRateLimitInvalid},
		{"logging provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }, runtimeconfig.ErrLoggingProviderUnknown},
		{"logging level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"logging format", func(c *runtimeconfig.Config) { c.Logging.Format = "xml" }, runtimeconfig.ErrLoggingFormatInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_CacheTTLIgnoredWhenDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Cache.TTL = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := runtimeconfig.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Auth.TokenTTL != 7*24*time.Hour {
		t.Fatalf("expected 7d token ttl, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Media.MaxUploadBytes != 50<<20 {
		t.Fatalf("expected 50MiB upload cap, got %d", cfg.Media.MaxUploadBytes)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SITE_DATABASE_DRIVER", "postgres")
	t.Setenv("SITE_DATABASE_DSN", "postgres://site@localhost/site?sslmode=disable")
	t.Setenv("SITE_CACHE_ENABLED", "true")

	cfg, err := runtimeconfig.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("expected postgres driver, got %q", cfg.Database.Driver)
	}
	if !cfg.Cache.Enabled {
		t.Fatalf("expected cache enabled from environment")
	}
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	body := "server:\n  addr: \":8080\"\nseed:\n  enabled: false\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.Server.Addr)
	}
	if cfg.Seed.Enabled {
		t.Fatalf("expected seeding disabled by file")
	}
}

func TestLoad_MissingDotenvIgnored(t *testing.T) {
	if _, err := runtimeconfig.Load("", filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	t.Setenv("SITE_AUTH_JWT_SECRET", " ")
	if _, err := runtimeconfig.Load(""); !errors.Is(err, runtimeconfig.ErrJWTSecretRequired) {
		t.Fatalf("expected ErrJWTSecretRequired, got %v", err)
	}
}
