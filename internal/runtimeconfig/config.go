package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrServerAddrRequired     = errors.New("site config: server address is required")
	ErrDatabaseDriverUnknown  = errors.New("site config: database driver is invalid")
	ErrDatabaseDSNRequired    = errors.New("site config: database dsn is required")
	ErrJWTSecretRequired      = errors.New("site config: jwt secret is required")
	ErrTokenTTLInvalid        = errors.New("site config: token ttl must be positive")
	ErrUploadDirRequired      = errors.New("site config: media upload directory is required")
	ErrUploadLimitInvalid     = errors.New("site config: media upload limit must be positive")
	ErrCacheTTLInvalid        = errors.New("site config: cache ttl must be positive when cache is enabled")
	ErrRateLimitInvalid       = errors.New("site config: rate limit must be positive when enabled")
	ErrLoggingProviderUnknown = errors.New("site config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("site config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("site config: logging format is invalid")
)

// Config aggregates every runtime knob of the site backend.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Media     MediaConfig
	Cache     CacheConfig
	Logging   LoggingConfig
	Seed      SeedConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string
	StaticDir       string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig selects the bun dialect and connection string.
type DatabaseConfig struct {
	Driver string
	DSN    string
	Debug  bool
}

// AuthConfig captures token signing and bootstrap admin credentials.
type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// MediaConfig controls where uploads land and how they are exposed.
type MediaConfig struct {
	UploadDir      string
	PublicPath     string
	MaxUploadBytes int64
}

// CacheConfig captures repository cache toggles.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// SeedConfig toggles bootstrap data on start.
type SeedConfig struct {
	Enabled bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
}

// DefaultConfig returns settings suitable for local development.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":5000",
			StaticDir:       "dist",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: "sqlite3",
			DSN:    "file:site.db?cache=shared&_fk=1",
		},
		Auth: AuthConfig{
			JWTSecret:     "afdei-secret-key",
			TokenTTL:      7 * 24 * time.Hour,
			AdminEmail:    "admin@afdei.org",
			AdminPassword: "admin123",
			AdminName:     "Admin",
		},
		Media: MediaConfig{
			UploadDir:      "uploads",
			PublicPath:     "/uploads",
			MaxUploadBytes: 50 << 20,
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
		Seed: SeedConfig{
			Enabled: true,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 300,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return ErrServerAddrRequired
	}
	if !isSupportedDriver(cfg.Database.Driver) {
		return fmt.Errorf("%w: %s", ErrDatabaseDriverUnknown, cfg.Database.Driver)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return ErrDatabaseDSNRequired
	}
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return ErrJWTSecretRequired
	}
	if cfg.Auth.TokenTTL <= 0 {
		return ErrTokenTTLInvalid
	}
	if strings.TrimSpace(cfg.Media.UploadDir) == "" {
		return ErrUploadDirRequired
	}
	if cfg.Media.MaxUploadBytes <= 0 {
		return ErrUploadLimitInvalid
	}
	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.RequestsPerMinute <= 0 {
		return ErrRateLimitInvalid
	}

	provider := normalize(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDriver(driver string) bool {
	switch normalize(driver) {
	case "sqlite3", "sqlite", "postgres":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "none", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
