package site

import "github.com/afdei/federation-cms/internal/runtimeconfig"

var (
	ErrServerAddrRequired     = runtimeconfig.ErrServerAddrRequired
	ErrDatabaseDriverUnknown  = runtimeconfig.ErrDatabaseDriverUnknown
	ErrDatabaseDSNRequired    = runtimeconfig.ErrDatabaseDSNRequired
	ErrJWTSecretRequired      = runtimeconfig.ErrJWTSecretRequired
	ErrTokenTTLInvalid        = runtimeconfig.ErrTokenTTLInvalid
	ErrUploadDirRequired      = runtimeconfig.ErrUploadDirRequired
	ErrUploadLimitInvalid     = runtimeconfig.ErrUploadLimitInvalid
	ErrCacheTTLInvalid        = runtimeconfig.ErrCacheTTLInvalid
	ErrRateLimitInvalid       = runtimeconfig.ErrRateLimitInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	ServerConfig    = runtimeconfig.ServerConfig
	DatabaseConfig  = runtimeconfig.DatabaseConfig
	AuthConfig      = runtimeconfig.AuthConfig
	MediaConfig     = runtimeconfig.MediaConfig
	CacheConfig     = runtimeconfig.CacheConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
	SeedConfig      = runtimeconfig.SeedConfig
	CORSConfig      = runtimeconfig.CORSConfig
	RateLimitConfig = runtimeconfig.RateLimitConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads defaults, an optional config file and SITE_* environment
// variables.
func LoadConfig(path string, dotenv ...string) (Config, error) {
	return runtimeconfig.Load(path, dotenv...)
}
