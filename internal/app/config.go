package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/cinebase/cinebase/internal/database"
)

// Config represents the runtime configuration for the CineBase backend.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	TMDB        TMDBConfig        `mapstructure:"tmdb"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	RateLimit       int           `mapstructure:"rate_limit"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig describes connection options for the supported databases.
// SQLite needs only a path; postgres and mysql use the host based fields or
// a full DSN.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// Connection converts the section into connection options for database.Open.
func (c DatabaseConfig) Connection() database.Config {
	return database.Config{
		Driver:   c.Driver,
		Path:     c.Path,
		DSN:      c.DSN,
		Host:     c.Host,
		Port:     c.Port,
		Name:     c.Name,
		User:     c.User,
		Password: c.Password,
	}
}

// TMDBConfig configures the upstream metadata provider client.
type TMDBConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AuthConfig selects how bearer tokens are verified. Identity always comes
// from an external issuer; this backend stores no credentials.
type AuthConfig struct {
	// Mode is "oidc" for issuer discovery or "static" for a shared secret.
	Mode   string           `mapstructure:"mode"`
	OIDC   OIDCAuthConfig   `mapstructure:"oidc"`
	Static StaticAuthConfig `mapstructure:"static"`
}

// OIDCAuthConfig points at the external OIDC issuer.
type OIDCAuthConfig struct {
	IssuerURL string `mapstructure:"issuer_url"`
	Audience  string `mapstructure:"audience"`
}

// StaticAuthConfig configures shared-secret verification for development.
type StaticAuthConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// MaintenanceConfig controls the background cleanup job.
type MaintenanceConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	Schedule         string        `mapstructure:"schedule"`
	HistoryRetention time.Duration `mapstructure:"history_retention"`
}

// LoadConfig initialises application configuration using Viper with sensible defaults.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("./config")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	v.SetEnvPrefix("CINEBASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgErr) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, decodeHook()); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &config, nil
}

// Validate reports configuration errors that would prevent startup.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config: configuration is nil")
	}
	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		return errors.New("config: tmdb.api_key is required")
	}

	switch strings.ToLower(strings.TrimSpace(c.Auth.Mode)) {
	case "oidc":
		if strings.TrimSpace(c.Auth.OIDC.IssuerURL) == "" {
			return errors.New("config: auth.oidc.issuer_url is required in oidc mode")
		}
	case "static":
		if strings.TrimSpace(c.Auth.Static.Secret) == "" {
			return errors.New("config: auth.static.secret is required in static mode")
		}
	default:
		return fmt.Errorf("config: unsupported auth mode %q", c.Auth.Mode)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("server.rate_limit", 120)
	v.SetDefault("server.rate_limit_window", "1m")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/cinebase.sqlite")

	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.timeout", "10s")

	v.SetDefault("auth.mode", "static")
	v.SetDefault("auth.static.issuer", "cinebase-dev")

	v.SetDefault("maintenance.enabled", true)
	v.SetDefault("maintenance.schedule", "@hourly")
	v.SetDefault("maintenance.history_retention", "2160h") // 90 days
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}
