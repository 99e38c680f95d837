// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	App        AppConfig
	Logger     LoggerConfig
	Data       DataConfig
	Store      StoreConfig
	Server     ServerConfig
	Auth       AuthConfig
	Extract    ExtractConfig
	Transcribe TranscribeConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds the on-disk data location.
type DataConfig struct {
	BasePath string
}

// StoreConfig selects the storage backend.
type StoreConfig struct {
	Driver string // badger or sqlite (default: badger)
	// DSN is a directory for badger, or a file path / libsql URL for sqlite.
	// Defaults to a location under Data.BasePath.
	DSN string
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port           string        // Server port (default: 8080)
	ReadTimeout    time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout   time.Duration // HTTP write timeout (default: 30s)
	IdleTimeout    time.Duration // HTTP idle timeout (default: 60s)
	AllowedOrigins []string      // CORS origins (default: *)
	// TrustProxy honors X-Forwarded-For and X-Real-IP. Enable only behind
	// a reverse proxy that overwrites them.
	TrustProxy bool
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// PASETO v4 symmetric key, hex encoded. Generated under Data.BasePath when empty.
	AccessTokenKey      string
	AccessTokenDuration time.Duration // e.g., 720h

	// Optional HS256 secret for tokens minted by an external identity provider.
	JWTSecret string
	JWTIssuer string
}

// ExtractConfig holds metadata extraction configuration.
type ExtractConfig struct {
	UserAgent    string
	Timeout      time.Duration // default: 10s
	AllowPrivate bool          // Permit fetching private addresses (local testing only)
	RateLimit    float64       // Extract requests per second per client
	Burst        int
}

// TranscribeConfig holds the external transcription service settings.
type TranscribeConfig struct {
	Endpoint string // Empty disables transcription
	Timeout  time.Duration
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags in args (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig(args []string) (*Config, error) {
	fs := flag.NewFlagSet("linkstash", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := fs.String("data-path", "", "Base path for data storage")

	// Store flags
	storeDriver := fs.String("store", "", "Storage driver: badger or sqlite (default: badger)")
	storeDSN := fs.String("dsn", "", "Store location: badger directory, sqlite file, or libsql URL")

	// Server flags
	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 30s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	allowedOrigins := fs.String("allowed-origins", "", "Comma-separated CORS origins (default: *)")
	trustProxy := fs.String("trust-proxy", "", "Trust X-Forwarded-For and X-Real-IP headers (default: false)")

	// Auth flags
	accessTokenDuration := fs.String("access-token-duration", "", "Access token lifetime (e.g., 720h)")
	jwtIssuer := fs.String("jwt-issuer", "", "Expected issuer of external JWTs")

	// Extract flags
	extractTimeout := fs.String("extract-timeout", "", "Metadata fetch timeout (default: 10s)")
	extractAllowPrivate := fs.String("extract-allow-private", "", "Allow fetching private addresses (default: false)")

	transcribeEndpoint := fs.String("transcribe-endpoint", "", "URL of the transcription service")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Load .env file if it exists. Variables already set in the environment win.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", *envFile, err)
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getConfigValue(*storeDriver, "STORE_DRIVER", DriverBadger)),
			DSN:    getConfigValue(*storeDSN, "STORE_DSN", ""),
		},
		Server: ServerConfig{
			Port:           getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			AllowedOrigins: splitList(getConfigValue(*allowedOrigins, "ALLOWED_ORIGINS", "*")),
			TrustProxy:     getBoolConfigValue(*trustProxy, "SERVER_TRUST_PROXY", false),
		},
		Auth: AuthConfig{
			AccessTokenKey: getConfigValue("", "ACCESS_TOKEN_KEY", ""),
			JWTSecret:      getConfigValue("", "JWT_SECRET", ""),
			JWTIssuer:      getConfigValue(*jwtIssuer, "JWT_ISSUER", ""),
		},
		Extract: ExtractConfig{
			UserAgent:    getConfigValue("", "EXTRACT_USER_AGENT", ""),
			AllowPrivate: getBoolConfigValue(*extractAllowPrivate, "EXTRACT_ALLOW_PRIVATE", false),
			RateLimit:    getFloatConfigValue("", "EXTRACT_RATE_LIMIT", 2),
			Burst:        getIntConfigValue("", "EXTRACT_BURST", 5),
		},
		Transcribe: TranscribeConfig{
			Endpoint: getConfigValue(*transcribeEndpoint, "TRANSCRIBE_ENDPOINT", ""),
		},
	}

	durations := []struct {
		dst         *time.Duration
		flagValue   string
		envKey, def string
	}{
		{&cfg.Server.ReadTimeout, *readTimeout, "SERVER_READ_TIMEOUT", "15s"},
		{&cfg.Server.WriteTimeout, *writeTimeout, "SERVER_WRITE_TIMEOUT", "30s"},
		{&cfg.Server.IdleTimeout, *idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"},
		{&cfg.Auth.AccessTokenDuration, *accessTokenDuration, "ACCESS_TOKEN_DURATION", "720h"},
		{&cfg.Extract.Timeout, *extractTimeout, "EXTRACT_TIMEOUT", "10s"},
		{&cfg.Transcribe.Timeout, "", "TRANSCRIBE_TIMEOUT", "2m"},
	}
	for _, d := range durations {
		value := getConfigValue(d.flagValue, d.envKey, d.def)
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.envKey, value, err)
		}
		*d.dst = parsed
	}

	// Expand and validate data path.
	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.expandStoreDSN(); err != nil {
		return nil, fmt.Errorf("invalid store dsn: %w", err)
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	switch c.Store.Driver {
	case DriverBadger, DriverSQLite:
	default:
		return fmt.Errorf("invalid store driver: %s (must be badger or sqlite)", c.Store.Driver)
	}

	if c.Extract.RateLimit <= 0 || c.Extract.Burst <= 0 {
		return errors.New("extract rate limit and burst must be positive")
	}

	if c.Auth.JWTIssuer != "" && c.Auth.JWTSecret == "" {
		return errors.New("JWT_ISSUER is set but JWT_SECRET is empty")
	}

	return nil
}

// IsProduction reports whether the app runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, ".linkstash")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// expandStoreDSN fills in a default store location under the data path and
// expands local paths. Remote URLs and :memory: are left untouched.
func (c *Config) expandStoreDSN() error {
	if c.Store.DSN == ":memory:" || strings.Contains(c.Store.DSN, "://") {
		return nil
	}

	var defaultPath string
	switch c.Store.Driver {
	case DriverSQLite:
		defaultPath = filepath.Join(c.Data.BasePath, "linkstash.db")
	default:
		defaultPath = filepath.Join(c.Data.BasePath, "badger")
	}

	expanded, err := expandPath(c.Store.DSN, defaultPath)
	if err != nil {
		return err
	}
	c.Store.DSN = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable (including values loaded from .env).
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strValue)
	if err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		return defaultValue
	}
	return result
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
