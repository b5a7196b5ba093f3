// Package config loads and stores CLI configuration in the XDG config dir.
// Values come from, in increasing priority: built-in defaults, config.json,
// a .env file in the working directory, and FIELDKIT_* environment variables.
// Only non-secret settings are kept here; credentials live in session storage.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "fieldkit/cli/internal/errors"
	"fieldkit/cli/internal/xdg"

	"github.com/joho/godotenv"
)

// Environment names recognised in Env.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Storage backend names.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendKeyring  = "keyring"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	LogLevel string `json:"log_level"`
	// Env is "production" or "development". Development logs in against
	// DevOrigin first instead of https://<server>.
	Env       string        `json:"env"`
	DevOrigin string        `json:"dev_origin"`
	Timeout   string        `json:"request_timeout"`
	Storage   StorageConfig `json:"storage"`
}

// StorageConfig selects and configures the session storage backend.
type StorageConfig struct {
	Backend string `json:"backend"`
	// Path is the SQLite file or the keyring file directory. Empty means
	// a default under the XDG state dir.
	Path          string `json:"path"`
	DSN           string `json:"dsn"`
	RedisAddr     string `json:"redis_addr"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`
	Namespace     string `json:"namespace"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:  "info",
		Env:       EnvProduction,
		DevOrigin: "http://localhost:8080",
		Timeout:   "10s",
		Storage: StorageConfig{
			Backend:   BackendSQLite,
			RedisAddr: "localhost:6379",
			Namespace: "fieldkit",
		},
	}
}

// DevMode reports whether the development environment is selected.
func (c Config) DevMode() bool {
	return strings.EqualFold(c.Env, EnvDevelopment)
}

// RequestTimeout parses Timeout, falling back to 10s on bad input.
func (c Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration from the XDG config dir; a missing file yields defaults.
func Load() (Config, error) {
	p, err := path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(p)
}

// LoadFrom reads configuration from p, then applies .env and environment overrides.
func LoadFrom(p string) (Config, error) {
	c, err := ReadFile(p)
	if err != nil {
		return c, err
	}

	// A missing .env is the common case.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, apperrors.Wrap(apperrors.ConfigInvalid, "parse .env", err)
	}
	if err := applyEnv(&c); err != nil {
		return c, err
	}
	return c, nil
}

// ReadFile returns defaults overlaid with the contents of p, ignoring the
// environment. A missing file yields defaults.
func ReadFile(p string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(p)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return c, err
	default:
		if err := json.Unmarshal(data, &c); err != nil {
			return c, apperrors.Wrap(apperrors.ConfigInvalid, "parse "+p, err)
		}
	}
	return c, nil
}

// LoadFile reads the config file in the XDG config dir without overrides,
// for callers that modify and Save it.
func LoadFile() (Config, error) {
	p, err := path()
	if err != nil {
		return Default(), err
	}
	return ReadFile(p)
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// SettableKeys lists the keys accepted by Set, in display order.
// Credentials such as storage.dsn stay in the environment.
var SettableKeys = []string{
	"log_level",
	"env",
	"dev_origin",
	"request_timeout",
	"storage.backend",
	"storage.path",
	"storage.namespace",
	"storage.redis_addr",
	"storage.redis_db",
}

// Set validates value and assigns it to the setting named key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	invalid := func(reason string) error {
		return apperrors.New(apperrors.ConfigInvalid, fmt.Sprintf("%s: %s", key, reason))
	}

	switch key {
	case "log_level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(value)
		default:
			return invalid("expected debug, info, warn or error")
		}
	case "env":
		switch strings.ToLower(value) {
		case EnvProduction, EnvDevelopment:
			c.Env = strings.ToLower(value)
		default:
			return invalid("expected production or development")
		}
	case "dev_origin":
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid(fmt.Sprintf("%q is not an http(s) origin", value))
		}
		c.DevOrigin = strings.TrimRight(value, "/")
	case "request_timeout":
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return invalid(fmt.Sprintf("%q is not a positive duration", value))
		}
		c.Timeout = value
	case "storage.backend":
		switch value {
		case BackendSQLite, BackendPostgres, BackendKeyring, BackendRedis, BackendMemory:
			c.Storage.Backend = value
		default:
			return invalid(fmt.Sprintf("unknown storage backend %q", value))
		}
	case "storage.path":
		c.Storage.Path = value
	case "storage.namespace":
		if value == "" {
			return invalid("must not be empty")
		}
		c.Storage.Namespace = value
	case "storage.redis_addr":
		if value == "" {
			return invalid("must not be empty")
		}
		c.Storage.RedisAddr = value
	case "storage.redis_db":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return invalid(fmt.Sprintf("%q is not a database number", value))
		}
		c.Storage.RedisDB = n
	default:
		return apperrors.New(apperrors.ConfigInvalid, fmt.Sprintf("unknown setting %q", key))
	}
	return nil
}

// Get returns the current value of a key from SettableKeys.
func (c Config) Get(key string) (string, bool) {
	switch key {
	case "log_level":
		return c.LogLevel, true
	case "env":
		return c.Env, true
	case "dev_origin":
		return c.DevOrigin, true
	case "request_timeout":
		return c.Timeout, true
	case "storage.backend":
		return c.Storage.Backend, true
	case "storage.path":
		return c.Storage.Path, true
	case "storage.namespace":
		return c.Storage.Namespace, true
	case "storage.redis_addr":
		return c.Storage.RedisAddr, true
	case "storage.redis_db":
		return strconv.Itoa(c.Storage.RedisDB), true
	}
	return "", false
}

func applyEnv(c *Config) error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("FIELDKIT_LOG_LEVEL", &c.LogLevel)
	setString("FIELDKIT_ENV", &c.Env)
	setString("FIELDKIT_DEV_ORIGIN", &c.DevOrigin)
	setString("FIELDKIT_TIMEOUT", &c.Timeout)
	setString("FIELDKIT_STORAGE", &c.Storage.Backend)
	setString("FIELDKIT_STORAGE_PATH", &c.Storage.Path)
	setString("FIELDKIT_DSN", &c.Storage.DSN)
	setString("FIELDKIT_REDIS_ADDR", &c.Storage.RedisAddr)
	setString("FIELDKIT_REDIS_PASSWORD", &c.Storage.RedisPassword)
	setString("FIELDKIT_NAMESPACE", &c.Storage.Namespace)

	if v := strings.TrimSpace(os.Getenv("FIELDKIT_REDIS_DB")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return apperrors.Wrap(apperrors.ConfigInvalid, fmt.Sprintf("FIELDKIT_REDIS_DB=%q", v), err)
		}
		c.Storage.RedisDB = n
	}
	return nil
}
