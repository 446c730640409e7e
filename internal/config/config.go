package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Security SecurityConfig `yaml:"security"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"` // debug or release
}

type DatabaseConfig struct {
	Type   string       `yaml:"type"`
	SQLite SQLiteConfig `yaml:"sqlite"`
	MySQL  MySQLConfig  `yaml:"mysql"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Charset  string `yaml:"charset"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	ExpiresIn string `yaml:"expires_in"`
	Issuer    string `yaml:"issuer"`
}

type SecurityConfig struct {
	BcryptCost int           `yaml:"bcrypt_cost"`
	Pepper     string        `yaml:"pepper"`
	Lockout    LockoutConfig `yaml:"lockout"`
}

type LockoutConfig struct {
	MaxAttempts         int    `yaml:"max_attempts"`
	LockoutDuration     string `yaml:"lockout_duration"`
	StaleAfter          string `yaml:"stale_after"`
	DegradeOnStoreError *bool  `yaml:"degrade_on_store_error"`
}

// Development fallbacks used only in debug mode. Release mode refuses to
// start without real secrets.
const (
	devPepper    = "development-pepper"
	devJWTSecret = "development-jwt-secret"
)

var Global *Config

// Load reads the configuration file and environment variables
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables
	if pepper := os.Getenv("PEPPER_SECRET"); pepper != "" {
		cfg.Security.Pepper = pepper
	}

	if jwtSecret := os.Getenv("TODOPANEL_JWT_SECRET"); jwtSecret != "" {
		cfg.JWT.Secret = jwtSecret
	}

	if dbType := os.Getenv("TODOPANEL_DB_TYPE"); dbType != "" {
		cfg.Database.Type = dbType
	}

	if dbPath := os.Getenv("TODOPANEL_DB_PATH"); dbPath != "" {
		cfg.Database.SQLite.Path = dbPath
	}

	if mysqlHost := os.Getenv("TODOPANEL_MYSQL_HOST"); mysqlHost != "" {
		cfg.Database.MySQL.Host = mysqlHost
	}

	if mysqlUser := os.Getenv("TODOPANEL_MYSQL_USER"); mysqlUser != "" {
		cfg.Database.MySQL.Username = mysqlUser
	}

	if mysqlPass := os.Getenv("TODOPANEL_MYSQL_PASSWORD"); mysqlPass != "" {
		cfg.Database.MySQL.Password = mysqlPass
	}

	if mysqlDB := os.Getenv("TODOPANEL_MYSQL_DATABASE"); mysqlDB != "" {
		cfg.Database.MySQL.Database = mysqlDB
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	// Ensure data directory exists for SQLite
	if cfg.Database.Type == "sqlite" {
		dataDir := filepath.Dir(cfg.Database.SQLite.Path)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// Validate MySQL configuration if MySQL is selected
	if cfg.Database.Type == "mysql" {
		if cfg.Database.MySQL.Username == "" {
			return nil, fmt.Errorf("MySQL username is required")
		}
		if cfg.Database.MySQL.Database == "" {
			return nil, fmt.Errorf("MySQL database name is required")
		}
	}

	Global = &cfg
	return &cfg, nil
}

// applyDefaults fills defaults and enforces that secrets are explicitly
// configured in release mode. Debug builds fall back to fixed development
// values so local setups work out of the box.
func (cfg *Config) applyDefaults() error {
	if cfg.Server.Mode == "release" {
		if cfg.Security.Pepper == "" {
			return fmt.Errorf("security.pepper (or PEPPER_SECRET) is required in release mode")
		}
		if cfg.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret (or TODOPANEL_JWT_SECRET) is required in release mode")
		}
	}

	if cfg.Security.Pepper == "" {
		cfg.Security.Pepper = devPepper
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = devJWTSecret
	}

	if cfg.Security.BcryptCost == 0 {
		cfg.Security.BcryptCost = 10
	}
	if cfg.JWT.ExpiresIn == "" {
		cfg.JWT.ExpiresIn = "10m"
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "todo-panel"
	}

	if cfg.Security.Lockout.MaxAttempts == 0 {
		cfg.Security.Lockout.MaxAttempts = 5
	}
	if cfg.Security.Lockout.LockoutDuration == "" {
		cfg.Security.Lockout.LockoutDuration = "10m"
	}
	if cfg.Security.Lockout.StaleAfter == "" {
		cfg.Security.Lockout.StaleAfter = "24h"
	}

	for _, d := range []string{cfg.JWT.ExpiresIn, cfg.Security.Lockout.LockoutDuration, cfg.Security.Lockout.StaleAfter} {
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("invalid duration %q: %w", d, err)
		}
	}

	return nil
}

// SessionTTL returns the configured session lifetime.
func (cfg *Config) SessionTTL() time.Duration {
	d, err := time.ParseDuration(cfg.JWT.ExpiresIn)
	if err != nil {
		return 10 * time.Minute
	}
	return d
}

// LockoutWindow returns the configured lockout duration.
func (cfg *Config) LockoutWindow() time.Duration {
	d, err := time.ParseDuration(cfg.Security.Lockout.LockoutDuration)
	if err != nil {
		return 10 * time.Minute
	}
	return d
}

// StaleWindow returns the age after which a login-attempt record is
// treated as a fresh window.
func (cfg *Config) StaleWindow() time.Duration {
	d, err := time.ParseDuration(cfg.Security.Lockout.StaleAfter)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// DegradeOnStoreError reports whether lockout tracking should fail open
// when the store is unavailable. Defaults to true.
func (cfg *Config) DegradeOnStoreError() bool {
	if cfg.Security.Lockout.DegradeOnStoreError == nil {
		return true
	}
	return *cfg.Security.Lockout.DegradeOnStoreError
}
