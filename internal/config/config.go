// Package config holds the application configuration. Values come from an
// optional YAML file, overridden by WATCHTRACK_* environment variables,
// falling back to built-in defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server"`
	Database DatabaseConfig `yaml:"database" json:"database"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host       string `yaml:"host" json:"host"`
	Port       int    `yaml:"port" json:"port"`
	EnableCORS bool   `yaml:"enable_cors" json:"enable_cors"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Type selects the driver: "sqlite" or "postgres"
	Type         string `yaml:"type" json:"type"`
	DatabasePath string `yaml:"database_path" json:"database_path"`
	Host         string `yaml:"host" json:"host"`
	Port         int    `yaml:"port" json:"port"`
	Username     string `yaml:"username" json:"username"`
	Password     string `yaml:"password" json:"password"`
	Database     string `yaml:"database" json:"database"`
	MaxOpenConns int    `yaml:"max_open_conns" json:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns" json:"max_idle_conns"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

var (
	cfg        *Config
	cfgMu      sync.RWMutex
	loadOnce   sync.Once
	configPath string
)

// SetConfigPath overrides the configuration file path. Must be called
// before the first Get().
func SetConfigPath(path string) {
	configPath = path
}

// ConfigPath returns the effective configuration file path.
func ConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if p := os.Getenv("WATCHTRACK_CONFIG"); p != "" {
		return p
	}
	return "watchtrack.yml"
}

// Get returns the global configuration, loading it on first use.
func Get() *Config {
	loadOnce.Do(func() {
		c, err := Load(ConfigPath())
		if err != nil {
			// Fall back to defaults; the caller still gets a usable config.
			c = defaults()
		}
		cfgMu.Lock()
		cfg = c
		cfgMu.Unlock()
	})

	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return cfg
}

// Reload re-reads the configuration file and replaces the global config.
func Reload() (*Config, error) {
	c, err := Load(ConfigPath())
	if err != nil {
		return nil, err
	}
	cfgMu.Lock()
	cfg = c
	cfgMu.Unlock()
	return c, nil
}

// Load reads configuration from the given YAML file, applying environment
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	c := defaults()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnvOverrides(c)
	return c, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:       "0.0.0.0",
			Port:       8080,
			EnableCORS: true,
		},
		Database: DatabaseConfig{
			Type:         "sqlite",
			DatabasePath: "./data/watchtrack.db",
			Host:         "localhost",
			Port:         5432,
			Database:     "watchtrack",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func applyEnvOverrides(c *Config) {
	setString(&c.Server.Host, "WATCHTRACK_HOST")
	setInt(&c.Server.Port, "WATCHTRACK_PORT")
	setString(&c.Database.Type, "DATABASE_TYPE")
	setString(&c.Database.DatabasePath, "SQLITE_PATH")
	setString(&c.Database.Host, "POSTGRES_HOST")
	setInt(&c.Database.Port, "POSTGRES_PORT")
	setString(&c.Database.Username, "POSTGRES_USER")
	setString(&c.Database.Password, "POSTGRES_PASSWORD")
	setString(&c.Database.Database, "POSTGRES_DB")
	setString(&c.Logging.Level, "WATCHTRACK_LOG_LEVEL")
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func setInt(dst *int, env string) {
	if v := os.Getenv(env); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
