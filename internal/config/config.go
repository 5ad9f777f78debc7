// Package config provides functionality for managing configuration options
// for the application using a config file and environment variables.
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvLocal enables human-readable console logging.
	EnvLocal = "local"
	// EnvProd enables JSON logging at info level.
	EnvProd = "prod"
)

// Config holds the configuration values for the application.
type Config struct {
	// Env selects the runtime environment (local, prod).
	Env string
	// LogLevel sets the minimum logging level (debug, info, warn, error).
	LogLevel string
	// DataDir is the directory holding the catalog database and the
	// active-session file.
	DataDir string
}

// Load reads configuration from an optional .env file and the environment,
// falling back to defaults. It never fails on a missing .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.SetEnvPrefix("catalog")
	viper.AutomaticEnv()

	cfg := &Config{
		Env:      viper.GetString("env"),
		LogLevel: viper.GetString("log_level"),
		DataDir:  viper.GetString("data_dir"),
	}

	if cfg.Env == "" {
		cfg.Env = EnvLocal
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}

	return cfg
}

// defaultDataDir resolves the per-user state directory, falling back to the
// working directory when the home directory cannot be determined.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sampro-catalog"
	}
	return filepath.Join(home, ".sampro-catalog")
}
