// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the server and CLI read at startup
type Config struct {
	Port    string
	GinMode string

	DatabaseURL string
	DataPath    string

	JWTSecret       string
	APIMasterSecret string
	AdminUsername   string
	AdminPassword   string

	LogLevel  string
	LogFormat string

	SolverMaxSteps int
	SolverTimeout  time.Duration

	Export ExportConfig
}

// ExportConfig points at the bucket rendered schedules are copied to
type ExportConfig struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

// Enabled reports whether a bucket was configured
func (e ExportConfig) Enabled() bool {
	return e.Bucket != ""
}

// envFiles are tried in order; the first one found is loaded
var envFiles = []string{".env", "../.env", "../../.env"}

// LoadDotEnv loads the first .env file found, leaving existing variables alone
func LoadDotEnv() string {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Load reads the configuration from the environment, applying defaults
func Load() (*Config, error) {
	maxSteps, err := intEnv("SOLVER_MAX_STEPS", 2_000_000)
	if err != nil {
		return nil, err
	}
	timeout, err := intEnv("SOLVER_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	pathStyle, err := boolEnv("EXPORT_S3_PATH_STYLE")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:            envOr("PORT", "8000"),
		GinMode:         os.Getenv("GIN_MODE"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DataPath:        envOr("DATA_PATH", "scheduler.db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		APIMasterSecret: os.Getenv("API_MASTER_SECRET"),
		AdminUsername:   envOr("ADMIN_USERNAME", "admin"),
		AdminPassword:   envOr("ADMIN_PASSWORD", "admin123"),
		LogLevel:        strings.ToLower(envOr("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(envOr("LOG_FORMAT", "text")),
		SolverMaxSteps:  maxSteps,
		SolverTimeout:   time.Duration(timeout) * time.Second,
		Export: ExportConfig{
			Bucket:    os.Getenv("EXPORT_S3_BUCKET"),
			Region:    os.Getenv("EXPORT_S3_REGION"),
			Endpoint:  os.Getenv("EXPORT_S3_ENDPOINT"),
			PathStyle: pathStyle,
		},
	}
	if cfg.SolverMaxSteps < 0 {
		return nil, fmt.Errorf("SOLVER_MAX_STEPS must not be negative, got %d", cfg.SolverMaxSteps)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("SOLVER_TIMEOUT_SECONDS must be positive, got %d", timeout)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(v, "_", ""))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
