package config

import (
	"os"
	"strconv"
	"time"

	"prover/pkg/validation"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Environment     string
	DatabaseURL     string
	LogLevel        string
	MaxBodyBytes    int64
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Defaults applied when the environment leaves a setting empty or unparsable.
var (
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PROVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	env := os.Getenv("PROVER_ENV")
	if env == "" {
		env = "development"
	}
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	maxBody := int64(validation.MaxBodySize)
	if v := os.Getenv("PROVER_MAX_BODY_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxBody = n
		}
	}

	return Server{
		Addr:            addr,
		Environment:     env,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		LogLevel:        level,
		MaxBodyBytes:    maxBody,
		RequestTimeout:  durationFromEnv("PROVER_REQUEST_TIMEOUT", DefaultRequestTimeout),
		ShutdownTimeout: durationFromEnv("PROVER_SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}
}

// UsesPostgres reports whether stores should be backed by PostgreSQL.
func (s Server) UsesPostgres() bool {
	return s.DatabaseURL != ""
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
