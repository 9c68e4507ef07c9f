package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	LogLevel     string
	LogFormat    string
	MazePath     string
	Seed         int64
	SpectateAddr string
	Debug        bool
}

func Load() *Config {
	return &Config{
		LogLevel:     getEnv("PATHMAN_LOG_LEVEL", "info"),
		LogFormat:    getEnv("PATHMAN_LOG_FORMAT", "text"),
		MazePath:     getEnv("PATHMAN_MAZE", ""),
		Seed:         int64(getEnvInt("PATHMAN_SEED", 0)),
		SpectateAddr: getEnv("PATHMAN_SPECTATE_ADDR", ""),
		Debug:        getEnvBool("PATHMAN_DEBUG", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// NewLogger builds the handler selected by LogLevel and LogFormat.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	var h slog.Handler
	if strings.ToLower(cfg.LogFormat) == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// SetupLogger installs NewLogger's result as the process default.
func SetupLogger(cfg *Config, w io.Writer) *slog.Logger {
	l := NewLogger(cfg, w)
	slog.SetDefault(l)
	return l
}
