package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// EnvLogLevel overrides logging.level when set.
const EnvLogLevel = "PAGESMITH_LOG_LEVEL"

// envFiles are loaded in order; existing variables are never overwritten.
var envFiles = []string{".env", ".env.local"}

func loadEnvFiles() {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Failed to load environment file", slog.String("file", name), slog.String("error", err.Error()))
			continue
		}
		slog.Debug("Loaded environment variables", slog.String("file", name))
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = NormalizeLogLevel(v)
	}
}
