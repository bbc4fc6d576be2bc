package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server and CLI.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string
	TeamWin   TeamWinConfig
	Metrics   MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file (or DOTENV_PATH) is applied first without overriding variables
// already present in the environment.
func Load() Config {
	_ = loadDotenv(envOrDefault(envDotenvPath, defaultDotenvPath))

	return Config{
		Port:      envOrDefault(envPort, defaultPort),
		LogLevel:  envOrDefault(envLogLevel, ""),
		LogFormat: envOrDefault(envLogFormat, ""),
		TeamWin:   loadTeamWin(),
		Metrics:   loadMetrics(),
	}
}

func loadDotenv(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
