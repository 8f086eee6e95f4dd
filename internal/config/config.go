package config

import (
	"log/slog"
	"os"
	"strings"
)

// Storage backends.
const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

type Config struct {
	Environment string
	LogLevel    slog.Level
	LogPath     string

	GeminiAPIKey string
	GeminiModel  string

	OpenAIAPIKey  string
	ImageModel    string
	ImagesEnabled bool

	Language string

	Storage  string
	RedisURL string
	SavePath string
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogPath:     getEnv("LOG_PATH", "adventure.log"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", ""),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		ImageModel:    getEnv("IMAGE_MODEL", ""),
		ImagesEnabled: parseBool(getEnv("IMAGES_ENABLED", "true")),

		Language: getEnv("LANGUAGE", "th"),

		Storage:  getEnv("STORAGE", StorageFile),
		RedisURL: getEnv("REDIS_URL", "localhost:6379"),
		SavePath: getEnv("SAVE_PATH", defaultSavePath()),
	}
}

// defaultSavePath puts the save slot under the user config dir, falling
// back to the working directory when none is resolvable.
func defaultSavePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "adventure-save.json"
	}
	return dir + "/adventure-engine/save.json"
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
