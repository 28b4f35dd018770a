package config

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	OpenBrowser    bool
	LogLevel       string
	Theme          string
	TokenSecret    string
	SessionTTL     time.Duration
	AllowedOrigins []string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	envLoaded := godotenv.Load() == nil

	cfg := &Config{
		Addr:           getEnv("CALC_ADDR", ":8080"),
		OpenBrowser:    getEnvAsBool("CALC_OPEN_BROWSER", true),
		LogLevel:       getEnv("CALC_LOG_LEVEL", "info"),
		Theme:          strings.ToLower(getEnv("CALC_THEME", "dark")),
		TokenSecret:    getEnv("CALC_TOKEN_SECRET", ""),
		SessionTTL:     getEnvAsDuration("CALC_SESSION_TTL", 60*time.Minute),
		AllowedOrigins: getEnvAsList("CALC_ALLOWED_ORIGINS", []string{"*"}),
	}

	if cfg.TokenSecret == "" {
		cfg.TokenSecret = randomSecret()
	}
	if cfg.Theme != "light" {
		cfg.Theme = "dark"
	}

	if !envLoaded {
		NewLogger(cfg).Debug("no .env file found, using system environment variables")
	}
	return cfg
}

// NewLogger builds the process logger at the configured level.
func NewLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(cfg.LogLevel),
	}))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
