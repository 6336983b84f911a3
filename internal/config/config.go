package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv       string
	ServerPort   string
	DatabaseURL  string
	MaxBodyBytes int64
	CORSOrigins  []string

	Log struct {
		Level  string
		Format string
	}

	Gemini struct {
		APIURL  string
		APIKey  string
		Model   string
		Timeout time.Duration
	}

	PubSub struct {
		ProjectID string
		Topic     string
	}

	Cache struct {
		RedisURL string
		TTL      time.Duration
	}
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		ServerPort:  getEnv("PORT", "3000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = buildDSN()
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = maxBody

	defaultFormat := "console"
	if cfg.AppEnv == "production" {
		defaultFormat = "json"
	}
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", defaultFormat)

	cfg.Gemini.APIURL = strings.TrimRight(getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta"), "/")
	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Gemini.Model = getEnv("GEMINI_MODEL", "gemini-2.0-flash")
	if cfg.Gemini.Timeout, err = time.ParseDuration(getEnv("GEMINI_TIMEOUT", "60s")); err != nil {
		return nil, fmt.Errorf("invalid GEMINI_TIMEOUT: %w", err)
	}

	cfg.PubSub.ProjectID = os.Getenv("PUBSUB_PROJECT_ID")
	cfg.PubSub.Topic = getEnv("PUBSUB_TOPIC", "negative-ratings")

	cfg.Cache.RedisURL = os.Getenv("REDIS_URL")
	if cfg.Cache.TTL, err = time.ParseDuration(getEnv("COMPLAINT_CACHE_TTL", "10m")); err != nil {
		return nil, fmt.Errorf("invalid COMPLAINT_CACHE_TTL: %w", err)
	}

	return cfg, nil
}

// buildDSN assembles a connection URL from the discrete DB_* variables.
func buildDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(getEnv("DB_USER", "postgres"), os.Getenv("DB_PASSWORD")),
		Host:   getEnv("DB_HOST", "localhost") + ":" + getEnv("DB_PORT", "5432"),
		Path:   "/" + getEnv("DB_NAME", "postgres"),
	}
	q := u.Query()
	q.Set("sslmode", getEnv("DB_SSLMODE", "disable"))
	u.RawQuery = q.Encode()
	return u.String()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
