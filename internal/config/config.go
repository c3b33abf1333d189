package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	MongoURI       string
	PostgresURI    string
	RedisURI       string
	Port           string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL
	Environment    string   // ENV: production, development, etc.

	// Model backend selection. MODEL_PROVIDER is "gemini" or "openai";
	// provider choice is a configuration concern, not a behavioral one.
	ModelProvider string
	ModelName     string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	ModelTimeout  time.Duration

	// DATE_RESOLVER selects the temporal-resolution strategy:
	// "model" (backend-assisted) or "heuristic" (local parser only).
	DateResolver string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{getEnv("FRONTEND_URL", "http://localhost:3000")}
	}

	timeoutSeconds := 30
	if v := getEnv("MODEL_TIMEOUT_SECONDS", ""); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeoutSeconds = parsed
		}
	}

	return &Config{
		MongoURI:       getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/remindiary")),
		PostgresURI:    getEnv("POSTGRES_URI", "postgres://localhost:5432/remindiary?sslmode=disable"),
		RedisURI:       getEnv("REDIS_URI", "redis://localhost:6379/0"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: allowedOrigins,
		Environment:    env,
		ModelProvider:  strings.ToLower(getEnv("MODEL_PROVIDER", "gemini")),
		ModelName:      getEnv("MODEL_NAME", ""),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		ModelTimeout:   time.Duration(timeoutSeconds) * time.Second,
		DateResolver:   strings.ToLower(getEnv("DATE_RESOLVER", "model")),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
