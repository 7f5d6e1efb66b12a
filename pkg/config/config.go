package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	OpenRouterAPIKey   string
	OpenRouterBase     string
	OpenRouterModel    string
	OpenRouterAppTitle string
	OpenRouterReferer  string

	AdzunaAppID   string
	AdzunaAPIKey  string
	AdzunaBaseURL string
	AdzunaCountry string

	// Matching orchestrator knobs.
	ExplainTimeoutMS int
	MatchConcurrency int

	LogJSON  bool
	LogDebug bool
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "jobmatch"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),

		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBase:     os.Getenv("OPENROUTER_BASE_URL"),
		OpenRouterModel:    getEnv("OPENROUTER_MODEL", "qwen/qwen2.5-32b-instruct"),
		OpenRouterAppTitle: getEnv("OPENROUTER_APP_TITLE", "jobmatch"),
		OpenRouterReferer:  os.Getenv("OPENROUTER_REFERER"),

		AdzunaAppID:   os.Getenv("ADZUNA_APP_ID"),
		AdzunaAPIKey:  os.Getenv("ADZUNA_API_KEY"),
		AdzunaBaseURL: getEnv("ADZUNA_BASE_URL", "https://api.adzuna.com/v1/api"),
		AdzunaCountry: getEnv("ADZUNA_COUNTRY", "in"),

		ExplainTimeoutMS: getEnvInt("EXPLAIN_TIMEOUT_MS", 8000),
		MatchConcurrency: getEnvInt("MATCH_CONCURRENCY", 8),

		LogJSON:  getEnvBool("LOG_JSON", false),
		LogDebug: getEnvBool("LOG_DEBUG", false),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
