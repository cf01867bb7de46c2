package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Logging
	LogLevel  string
	LogFormat string

	// Upstream chat provider
	ChatProvider           string
	OpenAIAPIKey           string
	OpenAIBaseURL          string
	OpenAIModel            string
	GeminiAPIKey           string
	GeminiModel            string
	ChatTemperature        float64
	ChatMaxTokens          int
	UpstreamTimeoutSeconds int

	// System policy
	PolicyPath     string
	PolicyRedisKey string
	RedisURL       string

	// Static site documents
	SiteConfigPath string
	AffiliatesPath string
}

// Load reads the environment. Credentials are optional here: a missing or
// malformed key is reported per request by the chat handler.
func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                   getEnvOrDefault("PORT", "8080"),
		Env:                    getEnvOrDefault("ENV", "development"),
		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:              getEnvOrDefault("LOG_FORMAT", "json"),
		ChatProvider:           strings.ToLower(getEnvOrDefault("CHAT_PROVIDER", "openai")),
		OpenAIAPIKey:           os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:          getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1/"),
		OpenAIModel:            getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		GeminiModel:            getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		ChatTemperature:        getEnvAsFloatOrDefault("CHAT_TEMPERATURE", 0.9),
		ChatMaxTokens:          getEnvAsIntOrDefault("CHAT_MAX_TOKENS", 600),
		UpstreamTimeoutSeconds: getEnvAsIntOrDefault("UPSTREAM_TIMEOUT_SECONDS", 30),
		PolicyPath:             getEnvOrDefault("POLICY_PATH", ""),
		PolicyRedisKey:         getEnvOrDefault("POLICY_REDIS_KEY", ""),
		RedisURL:               getEnvOrDefault("REDIS_URL", ""),
		SiteConfigPath:         getEnvOrDefault("SITE_CONFIG_PATH", "./config/site.json"),
		AffiliatesPath:         getEnvOrDefault("AFFILIATES_PATH", "./config/affiliates.json"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
