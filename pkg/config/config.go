package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DatabaseURL        string
	SupabaseJWTSecret  string
	GoogleClientID     string
	GoogleClientSecret string

	// AgentMail mailbox provider
	AgentMailAPIKey  string
	AgentMailBaseURL string

	// Reducto document extraction
	ReductoAPIKey  string
	ReductoBaseURL string
	ReductoTimeout time.Duration

	// AI classifier provider
	AIProvider    string
	GeminiAPIKey  string
	OllamaBaseURL string
	OllamaModel   string

	// Email routing
	AdminEmail       string
	PrimaryUserEmail string

	ClassifierMaxRetries int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	reductoTimeout := 300 * time.Second
	if raw := os.Getenv("REDUCTO_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			reductoTimeout = parsed
		}
	}

	maxRetries := 3
	if raw := os.Getenv("CLASSIFIER_MAX_RETRIES"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		SupabaseJWTSecret:    getEnv("SUPABASE_JWT_SECRET", ""),
		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		AgentMailAPIKey:      getEnv("AGENTMAIL_API_KEY", ""),
		AgentMailBaseURL:     getEnv("AGENTMAIL_BASE_URL", "https://api.agentmail.to/v0"),
		ReductoAPIKey:        getEnv("REDUCTO_API_KEY", ""),
		ReductoBaseURL:       getEnv("REDUCTO_BASE_URL", "https://platform.reducto.ai"),
		ReductoTimeout:       reductoTimeout,
		AIProvider:           getEnv("AI_PROVIDER", "auto"),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:          getEnv("OLLAMA_MODEL", "llama3"),
		AdminEmail:           getEnv("ADMIN_EMAIL", ""),
		PrimaryUserEmail:     getEnv("PRIMARY_USER_EMAIL", ""),
		ClassifierMaxRetries: maxRetries,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
