package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	TablePrefix string

	// Storage
	StoreBackend      string // postgres, firestore or sqlite
	DatabaseURL       string
	SQLitePath        string
	FirebaseProjectID string
	FirebaseCredsFile string

	// Identity provider
	AuthProvider    string // supabase or firebase
	SupabaseURL     string
	SupabaseKey     string
	SupabaseJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json

	// AI assistant
	AnthropicAPIKey   string
	DefaultModel      string
	ChatSystemPrompt  string
	ChatMaxToolRounds int

	// Transcripts
	RedisURL              string
	TranscriptTTL         time.Duration
	TranscriptCacheSize   int
	TranscriptMaxMessages int

	// Editor and items
	AutoSaveInterval time.Duration
	CountFloor       string // clamp or none

	// Checkout
	CheckoutTimeout      time.Duration
	CheckoutPollInterval time.Duration

	// Logging
	LogDir      string
	LogMaxFiles int

	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := getEnv("SUPABASE_URL", "")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),
		TablePrefix: getTablePrefix(env),

		StoreBackend:      getEnv("STORE_BACKEND", getDefaultBackend(env)),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		SQLitePath:        getEnv("SQLITE_PATH", "docit.db"),
		FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),

		AuthProvider:    getEnv("AUTH_PROVIDER", "supabase"),
		SupabaseURL:     supabaseURL,
		SupabaseKey:     getEnv("SUPABASE_KEY", ""),
		SupabaseJWKSURL: supabaseURL + "/auth/v1/.well-known/jwks.json",

		AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
		DefaultModel:      getEnv("DEFAULT_MODEL", "claude-haiku-4-5-20251001"),
		ChatSystemPrompt:  getEnv("CHAT_SYSTEM_PROMPT", defaultSystemPrompt),
		ChatMaxToolRounds: getEnvInt("CHAT_MAX_TOOL_ROUNDS", 1),

		RedisURL:              getEnv("REDIS_URL", ""),
		TranscriptTTL:         getEnvDuration("TRANSCRIPT_TTL", 24*time.Hour),
		TranscriptCacheSize:   getEnvInt("TRANSCRIPT_CACHE_SIZE", 1024),
		TranscriptMaxMessages: getEnvInt("TRANSCRIPT_MAX_MESSAGES", 200),

		AutoSaveInterval: getEnvDuration("AUTOSAVE_INTERVAL", time.Minute),
		CountFloor:       getEnv("COUNT_FLOOR", "clamp"),

		CheckoutTimeout:      getEnvDuration("CHECKOUT_TIMEOUT", 2*time.Minute),
		CheckoutPollInterval: getEnvDuration("CHECKOUT_POLL_INTERVAL", time.Second),

		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),

		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

const defaultSystemPrompt = "You are Kian, the DocIt assistant. Answer questions about the user's folders, lists and items. " +
	"Use the provided tools to read the user's data before answering questions about it. Be concise."

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getDefaultBackend keeps local development free of external services
func getDefaultBackend(env string) string {
	if env == "prod" {
		return "postgres"
	}
	return "sqlite"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}
