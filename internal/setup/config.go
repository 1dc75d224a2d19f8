package setup

import (
	"os"
	"strconv"
	"time"
)

// Config gathers everything the services read from the environment.
type Config struct {
	LogLevel string
	Port     string

	AWSRegion     string
	ClaudeModelID string
	EmbedModelID  string
	EmbedDim      int

	ProfilesPath       string
	IdentityDir        string
	RemoteModeration   bool
	ModerationFailMode string

	RedisAddr     string
	RedisPassword string
	RedisTTL      time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

func FromEnv() Config {
	return Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnv("API_PORT", "8080"),

		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID: getEnv("CLAUDE_MODEL_ID", "anthropic.claude-3-5-sonnet-20240620-v1:0"),
		EmbedModelID:  getEnv("EMBED_MODEL_ID", "amazon.titan-embed-text-v2:0"),
		EmbedDim:      getEnvInt("EMBED_DIMENSION", 1024),

		ProfilesPath:       getEnv("PROFILES_PATH", ""),
		IdentityDir:        getEnv("GUARDRAIL_IDENTITY_DIR", "."),
		RemoteModeration:   getEnvBool("REMOTE_MODERATION", false),
		ModerationFailMode: getEnv("MODERATION_FAIL_MODE", "open"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTTL:      getEnvDuration("REDIS_TTL", 30*time.Minute),

		DBHost:     getEnv("CORPUS_DB_HOST", ""),
		DBPort:     getEnv("CORPUS_DB_PORT", "5432"),
		DBUser:     getEnv("CORPUS_DB_USER", "postgres"),
		DBPassword: getEnv("CORPUS_DB_PASSWORD", ""),
		DBName:     getEnv("CORPUS_DB_DATABASE", "corpus"),
		DBSSLMode:  getEnv("CORPUS_DB_SSLMODE", "disable"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}
