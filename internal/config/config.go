package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port         string
	Environment  string
	DatabaseURL  string
	ClerkIssuer  string
	ClerkJWKSURL string // Constructed from ClerkIssuer + /.well-known/jwks.json
	CORSOrigins  string
	TablePrefix  string
	// Rate limiting (requests per minute per user; 0 disables)
	RateLimitPerMinute int
	RateLimitBurst     int
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	tablePrefix := getTablePrefix(env)
	issuer := getEnv("CLERK_ISSUER", "")

	// Construct JWKS URL from the issuer unless overridden
	jwksURL := getEnv("CLERK_JWKS_URL", issuer+"/.well-known/jwks.json")

	return &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        env,
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		ClerkIssuer:        issuer,
		ClerkJWKSURL:       jwksURL,
		CORSOrigins:        getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:        tablePrefix,
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 60),
		// Debug defaults to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	// Auto-generate based on environment
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
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
