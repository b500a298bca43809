package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "farmstead-dev-secret"

type Config struct {
	Port                 string
	GinMode              string
	Database             DatabaseConfig
	JWT                  JWTConfig
	Log                  LogConfig
	Login                LoginConfig
	CORSOrigins          []string
	AdminDefaultPassword string
	// ExportSigningKey signs ledger exports; defaults to the JWT secret.
	ExportSigningKey string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
	// UsingDevSecret is set when no JWT_SECRET was provided in debug mode.
	UsingDevSecret bool
}

type LogConfig struct {
	Level    string
	Encoding string
}

// LoginConfig throttles POST /token per client IP.
type LoginConfig struct {
	RatePerMinute int
	Burst         int
}

func Load() (*Config, error) {
	godotenv.Load()

	ginMode := getEnv("GIN_MODE", "debug")

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}

	ratePerMinute, err := strconv.Atoi(getEnv("LOGIN_RATE_PER_MINUTE", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_PER_MINUTE: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("LOGIN_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_BURST: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	usingDevSecret := false
	if jwtSecret == "" {
		if ginMode == "release" {
			return nil, fmt.Errorf("JWT_SECRET is required in release mode")
		}
		jwtSecret = devJWTSecret
		usingDevSecret = true
	}

	encoding := "console"
	if ginMode == "release" {
		encoding = "json"
	}

	return &Config{
		Port:    getEnv("PORT", "8000"),
		GinMode: ginMode,
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", "sqlite:farm.db"),
		},
		JWT: JWTConfig{
			Secret:         jwtSecret,
			TokenTTL:       ttl,
			UsingDevSecret: usingDevSecret,
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", encoding),
		},
		Login: LoginConfig{
			RatePerMinute: ratePerMinute,
			Burst:         burst,
		},
		CORSOrigins:          splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		AdminDefaultPassword: getEnv("ADMIN_DEFAULT_PASSWORD", "admin123"),
		ExportSigningKey:     getEnv("EXPORT_SIGNING_KEY", jwtSecret),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
