package config

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// InsecureDevSecret is only acceptable outside prod. Load refuses to start a
// prod process without an explicit JWT_SECRET.
const InsecureDevSecret = "dev-insecure-secret-change-me"

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set when APP_ENV=prod")

type Config struct {
	Env  string
	Port int

	DBURL string

	JWTSecret           string
	JWTAccessTTLMinutes int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OTLPEndpoint   string
	AllowedOrigins []string
}

func Load() (Config, error) {
	cfg := Config{
		Env:                 getEnv("APP_ENV", "dev"),
		Port:                getEnvInt("PORT", 8080),
		DBURL:               buildDBURL(),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTAccessTTLMinutes: getEnvInt("JWT_ACCESS_TTL_MINUTES", 60),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		OTLPEndpoint:        getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		AllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "prod" {
			return Config{}, ErrMissingJWTSecret
		}
		cfg.JWTSecret = InsecureDevSecret
	}

	return cfg, nil
}

// UsingDevSecret reports whether the process fell back to the baked-in dev
// signing secret, so main can log a loud warning.
func (c Config) UsingDevSecret() bool {
	return c.JWTSecret == InsecureDevSecret
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.JWTAccessTTLMinutes) * time.Minute
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "moneyseed")
	pass := getEnv("DB_PASSWORD", "moneyseed")
	name := getEnv("DB_NAME", "moneyseed")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}
	return fallback
}
