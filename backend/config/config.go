package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret   string
	JWTTTL      time.Duration
	ServerPort  string
	CORSOrigins string

	LogFormat string // console or json
	LogColors bool

	RedisURL        string
	CatalogCacheTTL time.Duration

	StorageURL     string
	StorageKey     string
	AvatarBucket   string
	MaxAvatarBytes int64
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// LoadConfig reads .env when present and falls back to process environment.
// The returned error reports malformed values, never a missing .env file.
func LoadConfig() (*Config, error) {
	envLoaded := godotenv.Load() == nil

	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "learning_platform"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "console")),

		RedisURL: getEnv("REDIS_URL", ""),

		StorageURL:   strings.TrimRight(getEnv("STORAGE_URL", ""), "/"),
		StorageKey:   getEnv("STORAGE_SERVICE_KEY", ""),
		AvatarBucket: getEnv("AVATAR_BUCKET", "avatars"),
	}

	var err error
	if cfg.JWTTTL, err = getDuration("JWT_TTL", 72*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CatalogCacheTTL, err = getDuration("CATALOG_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.LogColors, err = getBool("LOG_COLORS", !envLoaded); err != nil {
		return nil, err
	}
	maxAvatar, err := strconv.ParseInt(getEnv("MAX_AVATAR_BYTES", "2097152"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("config: MAX_AVATAR_BYTES: %w", err)
	}
	cfg.MaxAvatarBytes = maxAvatar

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}
