package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"auction-backend/utils"

	"github.com/joho/godotenv"
)

// AppConfig holds every setting the service reads at startup.
type AppConfig struct {
	Port            string
	Env             string
	MongoMode       string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	PasetoSecretKey []byte
	TokenTTL        time.Duration
	CloudinaryURL   string
	RedisAddress    string
	RedisPassword   string
	RedisDB         int
	AllowedOrigins  []string
	AdminEmail      string
	AdminPassword   string
	RequestTimeout  time.Duration
	LogLevel        string
	Version         string
}

// Load reads configuration from a .env file when present, then from the
// process environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		utils.Info("No .env file found, using environment variables", nil)
	}

	cfg := &AppConfig{
		Port:            getEnv("PORT", "5000"),
		Env:             getEnv("ENVIRONMENT", "development"),
		MongoMode:       getEnv("MONGO_MODE", "local"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "auction"),
		MongoCollection: getEnv("MONGO_COLLECTION", "products"),
		CloudinaryURL:   getEnv("CLOUDINARY_URL", ""),
		RedisAddress:    getEnv("REDIS_ADDRESS", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		AdminEmail:      getEnv("ADMIN_EMAIL", ""),
		AdminPassword:   getEnv("ADMIN_PASSWORD", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Version:         getEnv("SERVICE_VERSION", "dev"),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if cfg.MongoMode == "atlas" {
		cfg.MongoURI = getEnv("MONGO_URI_ATLAS", "")
		if cfg.MongoURI == "" {
			return nil, errors.New("MONGO_MODE 'atlas' but MONGO_URI_ATLAS is not set")
		}
	} else {
		cfg.MongoURI = getEnv("MONGO_URI_LOCAL", "mongodb://localhost:27017")
	}

	key := getEnv("PASETO_SECRET_KEY", "")
	if len(key) != 32 {
		return nil, errors.New("PASETO_SECRET_KEY must be 32 characters long")
	}
	cfg.PasetoSecretKey = []byte(key)

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer: %w", err)
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return nil, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

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
	if !ok || raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
