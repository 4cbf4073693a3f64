package config

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	AppMode     string
	Port        string
	StoreDriver string
	Database    DatabaseConfig
	JWT         JWTConfig
	Cookie      CookieConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	Upload      UploadConfig
	RateLimit   RateLimitConfig
	DigestCron  string
	SeedDevData bool
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds token configuration.
// Secret is base64 encoded; access and refresh tokens share TokenValidity.
type JWTConfig struct {
	Secret        string
	TokenValidity time.Duration
}

// CookieConfig holds access token cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// RedisConfig holds Redis configuration; empty Addr disables Redis
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RabbitMQConfig holds broker configuration; empty URL disables publishing
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// UploadConfig holds attachment storage configuration
type UploadConfig struct {
	Dir     string
	BaseURL string
}

// RateLimitConfig holds the general API rate limit
type RateLimitConfig struct {
	Max        int
	Expiration time.Duration
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	storeDriver := strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", StoreMySQL)))
	if storeDriver != StoreMySQL && storeDriver != StoreMemory {
		return nil, fmt.Errorf("invalid STORE_DRIVER: '%s' (must be '%s' or '%s')", storeDriver, StoreMySQL, StoreMemory)
	}

	jwtConfig, err := loadJWTConfig(appMode)
	if err != nil {
		return nil, err
	}

	port := getEnv("PORT", "8080")
	config := &Config{
		AppMode:     appMode,
		Port:        port,
		StoreDriver: storeDriver,
		Database:    loadDatabaseConfig(appMode),
		JWT:         jwtConfig,
		Cookie:      loadCookieConfig(appMode),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      getEnv("RABBITMQ_URL", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "hanaqna.events"),
		},
		Upload: UploadConfig{
			Dir:     getEnv("UPLOAD_DIR", "./uploads"),
			BaseURL: getEnv("UPLOAD_BASE_URL", "http://localhost:"+port+"/uploads"),
		},
		RateLimit: RateLimitConfig{
			Max:        getEnvInt("RATE_LIMIT_MAX", 100),
			Expiration: time.Minute,
		},
		DigestCron:  getEnv("DIGEST_CRON", "55 23 * * *"),
		SeedDevData: appMode == "dev" && getEnv("SEED_DEV_DATA", "true") == "true",
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s, STORE: %s]", appMode, storeDriver)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "hana_qna"),
	}
}

// loadJWTConfig loads JWT config based on mode; the secret must be valid base64
func loadJWTConfig(mode string) (JWTConfig, error) {
	prefix := modePrefix(mode)

	secret := strings.TrimSpace(getEnv(prefix+"JWT_SECRET", ""))
	if secret == "" {
		return JWTConfig{}, fmt.Errorf("%sJWT_SECRET is required", prefix)
	}
	if _, err := base64.StdEncoding.DecodeString(secret); err != nil {
		return JWTConfig{}, fmt.Errorf("%sJWT_SECRET is not valid base64: %w", prefix, err)
	}

	hours := getEnvInt("TOKEN_VALIDITY_HOURS", 24)
	if hours <= 0 {
		return JWTConfig{}, fmt.Errorf("TOKEN_VALIDITY_HOURS must be positive, got %d", hours)
	}

	return JWTConfig{
		Secret:        secret,
		TokenValidity: time.Duration(hours) * time.Hour,
	}, nil
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := modePrefix(mode)

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://qna.hana.example.com"
	}
	return origins
}
