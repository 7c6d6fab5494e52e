package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"edutech/internal/logger"
)

// DevJWTSecret is used when JWT_SECRET is unset. It is refused in production.
const DevJWTSecret = "fallback-secret-key-for-dev-only"

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Database
	DBDriver          string
	DatabasePath      string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBQueryTimeout    time.Duration

	// JWT
	JWTSecret        string
	JWTIssuer        string
	JWTExpirationDur time.Duration

	// Redis course cache; disabled when RedisAddr is empty
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CourseCacheTTL time.Duration

	// Default admin seeded on first boot
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug(".env file not found, using environment only")
	}

	config := &Config{
		// Server
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "3000"),

		// Database
		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DatabasePath: getEnv("DATABASE_PATH", "./database/edutech.sqlite"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "edutech"),
		DBPassword:   getEnv("DB_PASSWORD", "edutech"),
		DBName:       getEnv("DB_NAME", "edutech"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", DevJWTSecret),
		JWTIssuer: getEnv("JWT_ISSUER", "edutech-api"),

		// Redis
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		// Admin
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "password123"),
		AdminName:     getEnv("ADMIN_NAME", "System Administrator"),
	}

	if config.DBDriver != "sqlite" && config.DBDriver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use sqlite or postgres)", config.DBDriver)
	}

	var err error
	if config.DBMaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", 25); err != nil {
		return nil, err
	}
	if config.DBMaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", 10); err != nil {
		return nil, err
	}
	if config.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if config.DBConnMaxLifetime, err = getEnvDuration("DB_CONN_MAX_LIFETIME", time.Hour); err != nil {
		return nil, err
	}
	if config.DBQueryTimeout, err = getEnvDuration("DB_QUERY_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if config.CourseCacheTTL, err = getEnvDuration("COURSE_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	// Parse token lifetime
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := ParseLifetime(expStr)
	if err != nil {
		logger.Get().Warnf("invalid JWT_EXPIRES_IN value '%s', falling back to 24h", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	if config.Env == "production" && config.JWTSecret == DevJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return config, nil
}

// ParseLifetime parses a token lifetime such as "900", "15m", "24h", "7d" or "2w".
// A bare number is read as seconds.
func ParseLifetime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty lifetime")
	}

	var d time.Duration
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n <= 0 || n > int64(math.MaxInt64/time.Second) {
			return 0, fmt.Errorf("lifetime %q is out of range", s)
		}
		d = time.Duration(n) * time.Second
	} else if unit := s[len(s)-1]; unit == 'd' || unit == 'w' {
		n, err := strconv.ParseFloat(s[:len(s)-1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid lifetime %q", s)
		}
		day := 24 * time.Hour
		if unit == 'w' {
			day *= 7
		}
		// Also rejects NaN and infinities, which ParseFloat accepts.
		ns := n * float64(day)
		if !(ns > 0 && ns < math.MaxInt64) {
			return 0, fmt.Errorf("lifetime %q is out of range", s)
		}
		d = time.Duration(ns)
	} else {
		d, err = time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid lifetime %q: %w", s, err)
		}
	}

	if d <= 0 {
		return 0, fmt.Errorf("lifetime must be positive, got %q", s)
	}
	return d, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
