package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds application level configuration loaded from environment variables.
// Required values are validated once at startup; components receive the struct
// and never read the environment themselves.
type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	// Salt is the server-wide secret mixed into passwords before hashing.
	Salt string

	JWTIssuer   string
	JWTAudience string
	JWTSecret   string

	RedisAddr string
	RedisDB   int
	RedisPass string

	// CORSOrigin is the single origin allowed to call the API from a browser.
	// Empty disables the CORS middleware.
	CORSOrigin string
}

// Load builds Config from the environment. It fails when any required value
// is absent so the process can refuse to start half-configured.
func Load() (*Config, error) {
	var missing []string
	require := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     require("DB_HOST"),
		DBPort:     require("DB_PORT"),
		DBName:     require("DB_NAME"),
		DBUser:     require("DB_USER"),
		DBPassword: require("DB_PASSWORD"),

		Salt: require("APPLICATION_SALT"),

		JWTIssuer:   require("JWT_ISSUER"),
		JWTAudience: require("JWT_AUDIENCE"),
		JWTSecret:   require("JWT_SECRET"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		CORSOrigin: os.Getenv("CORS_ALLOWED_ORIGIN"),
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("environment not properly configured, missing: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// MySQLDSN renders the go-sql-driver DSN for the configured database.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
