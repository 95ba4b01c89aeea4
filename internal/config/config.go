package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	Auth      AuthConfig
	App       AppConfig
	Insurance InsuranceDefaults
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// AuthConfig holds token signing and admin-console credentials.
type AuthConfig struct {
	Secret           string
	AdminPassword    string
	AdminExpiration  string
	PortalExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// InsuranceDefaults carries the statutory contribution defaults that seed
// every resolved policy. Loaded once from the environment at startup and
// passed into the resolver; nothing mutates it afterwards.
type InsuranceDefaults struct {
	NPSRate     float64
	NPSRoundTo  int64
	NPSRounding string

	NHISRate     float64
	NHISRoundTo  int64
	NHISRounding string
	LTCRate      float64
	LTCRoundTo   int64
	LTCRounding  string

	EIRate     float64
	EIRoundTo  int64
	EIRounding string

	// BaseExemptions maps an earning field label to the amount of it that is
	// excluded from contribution bases (e.g. meal allowance up to 200,000).
	BaseExemptions map[string]int64
}

func Load() (*Config, error) {
	// A missing .env file is fine in containerized deploys; real env wins.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.Auth = AuthConfig{
		Secret:           getEnv("SECRET_KEY", ""),
		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
		AdminExpiration:  getEnv("ADMIN_TOKEN_EXPIRATION_TIME", "12h"),
		PortalExpiration: getEnv("PORTAL_TOKEN_EXPIRATION_TIME", "24h"),
	}

	insurance, err := loadInsuranceDefaults()
	if err != nil {
		return nil, err
	}
	config.Insurance = insurance

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadInsuranceDefaults() (InsuranceDefaults, error) {
	d := InsuranceDefaults{
		NPSRate:     getEnvFloat("INS_NPS_RATE", 0.045),
		NPSRoundTo:  getEnvInt64("INS_NPS_ROUND_TO", 10),
		NPSRounding: getEnv("INS_NPS_ROUNDING", "round"),

		NHISRate:     getEnvFloat("INS_NHIS_RATE", 0.03545),
		NHISRoundTo:  getEnvInt64("INS_NHIS_ROUND_TO", 10),
		NHISRounding: getEnv("INS_NHIS_ROUNDING", "round"),
		LTCRate:      getEnvFloat("INS_LTC_RATE", 0.1295),
		LTCRoundTo:   getEnvInt64("INS_LTC_ROUND_TO", 10),
		LTCRounding:  getEnv("INS_LTC_ROUNDING", "round"),

		EIRate:     getEnvFloat("INS_EI_RATE", 0.009),
		EIRoundTo:  getEnvInt64("INS_EI_ROUND_TO", 10),
		EIRounding: getEnv("INS_EI_ROUNDING", "round"),

		BaseExemptions: map[string]int64{
			"식대":      200_000,
			"자가운전보조금": 200_000,
		},
	}

	if raw := getEnv("INS_BASE_EXEMPTIONS", ""); raw != "" {
		parsed := map[string]int64{}
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return InsuranceDefaults{}, fmt.Errorf("invalid INS_BASE_EXEMPTIONS: %w", err)
		}
		d.BaseExemptions = parsed
	}

	return d, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if c.Auth.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
