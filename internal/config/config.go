package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// PayrollConfig holds company-wide payroll policy knobs. These feed the
// calculator defaults; per-employee salary configuration overrides live
// on the employee record.
type PayrollConfig struct {
	LateGraceTime      string // "HH:MM" clock-in grace threshold
	StandardDayHours   float64
	WorkingDaysPerWeek int
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "dayflow-hr"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	standardDayHours, err := strconv.ParseFloat(getEnv("PAYROLL_STANDARD_DAY_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_STANDARD_DAY_HOURS: %w", err)
	}
	workingDays, err := strconv.Atoi(getEnv("PAYROLL_WORKING_DAYS_PER_WEEK", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_WORKING_DAYS_PER_WEEK: %w", err)
	}

	config.Payroll = PayrollConfig{
		LateGraceTime:      getEnv("PAYROLL_LATE_GRACE_TIME", "09:15"),
		StandardDayHours:   standardDayHours,
		WorkingDaysPerWeek: workingDays,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.StandardDayHours <= 0 {
		return fmt.Errorf("PAYROLL_STANDARD_DAY_HOURS must be positive")
	}
	if c.Payroll.WorkingDaysPerWeek < 1 || c.Payroll.WorkingDaysPerWeek > 7 {
		return fmt.Errorf("PAYROLL_WORKING_DAYS_PER_WEEK must be between 1 and 7")
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
