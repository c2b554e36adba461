package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBDriver       string
	DatabaseURL    string
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBMaxOpenConns int

	RedisURL    string
	CacheTTL    time.Duration
	SaveLockTTL time.Duration

	ServerPort     string
	LogLevel       string
	AllowedOrigins []string

	ModuleEntryCode string
	CompanyID       int
	FinancialPeriod string
	UserID          int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "defaultdb")
	v.SetDefault("DB_SSL_MODE", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL", 1800)
	v.SetDefault("SAVE_LOCK_TTL", 30)
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MODULE_ENTRY_CODE", "ORDER")
	v.SetDefault("COMPANY_ID", 1)
	v.SetDefault("FINANCIAL_PERIOD", "")
	v.SetDefault("USER_ID", 1)
}

// Load reads settings from the environment. .env.local and .env are loaded
// first when present; variables already set in the environment win.
func Load() *Config {
	godotenv.Load(".env.local")
	godotenv.Load()

	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetInt("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      strings.ToUpper(v.GetString("DB_SSL_MODE")),
		DBMaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),

		RedisURL:    v.GetString("REDIS_URL"),
		CacheTTL:    time.Duration(v.GetInt("CACHE_TTL")) * time.Second,
		SaveLockTTL: time.Duration(v.GetInt("SAVE_LOCK_TTL")) * time.Second,

		ServerPort:     v.GetString("SERVER_PORT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),

		ModuleEntryCode: v.GetString("MODULE_ENTRY_CODE"),
		CompanyID:       v.GetInt("COMPANY_ID"),
		FinancialPeriod: v.GetString("FINANCIAL_PERIOD"),
		UserID:          v.GetInt("USER_ID"),
	}
}

// Validate checks settings that would otherwise fail late at startup.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DatabaseURL == "" && c.DBHost == "" {
		return fmt.Errorf("DB_HOST or DATABASE_URL is required")
	}
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.DBMaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive")
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DBDriver == "postgres" {
		sslMode := "disable"
		if c.DBSSLMode == "REQUIRED" {
			sslMode = "require"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	if c.DBSSLMode == "REQUIRED" {
		dsn += "&tls=skip-verify"
	}
	return dsn
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
