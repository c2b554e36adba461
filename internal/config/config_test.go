package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := FromViper(v)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 3306, cfg.DBPort)
	assert.Equal(t, "defaultdb", cfg.DBName)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "root:@tcp(localhost:3306)/defaultdb?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSN())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_SSL_MODE", "required")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg := FromViper(newViper())

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Contains(t, cfg.DSN(), "host=db.internal port=5432")
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}

func TestMySQLTLS(t *testing.T) {
	cfg := &Config{DBDriver: "mysql", DBHost: "h", DBPort: 3306, DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "REQUIRED"}
	assert.Contains(t, cfg.DSN(), "&tls=skip-verify")
}

func TestDatabaseURLWins(t *testing.T) {
	cfg := &Config{DBDriver: "postgres", DatabaseURL: "postgres://u:p@h/db", DBHost: "ignored"}
	assert.Equal(t, "postgres://u:p@h/db", cfg.DSN())
}

func TestValidate(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", DBHost: "h", ServerPort: "1", DBMaxOpenConns: 1}
	assert.Error(t, cfg.Validate())

	cfg.DBDriver = "mysql"
	cfg.DBMaxOpenConns = 0
	assert.Error(t, cfg.Validate())
}
