package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pharmstore/m/internal/database"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_DRIVER", "DATABASE_DSN", "HTTP_PORT", "LOG_LEVEL", "LOG_FORMAT",
		"MAX_PAGE_LIMIT", "CORS_ALLOWED_ORIGINS", "METRICS_ENABLED", "SEED_DRUGS_CSV",
		"DB_HOST", "DB_USER", "DB_PORT", "DB_NAME", "DB_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, database.DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "pharmacy.db", cfg.DatabaseDSN)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 1000, cfg.MaxPageLimit)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.True(t, cfg.MetricsEnabled)
	assert.Empty(t, cfg.SeedDrugsCSV)
}

func TestLoadPostgresBuildsDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "pharm")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "stock")

	cfg := Load()

	assert.Equal(t, database.DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, "postgres://pharm:secret@db:5432/stock?sslmode=disable", cfg.DatabaseDSN)
}

func TestLoadPostgresIgnoresShellVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_DRIVER", "pgx")
	t.Setenv("USER", "root")
	t.Setenv("PORT", "3000")
	t.Setenv("NAME", "shell")

	cfg := Load()

	assert.Equal(t, "postgres://postgres:@localhost:5432/pharmacy?sslmode=disable", cfg.DatabaseDSN)
}

func TestLoadFallsBackOnInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_DRIVER", "oracle")
	t.Setenv("HTTP_PORT", "http")
	t.Setenv("MAX_PAGE_LIMIT", "-3")
	t.Setenv("METRICS_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, database.DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 1000, cfg.MaxPageLimit)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_DSN", "file:stock.db")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("MAX_PAGE_LIMIT", "50")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, ,http://b.example")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("SEED_DRUGS_CSV", "assets/drugs.csv")

	cfg := Load()

	assert.Equal(t, "file:stock.db", cfg.DatabaseDSN)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 50, cfg.MaxPageLimit)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, "assets/drugs.csv", cfg.SeedDrugsCSV)
}
