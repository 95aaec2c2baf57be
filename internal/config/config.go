package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"pharmstore/m/internal/database"
)

const (
	defaultHTTPPort     = "8080"
	defaultMaxPageLimit = 1000
)

// Config holds application configuration values.
type Config struct {
	DatabaseDriver string
	DatabaseDSN    string
	HTTPPort       string

	LogLevel  string
	LogFormat string

	MaxPageLimit   int
	AllowedOrigins []string
	MetricsEnabled bool

	SeedDrugsCSV string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	driver := strings.ToLower(os.Getenv("DATABASE_DRIVER"))
	switch driver {
	case "", database.DriverSQLite:
		driver = database.DriverSQLite
	case "postgres", "postgresql", database.DriverPostgres:
		driver = database.DriverPostgres
	default:
		log.Warn().Str("driver", driver).Msg("unknown DATABASE_DRIVER, defaulting to sqlite")
		driver = database.DriverSQLite
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = defaultHTTPPort
	}
	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Warn().Str("value", port).Msg("invalid HTTP_PORT, defaulting to 8080")
		port = defaultHTTPPort
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = defaultDSN(driver)
	}

	maxPage := defaultMaxPageLimit
	if raw := os.Getenv("MAX_PAGE_LIMIT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			log.Warn().Str("value", raw).Msg("invalid MAX_PAGE_LIMIT, defaulting to 1000")
		} else {
			maxPage = n
		}
	}

	metrics := true
	if raw := os.Getenv("METRICS_ENABLED"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			log.Warn().Str("value", raw).Msg("invalid METRICS_ENABLED, keeping metrics on")
		} else {
			metrics = b
		}
	}

	return Config{
		DatabaseDriver: driver,
		DatabaseDSN:    dsn,
		HTTPPort:       port,
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LogFormat:      envOr("LOG_FORMAT", "json"),
		MaxPageLimit:   maxPage,
		AllowedOrigins: splitList(envOr("CORS_ALLOWED_ORIGINS", "*")),
		MetricsEnabled: metrics,
		SeedDrugsCSV:   os.Getenv("SEED_DRUGS_CSV"),
	}
}

func defaultDSN(driver string) string {
	if driver == database.DriverSQLite {
		return "pharmacy.db"
	}
	host := envOr("DB_HOST", "localhost")
	user := envOr("DB_USER", "postgres")
	dbPort := envOr("DB_PORT", "5432")
	name := envOr("DB_NAME", "pharmacy")
	password := os.Getenv("DB_PASSWORD")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, dbPort, name)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
