package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var defaultDevOrigins = []string{
	"http://localhost:8000",
	"http://127.0.0.1:8000",
	"http://localhost:8080",
	"http://127.0.0.1:8080",
}

// Config captures all runtime configuration derived from environment variables.
type Config struct {
	Port              string
	Env               string
	StoreDriver       string
	DBURL             string
	MongoURI          string
	MongoDatabase     string
	AutoMigrate       bool
	JWTSecret         string
	JWTIssuer         string
	TokenTTLHours     int
	BcryptCost        int
	CORSOrigins       []string
	ReadTimeoutSecs   int
	WriteTimeoutSecs  int
	IdleTimeoutSecs   int
	DBMaxConns        int
	DBMinConns        int
	DBMaxIdleSecs     int
	DBMaxLifeSecs     int
	DBConnTimeoutSecs int
	DBStatementCache  int
}

// Load reads configuration from environment variables, applying defaults and validation.
func Load() (Config, error) {
	return load(true)
}

// LoadStorage is Load for binaries that only touch the store, such as the
// seeder. JWT_SECRET is not required.
func LoadStorage() (Config, error) {
	return load(false)
}

func load(requireAuth bool) (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "3001"),
		Env:               strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
		DBURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		MongoURI:          strings.TrimSpace(os.Getenv("MONGODB_URI")),
		MongoDatabase:     getEnv("MONGODB_DATABASE", "moviemeter"),
		AutoMigrate:       getEnvBool("AUTO_MIGRATE", true),
		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:         getEnv("JWT_ISSUER", "moviemeter"),
		TokenTTLHours:     getEnvInt("TOKEN_TTL_HOURS", 24),
		BcryptCost:        getEnvInt("BCRYPT_COST", 10),
		ReadTimeoutSecs:   getEnvInt("SERVER_READ_TIMEOUT", 15),
		WriteTimeoutSecs:  getEnvInt("SERVER_WRITE_TIMEOUT", 15),
		IdleTimeoutSecs:   getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		DBMaxConns:        getEnvInt("DB_MAX_CONNS", 20),
		DBMinConns:        getEnvInt("DB_MIN_CONNS", 2),
		DBMaxIdleSecs:     getEnvInt("DB_MAX_CONN_IDLE_SECS", 300),
		DBMaxLifeSecs:     getEnvInt("DB_MAX_CONN_LIFETIME_SECS", 3600),
		DBConnTimeoutSecs: getEnvInt("DB_CONN_TIMEOUT_SECS", 10),
		DBStatementCache:  getEnvInt("DB_STATEMENT_CACHE_CAPACITY", 256),
	}

	if origins := parseCSV(os.Getenv("CORS_ALLOWED_ORIGINS")); len(origins) > 0 {
		cfg.CORSOrigins = origins
	} else if cfg.Env != EnvProduction {
		cfg.CORSOrigins = append([]string(nil), defaultDevOrigins...)
	}

	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		return Config{}, fmt.Errorf("APP_ENV must be %q or %q", EnvDevelopment, EnvProduction)
	}
	if requireAuth && cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DBURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	case DriverMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGODB_URI is required when STORE_DRIVER=mongo")
		}
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER must be %q or %q", DriverPostgres, DriverMongo)
	}
	if cfg.TokenTTLHours <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL_HOURS must be positive")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.DBMaxConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if cfg.DBMinConns < 0 {
		return Config{}, fmt.Errorf("DB_MIN_CONNS must be non-negative")
	}
	if cfg.DBMaxConns > 0 && cfg.DBMinConns > cfg.DBMaxConns {
		return Config{}, fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}
	if cfg.DBStatementCache < 0 {
		return Config{}, fmt.Errorf("DB_STATEMENT_CACHE_CAPACITY must be non-negative")
	}

	return cfg, nil
}

// TokenTTL returns the lifetime of issued tokens.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return ":" + c.Port
}

// IsProduction reports whether the deployment mode flag is set to production.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
