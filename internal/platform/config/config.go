package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr             string        `yaml:"addr"`
	DatabaseURL      string        `yaml:"database_url"`
	JWTSecret        string        `yaml:"jwt_secret"`
	FrontendDir      string        `yaml:"frontend_dir"`
	Environment      string        `yaml:"environment"`
	LogLevel         string        `yaml:"log_level"`
	RunMigrations    bool          `yaml:"run_migrations"`
	MigrationsDir    string        `yaml:"migrations_dir"`
	MaxBodyBytes     int64         `yaml:"max_body_bytes"`
	MetricsEnabled   bool          `yaml:"metrics_enabled"`
	RateLimitPerMin  int           `yaml:"rate_limit_per_minute"`
	DBMaxConns       int           `yaml:"db_max_conns"`
	DBMinConns       int           `yaml:"db_min_conns"`
	DBMaxConnLife    time.Duration `yaml:"-"`
	DBMaxConnLifeRaw string        `yaml:"db_max_conn_lifetime"`
	SeedAdminUserID  string        `yaml:"seed_admin_user_id"`
	SeedAdminName    string        `yaml:"seed_admin_name"`
	SeedAdminEmail   string        `yaml:"seed_admin_email"`
}

func defaults() Config {
	return Config{
		Addr:            ":8080",
		FrontendDir:     "frontend/dist",
		Environment:     "development",
		LogLevel:        "info",
		RunMigrations:   true,
		MigrationsDir:   "migrations",
		MaxBodyBytes:    1048576,
		MetricsEnabled:  true,
		RateLimitPerMin: 120,
		DBMaxConns:      10,
		DBMinConns:      2,
		DBMaxConnLife:   time.Hour,
		SeedAdminName:   "System Administrator",
	}
}

// Load reads an optional .env file, an optional YAML file named by CONFIG_FILE,
// then the process environment. Later sources win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse yaml: %w", err)
	}
	if c.DBMaxConnLifeRaw != "" {
		d, err := time.ParseDuration(c.DBMaxConnLifeRaw)
		if err != nil {
			return fmt.Errorf("config: db_max_conn_lifetime: %w", err)
		}
		c.DBMaxConnLife = d
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Addr = getEnv("APP_ADDR", c.Addr)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.FrontendDir = getEnv("FRONTEND_DIR", c.FrontendDir)
	c.Environment = getEnv("APP_ENV", c.Environment)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.RunMigrations = getEnvBool("RUN_MIGRATIONS", c.RunMigrations)
	c.MigrationsDir = getEnv("MIGRATIONS_DIR", c.MigrationsDir)
	c.MaxBodyBytes = int64(getEnvInt("MAX_BODY_BYTES", int(c.MaxBodyBytes)))
	c.MetricsEnabled = getEnvBool("METRICS_ENABLED", c.MetricsEnabled)
	c.RateLimitPerMin = getEnvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMin)
	c.DBMaxConns = getEnvInt("DB_MAX_CONNS", c.DBMaxConns)
	c.DBMinConns = getEnvInt("DB_MIN_CONNS", c.DBMinConns)
	c.DBMaxConnLife = getEnvDuration("DB_MAX_CONN_LIFETIME", c.DBMaxConnLife)
	c.SeedAdminUserID = getEnv("SEED_ADMIN_USER_ID", c.SeedAdminUserID)
	c.SeedAdminName = getEnv("SEED_ADMIN_NAME", c.SeedAdminName)
	c.SeedAdminEmail = getEnv("SEED_ADMIN_EMAIL", c.SeedAdminEmail)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS")
	}
	return nil
}
