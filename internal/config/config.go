package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Function names, as deployed and as mounted under /functions/v1.
const (
	FunctionAutoExpirePosts = "auto-expire-posts"
	FunctionExtractOCRText  = "extract-ocr-text"
	FunctionVerifyIdentity  = "verify-identity"
)

var AllFunctions = []string{
	FunctionAutoExpirePosts,
	FunctionExtractOCRText,
	FunctionVerifyIdentity,
}

type Config struct {
	Env      string
	LogLevel string
	Port     string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBUrl      string
	DBMaxConns int

	RedisAddr string
	RedisDB   int

	RateLimitRPS    float64
	RateLimitBurst  int
	RateLimitWindow time.Duration

	OCRSimulatedDelay time.Duration

	Functions      []string
	MetricsEnabled bool
	MigrateOnStart bool
}

// LoadConfig reads the process environment. A .env file in the working directory, if
// present, is loaded first and never overrides variables that are already set.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnv("HTTP_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "findie"),
		DBPassword: getEnv("DB_PASSWORD", "findie"),
		DBName:     getEnv("DB_NAME", "findie"),
		DBMaxConns: getEnvInt("DB_MAX_CONNS", 10),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 100),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 200),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),

		OCRSimulatedDelay: getEnvDuration("OCR_SIMULATED_DELAY", 2*time.Second),

		Functions:      ParseFunctions(getEnv("FUNCTIONS", "")),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", false),
	}

	cfg.DBUrl = getEnv("DB_URL", cfg.getDBUrl())

	return cfg
}

func (cfg *Config) IsProduction() bool {
	return cfg.Env == "production"
}

// RedisEnabled reports whether a shared redis is configured for rate limiting.
func (cfg *Config) RedisEnabled() bool {
	return cfg.RedisAddr != ""
}

// Validate checks the settings that cannot be defaulted sensibly.
func (cfg *Config) Validate() error {
	if cfg.DBUrl == "" {
		return fmt.Errorf("database url is required")
	}
	if cfg.RateLimitRPS < 0 || cfg.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	if cfg.OCRSimulatedDelay < 0 {
		return fmt.Errorf("OCR_SIMULATED_DELAY must not be negative")
	}
	for _, fn := range cfg.Functions {
		if !isKnownFunction(fn) {
			return fmt.Errorf("unknown function %q", fn)
		}
	}
	return nil
}

// Enabled reports whether the named function should be mounted. An empty list enables all.
func (cfg *Config) Enabled(function string) bool {
	if len(cfg.Functions) == 0 {
		return true
	}
	for _, fn := range cfg.Functions {
		if fn == function {
			return true
		}
	}
	return false
}

// ParseFunctions splits a comma separated list of function names.
func ParseFunctions(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func isKnownFunction(name string) bool {
	for _, fn := range AllFunctions {
		if fn == name {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

func (cfg *Config) getDBUrl() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
}
