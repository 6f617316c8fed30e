package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string
	DevMode     bool
	LogDir      string // empty logs to stdout only

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	APIKey             string // API key for service-to-service authentication
	CORSAllowedOrigins []string
	TrustedProxies     []string

	// ReplayHashKey keys the scan replay hash so clients cannot precompute it
	ReplayHashKey string

	EventMaxRetries int
	EventRetryDelay time.Duration
	DeadLetterPath  string
	WorkerCount     int
	WorkerQueue     int

	SpinPolicyPath string
	Spin           SpinPolicy
}

// Load loads the configuration from environment variables and the spin policy file
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
		Environment:        getEnv("ENVIRONMENT", "dev"),
		ServiceName:        getEnv("SERVICE_NAME", "spinvault"),
		Version:            getEnv("VERSION", "dev"),
		DevMode:            getEnvAsBool("DEV_MODE", false),
		LogDir:             getEnv("LOG_DIR", ""),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBName:             getEnv("DB_NAME", "spinvault"),
		DBMaxConns:         getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
		APIKey:             getEnv("API_KEY", ""),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
		TrustedProxies:     getEnvAsList("TRUSTED_PROXIES", nil),
		ReplayHashKey:      getEnv("REPLAY_HASH_KEY", ""),
		EventMaxRetries:    getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:    getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		DeadLetterPath:     getEnv("EVENT_DEADLETTER_PATH", DefaultDeadLetterPath),
		WorkerCount:        getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueue:        getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),
		SpinPolicyPath:     getEnv("SPIN_POLICY_PATH", ConfigPathSpinPolicy),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, errors.New("API_KEY environment variable must be set for security")
	}

	policy, err := LoadSpinPolicy(cfg.SpinPolicyPath)
	if err != nil {
		return nil, err
	}
	cfg.Spin = policy

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
