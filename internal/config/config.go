package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppPort string
	AppURL  string

	// Data source: "sample" serves the built-in fixture, "mysql" and "sqlite" read the commission tables
	DataSource string
	SQLitePath string

	// Database
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUsername        string
	DBPassword        string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Import sessions
	SessionStore       string // memory | redis
	ImportSessionTTL   time.Duration
	ImportTickInterval time.Duration
	ImportTickStep     int
	Ticker             string // local | asynq

	// Upload
	UploadMaxSize int

	// Worker
	WorkerConcurrency int

	// Asynq
	AsynqRedisAddr     string
	AsynqRedisPassword string
	AsynqRedisDB       int
}

func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()
	_ = godotenv.Load("../../.env") // For when running from cmd/web or cmd/worker

	cfg := &Config{
		AppName: getEnv("APP_NAME", "Commission Central"),
		AppEnv:  getEnv("APP_ENV", "development"),
		AppPort: getEnv("APP_PORT", "8080"),
		AppURL:  getEnv("APP_URL", "http://localhost:8080"),

		DataSource: getEnv("DATA_SOURCE", "sample"),
		SQLitePath: getEnv("SQLITE_PATH", "storage/commissions.db"),

		DBHost:            getEnv("DB_HOST", "127.0.0.1"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", "commission_central"),
		DBUsername:        getEnv("DB_USERNAME", "root"),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBMaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		SessionStore:       getEnv("SESSION_STORE", "memory"),
		ImportSessionTTL:   getEnvAsDuration("IMPORT_SESSION_TTL", 30*time.Minute),
		ImportTickInterval: getEnvAsDuration("IMPORT_TICK_INTERVAL", 500*time.Millisecond),
		ImportTickStep:     getEnvAsInt("IMPORT_TICK_STEP", 20),
		Ticker:             getEnv("TICKER", "local"),

		UploadMaxSize: getEnvAsInt("UPLOAD_MAX_SIZE", 10485760), // 10MB

		WorkerConcurrency: getEnvAsInt("WORKER_CONCURRENCY", 4),

		AsynqRedisAddr:     getEnv("ASYNQ_REDIS_ADDR", "127.0.0.1:6379"),
		AsynqRedisPassword: getEnv("ASYNQ_REDIS_PASSWORD", ""),
		AsynqRedisDB:       getEnvAsInt("ASYNQ_REDIS_DB", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the import controller and stores cannot run with.
func (c *Config) Validate() error {
	switch c.DataSource {
	case "sample", "mysql", "sqlite":
	default:
		return fmt.Errorf("invalid DATA_SOURCE %q (want sample, mysql or sqlite)", c.DataSource)
	}
	switch c.SessionStore {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid SESSION_STORE %q (want memory or redis)", c.SessionStore)
	}
	switch c.Ticker {
	case "local", "asynq":
	default:
		return fmt.Errorf("invalid TICKER %q (want local or asynq)", c.Ticker)
	}
	if c.Ticker == "asynq" && c.SessionStore != "redis" {
		return fmt.Errorf("TICKER=asynq requires SESSION_STORE=redis so the worker can see sessions")
	}
	if c.ImportTickInterval <= 0 {
		return fmt.Errorf("IMPORT_TICK_INTERVAL must be positive")
	}
	if c.ImportTickStep <= 0 || c.ImportTickStep > 100 {
		return fmt.Errorf("IMPORT_TICK_STEP must be within 1..100")
	}
	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Local",
		c.DBUsername,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBDatabase,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
