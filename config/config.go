package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment
// variables. Provider credentials are injected from here into each client
// at construction — nothing reads process-wide state later.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SuperJobAPIKey string

	BaseCurrencyCode  string // canonical code salaries are normalized into
	BaseCurrencyLabel string // display label for the base currency

	PagesToFetch   int
	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int

	JSONOutputPath string
	TXTOutputPath  string

	RedisURL           string // optional shared rate cache
	WatchIntervalHours int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "vacancies"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "vacancies123"),
		PostgresDB:       getEnv("POSTGRES_DB", "vacancy_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SuperJobAPIKey: getEnv("SUPERJOB_API_KEY", ""),

		BaseCurrencyCode:  getEnv("BASE_CURRENCY_CODE", "RUB"),
		BaseCurrencyLabel: getEnv("BASE_CURRENCY_LABEL", "рублей"),

		PagesToFetch:   getEnvInt("PAGES_TO_FETCH", 1),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 2),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 250),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		JSONOutputPath: getEnv("JSON_OUTPUT_PATH", "./output/vacancies.jsonl"),
		TXTOutputPath:  getEnv("TXT_OUTPUT_PATH", "./output/vacancies.txt"),

		RedisURL:           getEnv("REDIS_URL", ""),
		WatchIntervalHours: getEnvInt("WATCH_INTERVAL_HOURS", 6),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
