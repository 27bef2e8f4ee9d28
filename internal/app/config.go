package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-payroll/internal/salary"
	"go-payroll/internal/scheduler"
	"go-payroll/internal/shared/connection"
)

const connectRetries = 5

type Config struct {
	Port        string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	RedisAddr   string
	KafkaBroker string
	CORSOrigins []string
	PayrollCron string
	BulkWorkers int

	OutboxCleanupCron string
	OutboxRetention   time.Duration
}

// LoadConfig reads the process environment. godotenv has already merged
// .env into it by the time this runs.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        envOr("PORT", "3000"),
		DBHost:      os.Getenv("DB_HOST"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBPort:      envOr("DB_PORT", "5432"),
		DBSSLMode:   envOr("DB_SSLMODE", "disable"),
		RedisAddr:   envOr("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		PayrollCron: envOr("PAYROLL_CRON", scheduler.DefaultPayrollSpec),
		BulkWorkers: salary.DefaultBulkWorkers,

		OutboxCleanupCron: envOr("OUTBOX_CLEANUP_CRON", scheduler.DefaultOutboxCleanupSpec),
		OutboxRetention:   scheduler.DefaultOutboxRetention,
	}

	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	if raw := os.Getenv("PAYROLL_BULK_WORKERS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("PAYROLL_BULK_WORKERS must be a positive integer, got %q", raw)
		}
		cfg.BulkWorkers = n
	}

	if raw := os.Getenv("OUTBOX_RETENTION"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("OUTBOX_RETENTION must be a positive duration, got %q", raw)
		}
		cfg.OutboxRetention = d
	}

	return cfg, nil
}

// RequireKafka returns the validated broker address.
func (c Config) RequireKafka() (string, error) {
	if c.KafkaBroker == "" {
		return "", fmt.Errorf("KAFKA_BROKER is required")
	}
	return connection.BrokerAddr(c.KafkaBroker)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
