package app

import (
	"testing"
	"time"

	"go-payroll/internal/salary"
	"go-payroll/internal/scheduler"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PORT", "DB_SSLMODE", "REDIS_ADDR", "KAFKA_BROKER", "CORS_ALLOWED_ORIGINS", "PAYROLL_CRON", "PAYROLL_BULK_WORKERS", "OUTBOX_CLEANUP_CRON", "OUTBOX_RETENTION"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, scheduler.DefaultPayrollSpec, cfg.PayrollCron)
	assert.Equal(t, salary.DefaultBulkWorkers, cfg.BulkWorkers)
	assert.Empty(t, cfg.CORSOrigins)
	assert.Equal(t, scheduler.DefaultOutboxRetention, cfg.OutboxRetention)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PAYROLL_CRON", "0 3 1 * *")
	t.Setenv("PAYROLL_BULK_WORKERS", "8")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://payroll.example.com,")
	t.Setenv("OUTBOX_RETENTION", "72h")

	cfg, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, "0 3 1 * *", cfg.PayrollCron)
	assert.Equal(t, 8, cfg.BulkWorkers)
	assert.Equal(t, []string{"http://localhost:5173", "https://payroll.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 72*time.Hour, cfg.OutboxRetention)
}

func TestLoadConfig_InvalidWorkers(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-2"} {
		t.Setenv("PAYROLL_BULK_WORKERS", raw)
		_, err := LoadConfig()
		assert.Error(t, err, raw)
	}
}

func TestRequireKafka(t *testing.T) {
	_, err := Config{}.RequireKafka()
	assert.Error(t, err)

	addr, err := Config{KafkaBroker: "localhost:9092"}.RequireKafka()
	assert.NoError(t, err)
	assert.Equal(t, "localhost:9092", addr)

	_, err = Config{KafkaBroker: "localhost"}.RequireKafka()
	assert.Error(t, err)
}

func TestCORSConfig(t *testing.T) {
	open := corsConfig(nil)
	assert.True(t, open.AllowAllOrigins)
	assert.NoError(t, open.Validate())

	restricted := corsConfig([]string{"http://localhost:5173"})
	assert.False(t, restricted.AllowAllOrigins)
	assert.True(t, restricted.AllowCredentials)
	assert.Contains(t, restricted.AllowHeaders, "Idempotency-Key")
	assert.NoError(t, restricted.Validate())
}
