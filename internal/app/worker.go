package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/messaging/kafka/producer"
	"go-payroll/internal/scheduler"
	"go-payroll/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays the outbox to Kafka and runs the periodic jobs.
func RunWorker(cfg Config) error {
	logger := zap.L().Named("app.worker")

	gormDB, err := openDatabase(cfg)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker, err := cfg.RequireKafka()
	if err != nil {
		return err
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, connectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	salaryService := buildSalaryService(sqlDB, gormDB, redisClient, cfg, zap.L())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	jobs := scheduler.New(logger)
	if err := jobs.AddMonthlyPayroll(cfg.PayrollCron, salaryService); err != nil {
		return err
	}
	if err := jobs.AddOutboxCleanup(cfg.OutboxCleanupCron, outboxRepo, cfg.OutboxRetention); err != nil {
		return err
	}
	jobs.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	// tunggu job payroll yang sedang jalan
	<-jobs.Stop().Done()
	cancel()

	return nil
}
