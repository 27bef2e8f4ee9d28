package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka/consumer"
	"go-payroll/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const recalculationGroupID = "go-payroll-salary-recalculation"

// RunConsumer keeps saved draft calculations in step with attendance and
// working-days changes.
func RunConsumer(cfg Config) error {
	logger := zap.L().Named("app.consumer")

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

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	salaryService := buildSalaryService(sqlDB, gormDB, redisClient, cfg, zap.L())

	attendanceReader := newReader(kafkaBroker, events.AttendanceMarkedTopic)
	defer attendanceReader.Close()

	workingDaysReader := newReader(kafkaBroker, events.WorkingDaysSetTopic)
	defer workingDaysReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeAttendanceMarked(ctx, attendanceReader, salaryService, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeWorkingDaysSet(ctx, workingDaysReader, salaryService, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	wg.Wait()

	return nil
}

func newReader(broker, topic string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        recalculationGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}
