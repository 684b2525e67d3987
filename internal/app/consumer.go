package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go-payroll/internal/config"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka/consumer"
	"go-payroll/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer renders payslip documents from payroll events.
func RunConsumer(cfg config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	in, err := connect(cfg, logger, false)
	if err != nil {
		return err
	}
	defer in.Close()

	documents := payroll.NewDocuments(
		payroll.NewRepository(in.gormDB),
		payroll.NewFileStore(cfg.Payroll.PayslipDir),
		logger,
	)

	newReader := func(topic string) *kafkago.Reader {
		return kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{cfg.Kafka.Broker},
			Topic:          topic,
			GroupID:        cfg.Kafka.GroupID,
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})
	}
	cycleReader := newReader(events.PayrollCycleTransitionedTopic)
	defer cycleReader.Close()
	payslipReader := newReader(events.PayrollPayslipRequestedTopic)
	defer payslipReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeCycleTransitioned(ctx, cycleReader, documents, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumePayslipRequested(ctx, payslipReader, documents, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("consumer shutting down")
	cancel()
	wg.Wait()

	return nil
}
