package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-payroll/internal/events"
	"go-payroll/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeCycleTransitioned renders the payslip documents of a period once its
// cycle reaches PAID. Other transitions are acknowledged and ignored.
func ConsumeCycleTransitioned(ctx context.Context, reader Reader, docs payroll.Documents, logger *zap.Logger) {
	run(ctx, reader, "payroll_cycle", logger, func(ctx context.Context, msg kafkago.Message, log *zap.Logger) error {
		return handleCycleTransitioned(ctx, msg, docs, log)
	})
}

func handleCycleTransitioned(ctx context.Context, msg kafkago.Message, docs payroll.Documents, log *zap.Logger) error {
	var event events.PayrollCycleTransitionedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("%w: %v", errUndecodable, err)
	}
	if event.ToState != string(payroll.StatePaid) {
		return nil
	}

	n, err := docs.RenderPeriod(ctx, event.CompanyID, event.Period)
	if err != nil {
		return err
	}
	log.Info("period payslips rendered",
		zap.String("company_id", event.CompanyID),
		zap.String("period", event.Period),
		zap.Int("count", n),
	)
	return nil
}

// ConsumePayslipRequested renders a single payslip, e.g. after an off-cycle
// payment.
func ConsumePayslipRequested(ctx context.Context, reader Reader, docs payroll.Documents, logger *zap.Logger) {
	run(ctx, reader, "payroll_payslip", logger, func(ctx context.Context, msg kafkago.Message, log *zap.Logger) error {
		return handlePayslipRequested(ctx, msg, docs, log)
	})
}

func handlePayslipRequested(ctx context.Context, msg kafkago.Message, docs payroll.Documents, log *zap.Logger) error {
	var event events.PayrollPayslipRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("%w: %v", errUndecodable, err)
	}

	path, err := docs.RenderPayslip(ctx, event.CompanyID, event.PayslipID)
	if err != nil {
		return err
	}
	log.Info("payslip rendered",
		zap.String("payslip_id", event.PayslipID),
		zap.String("company_id", event.CompanyID),
		zap.String("path", path),
	)
	return nil
}
