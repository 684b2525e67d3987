package audit

import (
	"context"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/contextutil"
)

// OutboxSink forwards audit events to the external audit store through the
// transactional outbox.
type OutboxSink struct {
	outbox kafka.OutboxRepository
}

func NewOutboxSink(outbox kafka.OutboxRepository) *OutboxSink {
	return &OutboxSink{outbox: outbox}
}

func (s *OutboxSink) Record(ctx context.Context, event Event) error {
	payload := events.AuditRecordedEvent{
		EventType:   events.EventAuditRecorded,
		ActionType:  event.ActionType,
		Module:      event.Module,
		PerformedBy: event.PerformedBy,
		TargetID:    event.TargetID,
		Description: event.Description,
		TenantID:    event.TenantID,
		OccurredAt:  event.OccurredAt,
	}

	// System events may have no target; the module keeps them keyed.
	aggregateID := event.TargetID
	if aggregateID == "" {
		aggregateID = event.Module
	}

	row, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		"audit",
		aggregateID,
		events.EventAuditRecorded,
		events.AuditRecordedTopic,
		payload,
	)
	if err != nil {
		return err
	}
	return s.outbox.Create(ctx, row)
}
