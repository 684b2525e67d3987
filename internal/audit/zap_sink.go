package audit

import (
	"context"
	"time"

	"go-payroll/internal/shared/contextutil"

	"go.uber.org/zap"
)

// ZapSink writes audit events to the "audit" logger.
type ZapSink struct {
	logger *zap.Logger
}

func NewZapSink(logger ...*zap.Logger) *ZapSink {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &ZapSink{logger: l.Named("audit")}
}

func (s *ZapSink) Record(ctx context.Context, event Event) error {
	s.logger.Info("audit event",
		zap.String("timestamp", event.OccurredAt.UTC().Format(time.RFC3339)),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("action_type", event.ActionType),
		zap.String("module", event.Module),
		zap.String("performed_by", event.PerformedBy),
		zap.String("target_id", event.TargetID),
		zap.String("tenant_id", event.TenantID),
		zap.String("description", event.Description),
	)
	return nil
}
