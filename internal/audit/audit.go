// Package audit emits one event per mutating action to external sinks.
// Emission never fails the business operation.
package audit

import (
	"context"
	"time"

	"go-payroll/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	ModuleAttendance   = "ATTENDANCE"
	ModulePayroll      = "PAYROLL"
	ModuleCompensation = "COMPENSATION"
	ModuleTenant       = "TENANT"
	ModuleHoliday      = "HOLIDAY"
	ModuleSystem       = "SYSTEM"
)

type Event struct {
	ActionType  string
	Module      string
	PerformedBy string
	TargetID    string
	Description string
	TenantID    string
	OccurredAt  time.Time
}

// Sink persists or forwards audit events.
type Sink interface {
	Record(ctx context.Context, event Event) error
}

//go:generate mockgen -source=audit.go -destination=mock/audit_mock.go -package=mock
type Emitter interface {
	Emit(ctx context.Context, event Event)
}

type emitter struct {
	sinks  []Sink
	logger *zap.Logger
	now    func() time.Time
}

func NewEmitter(logger *zap.Logger, sinks ...Sink) Emitter {
	if logger == nil {
		logger = zap.L()
	}
	return &emitter{
		sinks:  sinks,
		logger: logger.Named("audit.emitter"),
		now:    time.Now,
	}
}

func (e *emitter) Emit(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = e.now().UTC()
	}

	for _, sink := range e.sinks {
		if err := sink.Record(ctx, event); err != nil {
			contextutil.GetLogger(ctx, e.logger).Warn("audit sink failed",
				zap.String("action_type", event.ActionType),
				zap.String("module", event.Module),
				zap.String("target_id", event.TargetID),
				zap.Error(err),
			)
		}
	}
}

type nop struct{}

func (nop) Emit(context.Context, Event) {}

// Nop discards every event.
func Nop() Emitter { return nop{} }
