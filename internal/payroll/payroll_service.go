package payroll

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/audit"
	"go-payroll/internal/compensation"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/leave"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/shared/keylock"
	"go-payroll/internal/tax"
	tenanterrors "go-payroll/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

type TenantSettings interface {
	IsPayrollFrozen(ctx context.Context, companyID string) (bool, error)
}

type EmployeeRoster interface {
	ListActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error)
}

type ProfileResolver interface {
	ResolveEffective(ctx context.Context, companyID, employeeID string, asOf time.Time) (*compensation.Profile, error)
}

type AttendanceSource interface {
	ListByPeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]attendance.Attendance, error)
}

type LeaveSource interface {
	ApprovedLeaveDays(ctx context.Context, companyID, employeeID string, start, end time.Time) (map[string]struct{}, error)
}

type HolidaySource interface {
	Holidays(ctx context.Context, companyID string, start, end time.Time) (map[string]struct{}, error)
}

// Dependencies wires the orchestrator. Audit, Logger and Now are optional.
type Dependencies struct {
	DB         *sql.DB
	Repo       Repository
	Outbox     kafka.OutboxRepository
	Counter    counter.Repository
	Tenants    TenantSettings
	Employees  EmployeeRoster
	Profiles   ProfileResolver
	Attendance AttendanceSource
	Leaves     LeaveSource
	Holidays   HolidaySource
	Calculator *tax.Calculator
	Locker     keylock.Locker
	Documents  Documents
	Audit      audit.Emitter
	Workers    int
	Logger     *zap.Logger
	Now        func() time.Time
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Calculate(ctx context.Context, companyID, actorID, period string) (BatchSummary, error)
	Finalize(ctx context.Context, companyID, actorID, period string) (CycleResponse, error)
	Disburse(ctx context.Context, companyID, actorID, period string) (CycleResponse, error)
	Lock(ctx context.Context, companyID, actorID, period string) (CycleResponse, error)
	TransitionCycle(ctx context.Context, companyID, actorID, period, target string) (CycleResponse, error)
	GetCycleState(ctx context.Context, companyID, period string) (CycleResponse, error)
	ListPayslips(ctx context.Context, companyID, period, status string) ([]PayslipResponse, error)
	GetPayslip(ctx context.Context, companyID, id string) (PayslipResponse, error)
	MarkPayslipPaid(ctx context.Context, companyID, actorID, id string) (PayslipResponse, error)
	DownloadPayslip(ctx context.Context, companyID, id string) (Document, error)
}

type service struct {
	Dependencies
	logger *zap.Logger
}

func NewService(deps Dependencies) Service {
	l := zap.L().Named("payroll.service")
	if deps.Logger != nil {
		l = deps.Logger.Named("payroll.service")
	}
	if deps.Audit == nil {
		deps.Audit = audit.Nop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Workers <= 0 {
		deps.Workers = defaultWorkers
	}
	if deps.Locker == nil {
		deps.Locker = keylock.NewLocal()
	}
	return &service{Dependencies: deps, logger: l}
}

func cycleLockKey(companyID, period string) string {
	return fmt.Sprintf("payroll:%s:%s", companyID, period)
}

type cycleRequest struct {
	companyID uuid.UUID
	actorID   uuid.UUID
	period    Period
}

func parseCycleRequest(companyID, actorID, period string) (cycleRequest, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return cycleRequest{}, tenanterrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return cycleRequest{}, tenanterrors.ErrInvalidActorID
	}
	p, err := ParsePeriod(period)
	if err != nil {
		return cycleRequest{}, err
	}
	return cycleRequest{companyID: companyUUID, actorID: actorUUID, period: p}, nil
}

func (s *service) ensureNotFrozen(ctx context.Context, companyID string) error {
	frozen, err := s.Tenants.IsPayrollFrozen(ctx, companyID)
	if err != nil {
		return err
	}
	if frozen {
		return payrollerrors.ErrPayrollFrozen
	}
	return nil
}

func (s *service) currentState(ctx context.Context, companyID, period string) (*Cycle, CycleState, error) {
	cycle, err := s.Repo.FindCycle(ctx, companyID, period)
	if err != nil {
		return nil, "", err
	}
	if cycle == nil {
		return nil, StateDraft, nil
	}
	return cycle, cycle.State, nil
}

// Calculate produces or refreshes the PENDING payslip of every active
// employee. Failures of one employee are reported in the summary and never
// stop the others; a cancelled ctx leaves the cycle where it was.
func (s *service) Calculate(ctx context.Context, companyID, actorID, period string) (BatchSummary, error) {
	req, err := parseCycleRequest(companyID, actorID, period)
	if err != nil {
		return BatchSummary{}, err
	}
	if err := s.ensureNotFrozen(ctx, companyID); err != nil {
		return BatchSummary{}, err
	}

	release, err := s.Locker.Acquire(ctx, cycleLockKey(companyID, req.period.String()))
	if err != nil {
		return BatchSummary{}, err
	}
	defer release()

	_, current, err := s.currentState(ctx, companyID, req.period.String())
	if err != nil {
		return BatchSummary{}, err
	}
	next, err := CheckTransition(current, OpCalculate, 0)
	if err != nil {
		return BatchSummary{}, err
	}
	if current == StateDraft {
		// Payslip writes lock this row, so it has to exist before the fan-out.
		if err := s.Repo.EnsureCycle(ctx, newDraftCycle(req)); err != nil {
			return BatchSummary{}, err
		}
	}

	holidays, err := s.Holidays.Holidays(ctx, companyID, req.period.Start(), req.period.End())
	if err != nil {
		return BatchSummary{}, err
	}
	roster, err := s.Employees.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return BatchSummary{}, err
	}

	results := make([]EmployeeResult, len(roster))
	var g errgroup.Group
	g.SetLimit(s.Workers)
	for i := range roster {
		if ctx.Err() != nil {
			break
		}
		emp := roster[i]
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			results[i] = s.calculateEmployee(ctx, req, emp, holidays)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		s.logger.Warn("payroll calculation cancelled",
			zap.String("company_id", companyID),
			zap.String("period", req.period.String()),
			zap.Error(err),
		)
		return BatchSummary{}, err
	}

	summary := BatchSummary{
		Period:  req.period.String(),
		State:   string(next),
		Details: results,
	}
	for _, r := range results {
		switch r.Status {
		case ResultGenerated:
			summary.GeneratedCount++
		case ResultSkipped:
			summary.SkippedCount++
		default:
			summary.ErrorCount++
		}
	}

	now := s.Now().UTC()
	_, err = s.advance(ctx, req, current, OpCalculate, map[string]any{
		"last_generated_count": summary.GeneratedCount,
		"last_skipped_count":   summary.SkippedCount,
		"last_error_count":     summary.ErrorCount,
		"calculated_at":        now,
	}, nil)
	if err != nil {
		return BatchSummary{}, err
	}

	s.logger.Info("payroll calculated",
		zap.String("company_id", companyID),
		zap.String("period", req.period.String()),
		zap.Int("generated", summary.GeneratedCount),
		zap.Int("skipped", summary.SkippedCount),
		zap.Int("errors", summary.ErrorCount),
	)
	return summary, nil
}

func (s *service) calculateEmployee(ctx context.Context, req cycleRequest, emp employee.Employee, holidays map[string]struct{}) EmployeeResult {
	result := EmployeeResult{
		EmployeeID:   emp.ID.String(),
		EmployeeName: emp.FullName,
	}
	fail := func(err error) EmployeeResult {
		s.logger.Warn("payslip calculation failed",
			zap.String("employee_id", result.EmployeeID),
			zap.String("period", req.period.String()),
			zap.Error(err),
		)
		result.Status = ResultError
		result.Reason = err.Error()
		return result
	}

	companyID := req.companyID.String()
	employeeID := emp.ID.String()
	period := req.period.String()

	existing, err := s.Repo.FindPayslip(ctx, companyID, employeeID, period)
	if err != nil {
		return fail(err)
	}
	if existing != nil && existing.Status == PayslipPaid {
		result.Status = ResultSkipped
		result.PayslipID = existing.ID.String()
		result.Reason = "payslip already paid"
		return result
	}

	profile, err := s.Profiles.ResolveEffective(ctx, companyID, employeeID, req.period.End())
	if err != nil {
		return fail(err)
	}

	start, end := req.period.Start(), req.period.End()
	records, err := s.Attendance.ListByPeriod(ctx, companyID, employeeID, start, end)
	if err != nil {
		return fail(err)
	}
	leaves, err := s.Leaves.ApprovedLeaveDays(ctx, companyID, employeeID, start, end)
	if err != nil {
		return fail(err)
	}

	presence := make(map[string]string, len(records))
	for _, r := range records {
		presence[leave.DateKey(r.AttendanceDate)] = string(r.Status)
	}
	lop, err := leave.ComputeLOP(leave.LOPInput{
		PeriodStart:   start,
		PeriodEnd:     end,
		Attendance:    presence,
		ApprovedLeave: leaves,
		Holidays:      holidays,
	})
	if err != nil {
		return fail(err)
	}

	breakdown, err := compensation.ComputePayslip(profile.Input(), lop.LOPDays, lop.WorkingDays, s.Calculator)
	if err != nil {
		return fail(err)
	}

	payslip := &Payslip{
		ID:               uuid.New(),
		CompanyID:        req.companyID,
		EmployeeID:       emp.ID,
		Period:           period,
		ProfileID:        profile.ID,
		EmployeeName:     emp.FullName,
		EmployeeNumber:   emp.EmployeeNumber,
		MonthlyGross:     breakdown.MonthlyGross,
		Basic:            breakdown.Basic,
		HRA:              breakdown.HRA,
		SpecialAllowance: breakdown.SpecialAllowance,
		GrossEarnings:    breakdown.GrossEarnings,
		PF:               breakdown.PF,
		PT:               breakdown.PT,
		TaxableIncome:    breakdown.TaxableIncome,
		AnnualTax:        breakdown.AnnualTax,
		MonthlyTax:       breakdown.MonthlyTax,
		NetSalary:        breakdown.NetSalary,
		LOPDays:          lop.LOPDays,
		PaidLeaveDays:    lop.PaidLeaveDays,
		WorkingDays:      lop.WorkingDays,
		Regime:           breakdown.Regime,
		TaxTableVersion:  s.Calculator.TableVersion(),
		Status:           PayslipPending,
		CalculatedAt:     s.Now().UTC(),
	}
	if existing != nil {
		payslip.ID = existing.ID
		payslip.PayslipNumber = existing.PayslipNumber
	} else {
		seq, err := s.Counter.Next(ctx, companyID, counter.PayslipSeries(req.period.String()))
		if err != nil {
			return fail(err)
		}
		payslip.PayslipNumber = formatPayslipNumber(req.period, seq)
	}

	written, err := s.Repo.UpsertPayslip(ctx, payslip)
	if err != nil {
		return fail(err)
	}
	if !written {
		result.Status = ResultSkipped
		result.Reason = "payslip already paid"
		return result
	}

	net := breakdown.NetSalary
	result.Status = ResultGenerated
	result.PayslipID = payslip.ID.String()
	result.NetSalary = &net
	return result
}

func newDraftCycle(req cycleRequest) *Cycle {
	return &Cycle{
		ID:        uuid.New(),
		CompanyID: req.companyID,
		Period:    req.period.String(),
		State:     StateDraft,
	}
}

func formatPayslipNumber(p Period, seq int64) string {
	return fmt.Sprintf("PS-%04d%02d-%06d", p.Year, int(p.Month), seq)
}

func (s *service) Finalize(ctx context.Context, companyID, actorID, period string) (CycleResponse, error) {
	return s.transition(ctx, companyID, actorID, period, OpFinalize)
}

func (s *service) Disburse(ctx context.Context, companyID, actorID, period string) (CycleResponse, error) {
	return s.transition(ctx, companyID, actorID, period, OpDisburse)
}

func (s *service) Lock(ctx context.Context, companyID, actorID, period string) (CycleResponse, error) {
	return s.transition(ctx, companyID, actorID, period, OpLock)
}

// TransitionCycle moves the cycle to target through the one operation that
// reaches it.
func (s *service) TransitionCycle(ctx context.Context, companyID, actorID, period, target string) (CycleResponse, error) {
	if _, err := parseCycleRequest(companyID, actorID, period); err != nil {
		return CycleResponse{}, err
	}
	targetState := CycleState(strings.ToUpper(strings.TrimSpace(target)))
	if targetState == StateDraft {
		return CycleResponse{}, payrollerrors.ErrInvalidTransition
	}
	op, err := OperationFor(targetState)
	if err != nil {
		return CycleResponse{}, err
	}

	if op == OpCalculate {
		if _, err := s.Calculate(ctx, companyID, actorID, period); err != nil {
			return CycleResponse{}, err
		}
		return s.GetCycleState(ctx, companyID, period)
	}
	return s.transition(ctx, companyID, actorID, period, op)
}

func (s *service) transition(ctx context.Context, companyID, actorID, period string, op Operation) (CycleResponse, error) {
	req, err := parseCycleRequest(companyID, actorID, period)
	if err != nil {
		return CycleResponse{}, err
	}
	if op == OpFinalize {
		if err := s.ensureNotFrozen(ctx, companyID); err != nil {
			return CycleResponse{}, err
		}
	}

	release, err := s.Locker.Acquire(ctx, cycleLockKey(companyID, req.period.String()))
	if err != nil {
		return CycleResponse{}, err
	}
	defer release()

	cycle, current, err := s.currentState(ctx, companyID, req.period.String())
	if err != nil {
		return CycleResponse{}, err
	}
	errorCount := 0
	if cycle != nil {
		errorCount = cycle.LastErrorCount
	}
	if _, err := CheckTransition(current, op, errorCount); err != nil {
		return CycleResponse{}, err
	}

	now := s.Now().UTC()
	fields := map[string]any{}
	var extra func(ctx context.Context, qtx Repository) error
	switch op {
	case OpFinalize:
		fields["finalized_at"] = now
	case OpDisburse:
		fields["paid_at"] = now
		extra = func(ctx context.Context, qtx Repository) error {
			paid, err := qtx.MarkPeriodPaid(ctx, companyID, req.period.String(), now)
			if err != nil {
				return err
			}
			s.logger.Info("payslips disbursed",
				zap.String("company_id", companyID),
				zap.String("period", req.period.String()),
				zap.Int64("count", paid),
			)
			return nil
		}
	case OpLock:
		fields["locked_at"] = now
	}

	updated, err := s.advance(ctx, req, current, op, fields, extra)
	if err != nil {
		return CycleResponse{}, err
	}
	return mapToCycleResponse(*updated), nil
}

// advance persists one state change together with its outbox event. The
// update is conditional on the state read under the cycle lock, so a writer
// that lost the lock cannot skip a step. Payslip writes hold a share lock on
// the same row and recheck the state, so a calculation that overruns its lock
// cannot rewrite payslips of a cycle that has since been finalized.
func (s *service) advance(
	ctx context.Context,
	req cycleRequest,
	from CycleState,
	op Operation,
	fields map[string]any,
	extra func(ctx context.Context, qtx Repository) error,
) (*Cycle, error) {
	to, err := CheckTransition(from, op, 0)
	if err != nil {
		return nil, err
	}
	companyID := req.companyID.String()
	period := req.period.String()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.Repo.WithTx(tx)

	if from == StateDraft {
		if err := qtx.EnsureCycle(ctx, newDraftCycle(req)); err != nil {
			return nil, err
		}
	}

	fields["updated_by"] = req.actorID
	ok, err := qtx.UpdateCycleState(ctx, companyID, period, []CycleState{from}, to, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, payrollerrors.ErrInvalidTransition
	}

	if extra != nil {
		if err := extra(ctx, qtx); err != nil {
			return nil, err
		}
	}

	cycle, err := qtx.FindCycle(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, payrollerrors.ErrInvalidTransition
	}

	actorID := req.actorID.String()
	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		"payroll_cycle",
		cycle.ID.String(),
		events.EventPayrollCycleTransitioned,
		events.PayrollCycleTransitionedTopic,
		events.PayrollCycleTransitionedEvent{
			EventType:   events.EventPayrollCycleTransitioned,
			CycleID:     cycle.ID.String(),
			CompanyID:   companyID,
			Period:      period,
			FromState:   string(from),
			ToState:     string(to),
			PerformedBy: actorID,
			OccurredAt:  s.Now().UTC(),
		},
	)
	if err != nil {
		return nil, err
	}
	if err := s.Outbox.WithTx(tx).Create(ctx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.Audit.Emit(ctx, audit.Event{
		ActionType:  "PAYROLL_CYCLE_" + string(to),
		Module:      audit.ModulePayroll,
		PerformedBy: actorID,
		TargetID:    cycle.ID.String(),
		Description: fmt.Sprintf("payroll %s moved from %s to %s", period, from, to),
		TenantID:    companyID,
	})
	return cycle, nil
}

func (s *service) GetCycleState(ctx context.Context, companyID, period string) (CycleResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return CycleResponse{}, tenanterrors.ErrInvalidCompanyID
	}
	p, err := ParsePeriod(period)
	if err != nil {
		return CycleResponse{}, err
	}

	cycle, err := s.Repo.FindCycle(ctx, companyID, p.String())
	if err != nil {
		return CycleResponse{}, err
	}
	if cycle == nil {
		return CycleResponse{Period: p.String(), State: string(StateDraft)}, nil
	}
	return mapToCycleResponse(*cycle), nil
}

func (s *service) ListPayslips(ctx context.Context, companyID, period, status string) ([]PayslipResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, tenanterrors.ErrInvalidCompanyID
	}
	p, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	payslips, err := s.Repo.ListPayslips(ctx, companyID, p.String())
	if err != nil {
		return nil, err
	}

	resp := make([]PayslipResponse, 0, len(payslips))
	for _, ps := range payslips {
		if status != "" && ps.Status != status {
			continue
		}
		resp = append(resp, mapToPayslipResponse(ps))
	}
	return resp, nil
}

func (s *service) GetPayslip(ctx context.Context, companyID, id string) (PayslipResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayslipResponse{}, payrollerrors.ErrInvalidPayslipID
	}
	payslip, err := s.Repo.FindPayslipByID(ctx, companyID, id)
	if err != nil {
		return PayslipResponse{}, mapRepositoryError(err)
	}
	return mapToPayslipResponse(*payslip), nil
}

// MarkPayslipPaid settles one payslip ahead of the cycle. It is only allowed
// while the cycle is still open for calculation.
func (s *service) MarkPayslipPaid(ctx context.Context, companyID, actorID, id string) (PayslipResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return PayslipResponse{}, tenanterrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return PayslipResponse{}, tenanterrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return PayslipResponse{}, payrollerrors.ErrInvalidPayslipID
	}

	payslip, err := s.Repo.FindPayslipByID(ctx, companyID, id)
	if err != nil {
		return PayslipResponse{}, mapRepositoryError(err)
	}

	release, err := s.Locker.Acquire(ctx, cycleLockKey(companyID, payslip.Period))
	if err != nil {
		return PayslipResponse{}, err
	}
	defer release()

	_, current, err := s.currentState(ctx, companyID, payslip.Period)
	if err != nil {
		return PayslipResponse{}, err
	}
	switch current {
	case StateDraft, StateCalculated:
	case StateLocked:
		return PayslipResponse{}, payrollerrors.ErrCycleLocked
	default:
		return PayslipResponse{}, payrollerrors.ErrInvalidTransition
	}
	if payslip.Status == PayslipPaid {
		return PayslipResponse{}, payrollerrors.ErrPayslipAlreadyPaid
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	now := s.Now().UTC()
	ok, err := s.Repo.WithTx(tx).MarkPayslipPaid(ctx, companyID, id, now)
	if err != nil {
		return PayslipResponse{}, err
	}
	if !ok {
		return PayslipResponse{}, payrollerrors.ErrPayslipAlreadyPaid
	}

	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		"payslip",
		id,
		events.EventPayslipRenderRequested,
		events.PayrollPayslipRequestedTopic,
		events.PayrollPayslipRequestedEvent{
			EventType:   events.EventPayslipRenderRequested,
			PayslipID:   id,
			CompanyID:   companyID,
			Period:      payslip.Period,
			RequestedBy: actorID,
			OccurredAt:  now,
		},
	)
	if err != nil {
		return PayslipResponse{}, err
	}
	if err := s.Outbox.WithTx(tx).Create(ctx, event); err != nil {
		return PayslipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	s.Audit.Emit(ctx, audit.Event{
		ActionType:  "PAYSLIP_MARKED_PAID",
		Module:      audit.ModulePayroll,
		PerformedBy: actorID,
		TargetID:    id,
		Description: fmt.Sprintf("payslip %s for %s paid off-cycle", payslip.PayslipNumber, payslip.Period),
		TenantID:    companyID,
	})

	payslip.Status = PayslipPaid
	payslip.PaidAt = &now
	return mapToPayslipResponse(*payslip), nil
}

func (s *service) DownloadPayslip(ctx context.Context, companyID, id string) (Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Document{}, payrollerrors.ErrInvalidPayslipID
	}
	return s.Documents.Open(ctx, companyID, id)
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}

func mapToCycleResponse(c Cycle) CycleResponse {
	return CycleResponse{
		Period:             c.Period,
		State:              string(c.State),
		LastGeneratedCount: c.LastGeneratedCount,
		LastSkippedCount:   c.LastSkippedCount,
		LastErrorCount:     c.LastErrorCount,
		CalculatedAt:       formatTime(c.CalculatedAt),
		FinalizedAt:        formatTime(c.FinalizedAt),
		PaidAt:             formatTime(c.PaidAt),
		LockedAt:           formatTime(c.LockedAt),
	}
}

func mapToPayslipResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:               p.ID.String(),
		PayslipNumber:    p.PayslipNumber,
		EmployeeID:       p.EmployeeID.String(),
		EmployeeName:     p.EmployeeName,
		EmployeeNumber:   p.EmployeeNumber,
		Period:           p.Period,
		ProfileID:        p.ProfileID.String(),
		MonthlyGross:     p.MonthlyGross,
		Basic:            p.Basic,
		HRA:              p.HRA,
		SpecialAllowance: p.SpecialAllowance,
		GrossEarnings:    p.GrossEarnings,
		PF:               p.PF,
		PT:               p.PT,
		TaxableIncome:    p.TaxableIncome,
		AnnualTax:        p.AnnualTax,
		MonthlyTax:       p.MonthlyTax,
		NetSalary:        p.NetSalary,
		LOPDays:          p.LOPDays.StringFixed(1),
		PaidLeaveDays:    p.PaidLeaveDays.StringFixed(1),
		WorkingDays:      p.WorkingDays,
		Regime:           string(p.Regime),
		TaxTableVersion:  p.TaxTableVersion,
		Status:           p.Status,
		HasDocument:      p.PDFPath != nil && *p.PDFPath != "",
		CalculatedAt:     p.CalculatedAt.UTC().Format(time.RFC3339),
		PaidAt:           formatTime(p.PaidAt),
	}
}
