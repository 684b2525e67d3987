package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/audit"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/keylock"
	"go-payroll/internal/tenant"
	tenanterrors "go-payroll/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantResolver supplies the company's timezone.
type TenantResolver interface {
	Resolve(ctx context.Context, companyID string) (tenant.Resolved, error)
}

// EmployeeDirectory confirms an employee belongs to the tenant.
type EmployeeDirectory interface {
	BelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	RecordEvent(ctx context.Context, companyID, employeeID string, req RecordEventRequest) (SessionSnapshot, error)
	GetStatus(ctx context.Context, companyID, actorID, employeeID, date string) (SessionSnapshot, error)
	ListByPeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]Attendance, error)
}

type Option func(*service)

// WithClock replaces time.Now for requests that carry no timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	db        *sql.DB
	repo      Repository
	tenants   TenantResolver
	employees EmployeeDirectory
	locker    keylock.Locker
	policy    Policy
	audit     audit.Emitter
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	tenants TenantResolver,
	employees EmployeeDirectory,
	locker keylock.Locker,
	policy Policy,
	emitter audit.Emitter,
	logger *zap.Logger,
	opts ...Option,
) Service {
	l := zap.L().Named("attendance.service")
	if logger != nil {
		l = logger.Named("attendance.service")
	}
	if emitter == nil {
		emitter = audit.Nop()
	}
	if locker == nil {
		locker = keylock.NewLocal()
	}
	s := &service{
		db:        db,
		repo:      repo,
		tenants:   tenants,
		employees: employees,
		locker:    locker,
		policy:    policy,
		audit:     emitter,
		now:       time.Now,
		logger:    l,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// maxSessionSpan bounds how long an open session can run into the next day.
const maxSessionSpan = 24 * time.Hour

func lockKey(employeeID string, day time.Time) string {
	return "attendance:" + employeeID + ":" + day.Format("2006-01-02")
}

// RecordEvent applies one session action. Mutations for one employee and
// day are serialized by the key lock and the row lock.
func (s *service) RecordEvent(ctx context.Context, companyID, employeeID string, req RecordEventRequest) (SessionSnapshot, error) {
	action, err := ParseAction(strings.ToLower(strings.TrimSpace(req.Action)))
	if err != nil {
		return SessionSnapshot{}, err
	}
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SessionSnapshot{}, tenanterrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return SessionSnapshot{}, employeeerrors.ErrInvalidEmployeeID
	}
	at := s.now()
	if req.Timestamp != nil {
		at = *req.Timestamp
	}

	t, err := s.tenants.Resolve(ctx, companyID)
	if err != nil {
		return SessionSnapshot{}, err
	}
	day := DayOf(at, t.Location)
	if action != ActionClockIn {
		day, err = s.sessionDay(ctx, companyID, employeeID, day, at)
		if err != nil {
			return SessionSnapshot{}, err
		}
	}

	release, err := s.locker.Acquire(ctx, lockKey(employeeID, day))
	if err != nil {
		return SessionSnapshot{}, err
	}
	defer release()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SessionSnapshot{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindForUpdate(ctx, companyID, employeeID, day)
	if err != nil {
		return SessionSnapshot{}, err
	}

	change, err := Apply(rec, Event{
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		Action:     action,
		At:         at,
		Location:   t.Location,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Source:     req.Source,
	}, s.policy)
	if err != nil {
		return SessionSnapshot{}, err
	}

	if change.Created {
		if err := qtx.Create(ctx, change.Record); err != nil {
			return SessionSnapshot{}, mapRepositoryError(err)
		}
	} else if action == ActionClockOut {
		if err := qtx.Update(ctx, change.Record); err != nil {
			return SessionSnapshot{}, err
		}
	}
	if change.Opened != nil {
		if err := qtx.CreateInterval(ctx, change.Opened); err != nil {
			return SessionSnapshot{}, err
		}
	}
	if change.Closed != nil {
		if err := qtx.UpdateInterval(ctx, change.Closed); err != nil {
			return SessionSnapshot{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return SessionSnapshot{}, err
	}

	s.logger.Debug("attendance transition",
		zap.String("employee_id", employeeID),
		zap.String("from", string(change.From)),
		zap.String("to", string(change.To)),
	)
	s.audit.Emit(ctx, audit.Event{
		ActionType:  auditAction(action),
		Module:      audit.ModuleAttendance,
		PerformedBy: employeeID,
		TargetID:    change.Record.ID.String(),
		Description: fmt.Sprintf("%s on %s (%s -> %s)", action, day.Format("2006-01-02"), change.From, change.To),
		TenantID:    companyID,
	})

	return snapshot(employeeID, day, change.Record), nil
}

// sessionDay picks the record an action after clock-in applies to. A shift
// that crosses midnight stays on the day it started while its session is
// open and younger than maxSessionSpan. The transition itself is still
// validated under the row lock.
func (s *service) sessionDay(ctx context.Context, companyID, employeeID string, day, at time.Time) (time.Time, error) {
	rec, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, day)
	if err != nil || rec != nil {
		return day, err
	}

	prev := day.AddDate(0, 0, -1)
	rec, err = s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, prev)
	if err != nil {
		return day, err
	}
	if rec != nil && rec.CheckOut == nil && at.Sub(rec.CheckIn) < maxSessionSpan {
		return prev, nil
	}
	return day, nil
}

func auditAction(a Action) string {
	return "ATTENDANCE_" + strings.ToUpper(strings.ReplaceAll(string(a), "-", "_"))
}

func (s *service) GetStatus(ctx context.Context, companyID, actorID, employeeID, date string) (SessionSnapshot, error) {
	if employeeID == "" {
		employeeID = actorID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return SessionSnapshot{}, employeeerrors.ErrInvalidEmployeeID
	}

	t, err := s.tenants.Resolve(ctx, companyID)
	if err != nil {
		return SessionSnapshot{}, err
	}
	day := DayOf(s.now(), t.Location)
	if date != "" {
		day, err = time.Parse("2006-01-02", date)
		if err != nil {
			return SessionSnapshot{}, attendanceerrors.ErrInvalidDate
		}
	}

	if employeeID != actorID {
		ok, err := s.employees.BelongsToCompany(ctx, companyID, employeeID)
		if err != nil {
			return SessionSnapshot{}, err
		}
		if !ok {
			return SessionSnapshot{}, employeeerrors.ErrEmployeeNotInCompany
		}
	}

	rec, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, day)
	if err != nil {
		return SessionSnapshot{}, err
	}
	return snapshot(employeeID, day, rec), nil
}

func (s *service) ListByPeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]Attendance, error) {
	return s.repo.ListByPeriod(ctx, companyID, employeeID, start, end)
}

// StatusByDay indexes records by calendar date for loss-of-pay input.
func StatusByDay(records []Attendance) map[string]string {
	out := make(map[string]string, len(records))
	for _, r := range records {
		out[r.AttendanceDate.Format("2006-01-02")] = r.Status
	}
	return out
}

func snapshot(employeeID string, day time.Time, a *Attendance) SessionSnapshot {
	snap := SessionSnapshot{
		EmployeeID:     employeeID,
		AttendanceDate: day.Format("2006-01-02"),
		State:          StateOf(a),
		TotalWorkHours: "0.00",
		OvertimeHours:  "0.00",
		Intervals:      []IntervalResponse{},
	}
	if a == nil {
		return snap
	}

	checkIn := a.CheckIn.Format(time.RFC3339)
	snap.CheckIn = &checkIn
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		snap.CheckOut = &v
	}
	snap.IsLate = a.IsLate
	snap.Status = a.Status
	snap.TotalWorkHours = a.TotalWorkHours.StringFixed(2)
	snap.OvertimeHours = a.OvertimeHours.StringFixed(2)
	for _, i := range a.Intervals {
		ir := IntervalResponse{
			Kind:            string(i.Kind),
			StartedAt:       i.StartedAt.Format(time.RFC3339),
			DurationMinutes: i.DurationMinutes,
		}
		if i.EndedAt != nil {
			v := i.EndedAt.Format(time.RFC3339)
			ir.EndedAt = &v
		}
		snap.Intervals = append(snap.Intervals, ir)
	}
	return snap
}
