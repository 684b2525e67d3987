package tenant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-payroll/internal/audit"
	tenanterrors "go-payroll/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultWeeklyOffDays = "SAT,SUN"

var weekdayCodes = map[string]time.Weekday{
	"SUN": time.Sunday,
	"MON": time.Monday,
	"TUE": time.Tuesday,
	"WED": time.Wednesday,
	"THU": time.Thursday,
	"FRI": time.Friday,
	"SAT": time.Saturday,
}

// Resolved is the effective configuration of a tenant after defaults.
type Resolved struct {
	CompanyID     string
	PayrollFrozen bool
	Location      *time.Location
	WeeklyOffs    []time.Weekday
}

//go:generate mockgen -source=tenant_service.go -destination=mock/tenant_service_mock.go -package=mock
type Service interface {
	Resolve(ctx context.Context, companyID string) (Resolved, error)
	IsPayrollFrozen(ctx context.Context, companyID string) (bool, error)
	SetPayrollFrozen(ctx context.Context, companyID, actorID string, req PayrollFreezeRequest) (SettingsResponse, error)
}

type service struct {
	repo        Repository
	defaultZone *time.Location
	audit       audit.Emitter
	logger      *zap.Logger
}

func NewService(repo Repository, defaultZone *time.Location, emitter audit.Emitter, logger ...*zap.Logger) Service {
	l := zap.L().Named("tenant.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tenant.service")
	}
	if defaultZone == nil {
		defaultZone = time.UTC
	}
	if emitter == nil {
		emitter = audit.Nop()
	}
	return &service{repo: repo, defaultZone: defaultZone, audit: emitter, logger: l}
}

func (s *service) Resolve(ctx context.Context, companyID string) (Resolved, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return Resolved{}, tenanterrors.ErrInvalidCompanyID
	}

	res := Resolved{CompanyID: companyID, Location: s.defaultZone}
	settings, err := s.repo.FindSettings(ctx, companyID)
	if err != nil {
		return Resolved{}, err
	}

	offs := DefaultWeeklyOffDays
	if settings != nil {
		res.PayrollFrozen = settings.PayrollFrozen
		if settings.Timezone != "" {
			loc, err := time.LoadLocation(settings.Timezone)
			if err != nil {
				s.logger.Warn("invalid tenant timezone, using default",
					zap.String("company_id", companyID),
					zap.String("timezone", settings.Timezone),
				)
			} else {
				res.Location = loc
			}
		}
		offs = settings.WeeklyOffDays
	}

	res.WeeklyOffs, err = ParseWeeklyOffs(offs)
	if err != nil {
		return Resolved{}, err
	}
	return res, nil
}

func (s *service) IsPayrollFrozen(ctx context.Context, companyID string) (bool, error) {
	res, err := s.Resolve(ctx, companyID)
	if err != nil {
		return false, err
	}
	return res.PayrollFrozen, nil
}

func (s *service) SetPayrollFrozen(ctx context.Context, companyID, actorID string, req PayrollFreezeRequest) (SettingsResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SettingsResponse{}, tenanterrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SettingsResponse{}, tenanterrors.ErrInvalidActorID
	}

	frozen := *req.Frozen
	if err := s.repo.UpsertPayrollFrozen(ctx, companyUUID, frozen, actorUUID); err != nil {
		return SettingsResponse{}, err
	}

	action := "PAYROLL_UNFROZEN"
	if frozen {
		action = "PAYROLL_FROZEN"
	}
	s.audit.Emit(ctx, audit.Event{
		ActionType:  action,
		Module:      audit.ModuleTenant,
		PerformedBy: actorID,
		TargetID:    companyID,
		Description: fmt.Sprintf("payroll frozen set to %t", frozen),
		TenantID:    companyID,
	})

	res, err := s.Resolve(ctx, companyID)
	if err != nil {
		return SettingsResponse{}, err
	}
	return mapToResponse(res), nil
}

// ParseWeeklyOffs reads a comma separated list such as "SAT,SUN".
func ParseWeeklyOffs(csv string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, part := range strings.Split(csv, ",") {
		code := strings.ToUpper(strings.TrimSpace(part))
		if code == "" {
			continue
		}
		d, ok := weekdayCodes[code]
		if !ok {
			return nil, fmt.Errorf("%w: %q", tenanterrors.ErrInvalidWeeklyOff, code)
		}
		days = append(days, d)
	}
	return days, nil
}

func mapToResponse(r Resolved) SettingsResponse {
	offs := make([]string, 0, len(r.WeeklyOffs))
	for _, d := range r.WeeklyOffs {
		offs = append(offs, strings.ToUpper(d.String()[:3]))
	}
	return SettingsResponse{
		CompanyID:     r.CompanyID,
		PayrollFrozen: r.PayrollFrozen,
		Timezone:      r.Location.String(),
		WeeklyOffDays: offs,
	}
}
