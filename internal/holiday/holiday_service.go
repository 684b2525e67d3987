package holiday

import (
	"context"
	"time"

	"go-payroll/internal/audit"
	holidayerrors "go-payroll/internal/holiday/errors"
	tenanterrors "go-payroll/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateHolidayRequest) (HolidayResponse, error)
	ListByYear(ctx context.Context, companyID string, year int) ([]HolidayResponse, error)
}

type service struct {
	repo     Repository
	calendar Calendar
	audit    audit.Emitter
	logger   *zap.Logger
}

func NewService(repo Repository, calendar Calendar, emitter audit.Emitter, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	if emitter == nil {
		emitter = audit.Nop()
	}
	return &service{repo: repo, calendar: calendar, audit: emitter, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateHolidayRequest) (HolidayResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return HolidayResponse{}, tenanterrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return HolidayResponse{}, tenanterrors.ErrInvalidActorID
	}
	date, err := time.Parse("2006-01-02", req.HolidayDate)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidDateFormat
	}

	h := &Holiday{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		HolidayDate: date,
		Name:        req.Name,
		CreatedBy:   actorUUID,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return HolidayResponse{}, mapRepositoryError(err)
	}

	s.calendar.Invalidate(ctx, companyID, date.Year())
	s.audit.Emit(ctx, audit.Event{
		ActionType:  "HOLIDAY_CREATED",
		Module:      audit.ModuleHoliday,
		PerformedBy: actorID,
		TargetID:    h.ID.String(),
		Description: req.Name + " on " + req.HolidayDate,
		TenantID:    companyID,
	})

	return mapToResponse(*h), nil
}

func (s *service) ListByYear(ctx context.Context, companyID string, year int) ([]HolidayResponse, error) {
	if year < 1970 || year > 9999 {
		return nil, holidayerrors.ErrInvalidYear
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	holidays, err := s.repo.FindBetween(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}

	res := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		res[i] = mapToResponse(h)
	}
	return res, nil
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		HolidayDate: h.HolidayDate.Format("2006-01-02"),
		Name:        h.Name,
	}
}
