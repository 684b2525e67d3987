package compensation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-payroll/internal/audit"
	compensationerrors "go-payroll/internal/compensation/errors"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/tax"
	tenanterrors "go-payroll/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeDirectory is the slice of the employee roster this package needs.
type EmployeeDirectory interface {
	BelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
}

//go:generate mockgen -source=compensation_service.go -destination=mock/compensation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateProfileRequest) (ProfileResponse, error)
	List(ctx context.Context, companyID string) ([]ProfileResponse, error)
	History(ctx context.Context, companyID, employeeID string) ([]ProfileResponse, error)
	Delete(ctx context.Context, companyID, actorID, id string) error
	ResolveEffective(ctx context.Context, companyID, employeeID string, asOf time.Time) (*Profile, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeDirectory
	audit     audit.Emitter
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees EmployeeDirectory, emitter audit.Emitter, logger ...*zap.Logger) Service {
	l := zap.L().Named("compensation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("compensation.service")
	}
	if emitter == nil {
		emitter = audit.Nop()
	}
	return &service{db: db, repo: repo, employees: employees, audit: emitter, logger: l}
}

// Create writes a new profile version. Earlier versions stay untouched so
// payslips that reference them keep their inputs.
func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateProfileRequest) (ProfileResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ProfileResponse{}, tenanterrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ProfileResponse{}, tenanterrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return ProfileResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return ProfileResponse{}, compensationerrors.ErrInvalidEffectiveDate
	}
	regime := tax.Regime(req.Regime)
	if !regime.Valid() {
		return ProfileResponse{}, tax.ErrUnknownRegime
	}
	if req.AnnualCTC == nil || *req.AnnualCTC < 0 {
		return ProfileResponse{}, ErrNegativeCTC
	}
	for _, amount := range req.DeclaredDeductions {
		if amount < 0 {
			return ProfileResponse{}, compensationerrors.ErrInvalidDeduction
		}
	}
	pfEnabled := true
	if req.PFEnabled != nil {
		pfEnabled = *req.PFEnabled
	}

	ok, err := s.employees.BelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return ProfileResponse{}, err
	}
	if !ok {
		return ProfileResponse{}, employeeerrors.ErrEmployeeNotInCompany
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	profile := &Profile{
		ID:                 uuid.New(),
		CompanyID:          companyUUID,
		EmployeeID:         employeeUUID,
		AnnualCTC:          *req.AnnualCTC,
		IsMetro:            req.IsMetro,
		Regime:             regime,
		PFEnabled:          pfEnabled,
		DeclaredDeductions: Deductions(req.DeclaredDeductions),
		EffectiveDate:      effectiveDate,
		CreatedBy:          actorUUID,
	}
	if err := qtx.Create(ctx, profile); err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ProfileResponse{}, err
	}

	s.audit.Emit(ctx, audit.Event{
		ActionType:  "COMPENSATION_PROFILE_CREATED",
		Module:      audit.ModuleCompensation,
		PerformedBy: actorID,
		TargetID:    profile.ID.String(),
		Description: fmt.Sprintf("profile for employee %s effective %s", req.EmployeeID, req.EffectiveDate),
		TenantID:    companyID,
	})

	return mapToResponse(*profile), nil
}

func (s *service) List(ctx context.Context, companyID string) ([]ProfileResponse, error) {
	profiles, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(profiles), nil
}

func (s *service) History(ctx context.Context, companyID, employeeID string) ([]ProfileResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	profiles, err := s.repo.ListByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(profiles), nil
}

func (s *service) Delete(ctx context.Context, companyID, actorID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return compensationerrors.ErrProfileNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}
	referenced, err := qtx.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return compensationerrors.ErrProfileReferenced
	}
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.audit.Emit(ctx, audit.Event{
		ActionType:  "COMPENSATION_PROFILE_DELETED",
		Module:      audit.ModuleCompensation,
		PerformedBy: actorID,
		TargetID:    id,
		TenantID:    companyID,
	})
	return nil
}

func (s *service) ResolveEffective(ctx context.Context, companyID, employeeID string, asOf time.Time) (*Profile, error) {
	profile, err := s.repo.FindEffective(ctx, companyID, employeeID, asOf)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, compensationerrors.ErrNoEffectiveProfile
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func mapToResponse(p Profile) ProfileResponse {
	deductions := map[string]int64(p.DeclaredDeductions)
	if deductions == nil {
		deductions = map[string]int64{}
	}
	return ProfileResponse{
		ID:                 p.ID.String(),
		EmployeeID:         p.EmployeeID.String(),
		EmployeeName:       p.EmployeeName,
		AnnualCTC:          p.AnnualCTC,
		IsMetro:            p.IsMetro,
		Regime:             string(p.Regime),
		PFEnabled:          p.PFEnabled,
		DeclaredDeductions: deductions,
		EffectiveDate:      p.EffectiveDate.Format("2006-01-02"),
	}
}

func mapToListResponse(profiles []Profile) []ProfileResponse {
	res := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		res[i] = mapToResponse(p)
	}
	return res
}
