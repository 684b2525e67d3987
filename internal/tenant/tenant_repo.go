package tenant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=tenant_repo.go -destination=mock/tenant_repo_mock.go -package=mock
type Repository interface {
	// FindSettings returns nil when the company has no settings row yet.
	FindSettings(ctx context.Context, companyID string) (*Settings, error)
	UpsertPayrollFrozen(ctx context.Context, companyID uuid.UUID, frozen bool, updatedBy uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindSettings(ctx context.Context, companyID string) (*Settings, error) {
	var s Settings
	err := r.db.WithContext(ctx).
		Scopes(Scope(companyID)).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) UpsertPayrollFrozen(ctx context.Context, companyID uuid.UUID, frozen bool, updatedBy uuid.UUID) error {
	now := time.Now()
	row := Settings{
		CompanyID:     companyID,
		PayrollFrozen: frozen,
		WeeklyOffDays: DefaultWeeklyOffDays,
		UpdatedBy:     &updatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payroll_frozen", "updated_by", "updated_at"}),
		}).
		Create(&row).Error
}
