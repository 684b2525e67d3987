package compensation

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/shared/dbtx"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=compensation_repo.go -destination=mock/compensation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, profile *Profile) error
	ListByCompany(ctx context.Context, companyID string) ([]Profile, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string) ([]Profile, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Profile, error)
	FindEffective(ctx context.Context, companyID, employeeID string, asOf time.Time) (*Profile, error)
	IsReferenced(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, profile *Profile) error {
	return r.conn(ctx).Omit("EmployeeName").Create(profile).Error
}

func (r *repository) ListByCompany(ctx context.Context, companyID string) ([]Profile, error) {
	var profiles []Profile
	query := `
SELECT
	compensation_profiles.*,
	employees.full_name AS employee_name
FROM compensation_profiles
JOIN employees ON employees.id = compensation_profiles.employee_id
WHERE compensation_profiles.company_id = ?
ORDER BY
	employees.full_name ASC,
	compensation_profiles.effective_date DESC,
	compensation_profiles.created_at DESC
`

	err := r.conn(ctx).Raw(query, companyID).Scan(&profiles).Error
	return profiles, err
}

func (r *repository) ListByEmployee(ctx context.Context, companyID, employeeID string) ([]Profile, error) {
	var profiles []Profile
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("effective_date DESC, created_at DESC").
		Find(&profiles).Error
	return profiles, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Profile, error) {
	var profile Profile
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindEffective returns the latest version whose effective date is on or
// before asOf.
func (r *repository) FindEffective(ctx context.Context, companyID, employeeID string, asOf time.Time) (*Profile, error) {
	var profile Profile
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("effective_date <= ?", asOf.Format("2006-01-02")).
		Order("effective_date DESC, created_at DESC").
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) IsReferenced(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("payslips").
		Where("profile_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Delete(&Profile{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
