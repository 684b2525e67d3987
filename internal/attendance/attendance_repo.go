package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-payroll/internal/shared/dbtx"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	CreateInterval(ctx context.Context, i *Interval) error
	UpdateInterval(ctx context.Context, i *Interval) error
	// FindForUpdate locks the day's row until the transaction ends. It
	// returns nil when the employee has not clocked in.
	FindForUpdate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	ListByPeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]Attendance, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Omit(clause.Associations).Save(a).Error
}

func (r *repository) CreateInterval(ctx context.Context, i *Interval) error {
	return r.conn(ctx).Create(i).Error
}

func (r *repository) UpdateInterval(ctx context.Context, i *Interval) error {
	return r.conn(ctx).Save(i).Error
}

func (r *repository) FindForUpdate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	return r.find(ctx, r.conn(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), companyID, employeeID, date)
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	return r.find(ctx, r.conn(ctx), companyID, employeeID, date)
}

func (r *repository) find(ctx context.Context, q *gorm.DB, companyID, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := q.
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.conn(ctx).
		Where("attendance_id = ?", a.ID).
		Order("started_at ASC").
		Find(&a.Intervals).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListByPeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}
