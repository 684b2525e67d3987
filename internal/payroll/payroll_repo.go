package payroll

import (
	"context"
	"database/sql"
	"errors"
	"time"

	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/dbtx"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recalculatedColumns are overwritten when a PENDING payslip is calculated
// again. The id, number and creation time of the first calculation survive.
var recalculatedColumns = []string{
	"profile_id", "employee_name", "employee_number",
	"monthly_gross", "basic", "hra", "special_allowance", "gross_earnings",
	"pf", "pt", "taxable_income", "annual_tax", "monthly_tax", "net_salary",
	"lop_days", "paid_leave_days", "working_days", "regime", "tax_table_version",
	"status", "pdf_path", "calculated_at", "updated_at",
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindCycle(ctx context.Context, companyID, period string) (*Cycle, error)
	EnsureCycle(ctx context.Context, cycle *Cycle) error
	UpdateCycleState(ctx context.Context, companyID, period string, from []CycleState, to CycleState, fields map[string]any) (bool, error)
	FindPayslip(ctx context.Context, companyID, employeeID, period string) (*Payslip, error)
	UpsertPayslip(ctx context.Context, payslip *Payslip) (bool, error)
	ListPayslips(ctx context.Context, companyID, period string) ([]Payslip, error)
	FindPayslipByID(ctx context.Context, companyID, id string) (*Payslip, error)
	MarkPayslipPaid(ctx context.Context, companyID, id string, paidAt time.Time) (bool, error)
	MarkPeriodPaid(ctx context.Context, companyID, period string, paidAt time.Time) (int64, error)
	SetPayslipPDF(ctx context.Context, id, path string) error
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

// FindCycle returns nil when the period has never been calculated.
func (r *repository) FindCycle(ctx context.Context, companyID, period string) (*Cycle, error) {
	var cycle Cycle
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("period = ?", period).
		First(&cycle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

func (r *repository) EnsureCycle(ctx context.Context, cycle *Cycle) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}, {Name: "period"}},
			DoNothing: true,
		}).
		Create(cycle).Error
}

// UpdateCycleState moves the cycle to `to` only while it is still in one of
// `from`. It reports false when another writer got there first.
func (r *repository) UpdateCycleState(
	ctx context.Context,
	companyID, period string,
	from []CycleState,
	to CycleState,
	fields map[string]any,
) (bool, error) {
	updates := map[string]any{"state": to, "updated_at": time.Now()}
	for k, v := range fields {
		updates[k] = v
	}

	res := r.conn(ctx).
		Model(&Cycle{}).
		Scopes(tenant.Scope(companyID)).
		Where("period = ?", period).
		Where("state IN ?", from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindPayslip(ctx context.Context, companyID, employeeID, period string) (*Payslip, error) {
	var payslip Payslip
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND period = ?", employeeID, period).
		First(&payslip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payslip, nil
}

// UpsertPayslip inserts or refreshes a payslip while holding a share lock on
// the period's cycle row. A cycle that has moved past CALCULATED rejects the
// write with ErrCycleNotOpen, and a concurrent state change waits for it. It
// reports false when the existing row is already PAID and was left untouched.
func (r *repository) UpsertPayslip(ctx context.Context, payslip *Payslip) (bool, error) {
	var written bool
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var cycle Cycle
		err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Select("state").
			Scopes(tenant.Scope(payslip.CompanyID.String())).
			Where("period = ?", payslip.Period).
			Take(&cycle).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollerrors.ErrCycleNotOpen
		}
		if err != nil {
			return err
		}
		if cycle.State != StateDraft && cycle.State != StateCalculated {
			return payrollerrors.ErrCycleNotOpen
		}

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "period"}},
			DoUpdates: clause.AssignmentColumns(recalculatedColumns),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Neq{Column: clause.Column{Table: "payslips", Name: "status"}, Value: PayslipPaid},
			}},
		}).Create(payslip)
		if res.Error != nil {
			return res.Error
		}
		written = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return written, nil
}

func (r *repository) ListPayslips(ctx context.Context, companyID, period string) ([]Payslip, error) {
	var payslips []Payslip
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("period = ?", period).
		Order("employee_name ASC").
		Find(&payslips).Error
	return payslips, err
}

func (r *repository) FindPayslipByID(ctx context.Context, companyID, id string) (*Payslip, error) {
	var payslip Payslip
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&payslip, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payslip, nil
}

func (r *repository) MarkPayslipPaid(ctx context.Context, companyID, id string, paidAt time.Time) (bool, error) {
	res := r.conn(ctx).
		Model(&Payslip{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ? AND status = ?", id, PayslipPending).
		Updates(map[string]any{"status": PayslipPaid, "paid_at": paidAt, "updated_at": paidAt})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) MarkPeriodPaid(ctx context.Context, companyID, period string, paidAt time.Time) (int64, error) {
	res := r.conn(ctx).
		Model(&Payslip{}).
		Scopes(tenant.Scope(companyID)).
		Where("period = ? AND status = ?", period, PayslipPending).
		Updates(map[string]any{"status": PayslipPaid, "paid_at": paidAt, "updated_at": paidAt})
	return res.RowsAffected, res.Error
}

func (r *repository) SetPayslipPDF(ctx context.Context, id, path string) error {
	return r.conn(ctx).
		Model(&Payslip{}).
		Where("id = ?", id).
		Update("pdf_path", path).Error
}
