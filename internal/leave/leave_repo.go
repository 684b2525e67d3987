package leave

import (
	"context"
	"time"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	// ApprovedLeaveDays returns every date in [start, end] covered by an
	// APPROVED leave of the employee, keyed by DateKey.
	ApprovedLeaveDays(ctx context.Context, companyID, employeeID string, start, end time.Time) (map[string]struct{}, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ApprovedLeaveDays(ctx context.Context, companyID, employeeID string, start, end time.Time) (map[string]struct{}, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("NOT (end_date < ? OR start_date > ?)", start, end).
		Order("start_date ASC").
		Find(&leaves).Error
	if err != nil {
		return nil, err
	}

	return expandLeaveDays(leaves, start, end), nil
}

func expandLeaveDays(leaves []Leave, start, end time.Time) map[string]struct{} {
	days := make(map[string]struct{})
	lo, hi := truncateDay(start), truncateDay(end)
	for _, l := range leaves {
		from, to := truncateDay(l.StartDate), truncateDay(l.EndDate)
		if from.Before(lo) {
			from = lo
		}
		if to.After(hi) {
			to = hi
		}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			days[DateKey(d)] = struct{}{}
		}
	}
	return days
}
