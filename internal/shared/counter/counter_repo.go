// Package counter hands out gap-tolerant, monotonically increasing numbers
// per (company, series).
package counter

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// PayslipSeries numbers payslips independently for each payroll period.
func PayslipSeries(period string) string {
	return "payslip:" + strings.TrimSpace(period)
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	// Next increments the series and returns the new value; the first call
	// for a series returns 1.
	Next(ctx context.Context, companyID, series string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Next(ctx context.Context, companyID, series string) (int64, error) {
	if series == "" {
		return 0, fmt.Errorf("counter series is required")
	}

	var value int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO company_counters (company_id, series, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (company_id, series) DO UPDATE
		SET last_value = company_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, companyID, series).Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("next %s value: %w", series, err)
	}
	return value, nil
}
