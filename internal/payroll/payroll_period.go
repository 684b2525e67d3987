package payroll

import (
	"time"

	payrollerrors "go-payroll/internal/payroll/errors"
)

const periodLayout = "2006-01"

// Period is one calendar month, written as YYYY-MM.
type Period struct {
	Year  int
	Month time.Month
}

func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(periodLayout, s)
	if err != nil || t.Format(periodLayout) != s {
		return Period{}, payrollerrors.ErrInvalidPeriodFormat
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

func (p Period) String() string {
	return p.Start().Format(periodLayout)
}

func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the last calendar day of the month.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}
