package leave

import (
	"net/http"
	"time"

	"go-payroll/internal/shared/apperror"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Attendance statuses as stored by the session tracker.
const (
	AttendancePresent = "PRESENT"
	AttendanceLate    = "LATE"
	AttendanceHalfDay = "HALF_DAY"
	AttendanceAbsent  = "ABSENT"
)

type DayKind string

const (
	DayPresent DayKind = "PRESENT"
	DayHalfDay DayKind = "HALF_DAY"
	DayLeave   DayKind = "LEAVE"
	DayHoliday DayKind = "HOLIDAY"
	DayAbsent  DayKind = "ABSENT"
)

var ErrInvalidRange = apperror.New(
	apperror.CodeComputation,
	"period start must not be after period end",
	http.StatusUnprocessableEntity,
)

var half = decimal.New(5, -1)

// DateKey is the calendar-date key used by every day set in this package.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LOPInput is everything the aggregator needs for one employee and period.
// Attendance maps DateKey to the record status; missing keys mean no record.
type LOPInput struct {
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Attendance    map[string]string
	ApprovedLeave map[string]struct{}
	Holidays      map[string]struct{}
}

type DayDetail struct {
	Date string  `json:"date"`
	Kind DayKind `json:"kind"`
}

type LOPResult struct {
	LOPDays       decimal.Decimal
	PaidLeaveDays decimal.Decimal
	WorkingDays   int
	Days          []DayDetail
}

// ComputeLOP classifies every calendar day of the period. A day is loss of
// pay when it has no attendance, no approved leave and is not a holiday; a
// half day charges 0.5, or 0.5 paid leave when leave covers it.
func ComputeLOP(in LOPInput) (LOPResult, error) {
	start, end := truncateDay(in.PeriodStart), truncateDay(in.PeriodEnd)
	if start.After(end) {
		return LOPResult{}, ErrInvalidRange
	}

	res := LOPResult{
		LOPDays:       decimal.Zero,
		PaidLeaveDays: decimal.Zero,
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := DateKey(d)

		if _, ok := in.Holidays[key]; ok {
			res.Days = append(res.Days, DayDetail{Date: key, Kind: DayHoliday})
			continue
		}
		res.WorkingDays++

		_, onLeave := in.ApprovedLeave[key]
		status, attended := in.Attendance[key]
		if status == AttendanceAbsent {
			attended = false
		}

		var kind DayKind
		switch {
		case attended && status == AttendanceHalfDay:
			kind = DayHalfDay
			if onLeave {
				res.PaidLeaveDays = res.PaidLeaveDays.Add(half)
			} else {
				res.LOPDays = res.LOPDays.Add(half)
			}
		case attended:
			kind = DayPresent
		case onLeave:
			kind = DayLeave
			res.PaidLeaveDays = res.PaidLeaveDays.Add(decimal.NewFromInt(1))
		default:
			kind = DayAbsent
			res.LOPDays = res.LOPDays.Add(decimal.NewFromInt(1))
		}
		res.Days = append(res.Days, DayDetail{Date: key, Kind: kind})
	}

	return res, nil
}

// WorkingDays counts the non-holiday days in [start, end].
func WorkingDays(start, end time.Time, holidays map[string]struct{}) int {
	n := 0
	for d := truncateDay(start); !d.After(truncateDay(end)); d = d.AddDate(0, 0, 1) {
		if _, ok := holidays[DateKey(d)]; !ok {
			n++
		}
	}
	return n
}
