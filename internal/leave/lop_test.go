package leave_test

import (
	"testing"
	"time"

	"go-payroll/internal/leave"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

func set(days ...int) map[string]struct{} {
	m := make(map[string]struct{}, len(days))
	for _, d := range days {
		m[leave.DateKey(day(d))] = struct{}{}
	}
	return m
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeLOP_Classification(t *testing.T) {
	in := leave.LOPInput{
		PeriodStart: day(3),
		PeriodEnd:   day(9),
		Attendance: map[string]string{
			leave.DateKey(day(3)): leave.AttendancePresent,
			leave.DateKey(day(4)): leave.AttendanceLate,
			leave.DateKey(day(5)): leave.AttendanceHalfDay,
		},
		ApprovedLeave: set(6),
		Holidays:      set(8, 9),
	}

	res, err := leave.ComputeLOP(in)
	require.NoError(t, err)

	// 7 is the only uncovered day; 5 is half.
	assert.True(t, dec("1.5").Equal(res.LOPDays), "lop %s", res.LOPDays)
	assert.True(t, dec("1").Equal(res.PaidLeaveDays))
	assert.Equal(t, 5, res.WorkingDays)

	kinds := make([]leave.DayKind, 0, len(res.Days))
	for _, d := range res.Days {
		kinds = append(kinds, d.Kind)
	}
	assert.Equal(t, []leave.DayKind{
		leave.DayPresent, leave.DayPresent, leave.DayHalfDay, leave.DayLeave,
		leave.DayAbsent, leave.DayHoliday, leave.DayHoliday,
	}, kinds)
}

func TestComputeLOP_HalfDayCoveredByLeave(t *testing.T) {
	res, err := leave.ComputeLOP(leave.LOPInput{
		PeriodStart:   day(3),
		PeriodEnd:     day(3),
		Attendance:    map[string]string{leave.DateKey(day(3)): leave.AttendanceHalfDay},
		ApprovedLeave: set(3),
	})
	require.NoError(t, err)

	assert.True(t, res.LOPDays.IsZero())
	assert.True(t, dec("0.5").Equal(res.PaidLeaveDays))
}

func TestComputeLOP_HolidayWinsOverAbsence(t *testing.T) {
	res, err := leave.ComputeLOP(leave.LOPInput{
		PeriodStart: day(1),
		PeriodEnd:   day(2),
		Holidays:    set(1, 2),
	})
	require.NoError(t, err)

	assert.True(t, res.LOPDays.IsZero())
	assert.Equal(t, 0, res.WorkingDays)
}

func TestComputeLOP_AbsentRecordCountsAsNoPresence(t *testing.T) {
	res, err := leave.ComputeLOP(leave.LOPInput{
		PeriodStart: day(3),
		PeriodEnd:   day(3),
		Attendance:  map[string]string{leave.DateKey(day(3)): leave.AttendanceAbsent},
	})
	require.NoError(t, err)
	assert.True(t, dec("1").Equal(res.LOPDays))
}

func TestComputeLOP_Deterministic(t *testing.T) {
	in := leave.LOPInput{
		PeriodStart:   day(1),
		PeriodEnd:     day(30),
		Attendance:    map[string]string{leave.DateKey(day(10)): leave.AttendanceHalfDay},
		ApprovedLeave: set(11, 12),
		Holidays:      set(1, 2, 8, 9, 15, 16, 22, 23, 29, 30),
	}

	first, err := leave.ComputeLOP(in)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := leave.ComputeLOP(in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeLOP_InvalidRange(t *testing.T) {
	_, err := leave.ComputeLOP(leave.LOPInput{PeriodStart: day(5), PeriodEnd: day(4)})
	assert.ErrorIs(t, err, leave.ErrInvalidRange)
}

func TestWorkingDays(t *testing.T) {
	assert.Equal(t, 30, leave.WorkingDays(day(1), day(30), nil))
	assert.Equal(t, 20, leave.WorkingDays(day(1), day(30), set(1, 2, 8, 9, 15, 16, 22, 23, 29, 30)))
}
