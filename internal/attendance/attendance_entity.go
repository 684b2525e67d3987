package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusAbsent  = "ABSENT"
	StatusHalfDay = "HALF_DAY"
)

type IntervalKind string

const (
	IntervalBreak   IntervalKind = "BREAK"
	IntervalMeeting IntervalKind = "MEETING"
)

type Attendance struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID      uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID     uuid.UUID       `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	AttendanceDate time.Time       `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2"`
	CheckIn        time.Time       `gorm:"column:check_in;type:timestamptz;not null"`
	CheckOut       *time.Time      `gorm:"column:check_out;type:timestamptz"`
	TotalWorkHours decimal.Decimal `gorm:"column:total_work_hours;type:numeric(6,2);not null;default:0"`
	OvertimeHours  decimal.Decimal `gorm:"column:overtime_hours;type:numeric(6,2);not null;default:0"`
	IsLate         bool            `gorm:"column:is_late;not null;default:false"`
	Status         string          `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	Latitude       *float64        `gorm:"column:latitude"`
	Longitude      *float64        `gorm:"column:longitude"`
	Source         string          `gorm:"column:source;type:varchar(30);not null;default:MANUAL"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
	Intervals      []Interval      `gorm:"foreignKey:AttendanceID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// Interval is a break or meeting inside one attendance record. EndedAt is
// nil while the interval is open.
type Interval struct {
	ID              uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	AttendanceID    uuid.UUID    `gorm:"column:attendance_id;type:uuid;not null;index"`
	Kind            IntervalKind `gorm:"column:kind;type:varchar(10);not null"`
	StartedAt       time.Time    `gorm:"column:started_at;type:timestamptz;not null"`
	EndedAt         *time.Time   `gorm:"column:ended_at;type:timestamptz"`
	DurationMinutes *int64       `gorm:"column:duration_minutes"`
}

func (Interval) TableName() string {
	return "attendance_intervals"
}

func (a *Attendance) openInterval() *Interval {
	for i := len(a.Intervals) - 1; i >= 0; i-- {
		if a.Intervals[i].EndedAt == nil {
			return &a.Intervals[i]
		}
	}
	return nil
}
