package attendance

import "time"

type RecordEventRequest struct {
	Action    string     `json:"action" binding:"required"`
	Timestamp *time.Time `json:"timestamp"`
	Latitude  *float64   `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64   `json:"longitude" binding:"omitempty,longitude"`
	Source    string     `json:"source" binding:"omitempty,max=30"`
}

type IntervalResponse struct {
	Kind            string  `json:"kind"`
	StartedAt       string  `json:"started_at"`
	EndedAt         *string `json:"ended_at,omitempty"`
	DurationMinutes *int64  `json:"duration_minutes,omitempty"`
}

type SessionSnapshot struct {
	EmployeeID     string             `json:"employee_id"`
	AttendanceDate string             `json:"attendance_date"`
	State          State              `json:"state"`
	CheckIn        *string            `json:"check_in,omitempty"`
	CheckOut       *string            `json:"check_out,omitempty"`
	IsLate         bool               `json:"is_late"`
	Status         string             `json:"status,omitempty"`
	TotalWorkHours string             `json:"total_work_hours"`
	OvertimeHours  string             `json:"overtime_hours"`
	Intervals      []IntervalResponse `json:"intervals"`
}
