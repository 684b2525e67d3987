package attendance

import (
	"fmt"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type State string

const (
	StateIdle      State = "IDLE"
	StateWorking   State = "WORKING"
	StateOnBreak   State = "ON_BREAK"
	StateInMeeting State = "IN_MEETING"
	StateClosed    State = "CLOSED"
)

type Action string

const (
	ActionClockIn      Action = "clock-in"
	ActionClockOut     Action = "clock-out"
	ActionStartBreak   Action = "start-break"
	ActionEndBreak     Action = "end-break"
	ActionStartMeeting Action = "start-meeting"
	ActionEndMeeting   Action = "end-meeting"
)

// transitions lists every legal move. Anything missing is rejected.
var transitions = map[State]map[Action]State{
	StateIdle: {
		ActionClockIn: StateWorking,
	},
	StateWorking: {
		ActionClockOut:     StateClosed,
		ActionStartBreak:   StateOnBreak,
		ActionStartMeeting: StateInMeeting,
	},
	StateOnBreak: {
		ActionEndBreak: StateWorking,
		ActionClockOut: StateClosed,
	},
	StateInMeeting: {
		ActionEndMeeting: StateWorking,
		ActionClockOut:   StateClosed,
	},
}

func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionClockIn, ActionClockOut, ActionStartBreak, ActionEndBreak, ActionStartMeeting, ActionEndMeeting:
		return a, nil
	}
	return "", attendanceerrors.ErrInvalidAction
}

// StateOf derives the session state from a stored record. A nil record is
// Idle.
func StateOf(a *Attendance) State {
	switch {
	case a == nil:
		return StateIdle
	case a.CheckOut != nil:
		return StateClosed
	}
	if open := a.openInterval(); open != nil {
		if open.Kind == IntervalMeeting {
			return StateInMeeting
		}
		return StateOnBreak
	}
	return StateWorking
}

func rejection(from State, action Action) error {
	if action == ActionClockIn {
		return attendanceerrors.ErrAlreadyActive
	}
	if from == StateIdle {
		return attendanceerrors.ErrNoActiveSession
	}
	switch action {
	case ActionEndBreak:
		return attendanceerrors.ErrNoOpenBreak
	case ActionEndMeeting:
		return attendanceerrors.ErrNoOpenMeeting
	}
	if from == StateClosed {
		return attendanceerrors.ErrAlreadyClosed
	}
	return attendanceerrors.ErrIntervalAlreadyOpen
}

// Policy holds the workday thresholds.
type Policy struct {
	lateHour      int
	lateMinute    int
	StandardHours decimal.Decimal
	HalfDayHours  decimal.Decimal
}

func NewPolicy(lateAfter string, standardHours, halfDayHours float64) (Policy, error) {
	t, err := time.Parse("15:04", lateAfter)
	if err != nil {
		return Policy{}, fmt.Errorf("attendance: late threshold %q: %w", lateAfter, err)
	}
	return Policy{
		lateHour:      t.Hour(),
		lateMinute:    t.Minute(),
		StandardHours: decimal.NewFromFloat(standardHours),
		HalfDayHours:  decimal.NewFromFloat(halfDayHours),
	}, nil
}

func DefaultPolicy() Policy {
	p, _ := NewPolicy("09:30", 9, 4.5)
	return p
}

// IsLate reports whether at is strictly after the threshold on its local day.
func (p Policy) IsLate(at time.Time, loc *time.Location) bool {
	local := at.In(loc)
	threshold := time.Date(local.Year(), local.Month(), local.Day(), p.lateHour, p.lateMinute, 0, 0, loc)
	return local.After(threshold)
}

// DayOf is the calendar date of at in loc, normalized to UTC midnight.
func DayOf(at time.Time, loc *time.Location) time.Time {
	local := at.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

type Event struct {
	CompanyID  uuid.UUID
	EmployeeID uuid.UUID
	Action     Action
	At         time.Time
	Location   *time.Location
	Latitude   *float64
	Longitude  *float64
	Source     string
}

// Change describes what Apply did so the caller can persist exactly that.
type Change struct {
	Record  *Attendance
	Created bool
	Opened  *Interval
	Closed  *Interval
	From    State
	To      State
}

var (
	msPerHour   = decimal.NewFromInt(int64(time.Hour / time.Millisecond))
	msPerMinute = decimal.NewFromInt(int64(time.Minute / time.Millisecond))
)

func hoursBetween(from, to time.Time) decimal.Decimal {
	return decimal.NewFromInt(to.Sub(from).Milliseconds()).Div(msPerHour).Round(2)
}

func minutesBetween(from, to time.Time) int64 {
	return decimal.NewFromInt(to.Sub(from).Milliseconds()).Div(msPerMinute).Round(0).IntPart()
}

// Apply runs one event against the current record. rec is mutated in place;
// clock-in returns a new record.
func Apply(rec *Attendance, ev Event, p Policy) (Change, error) {
	from := StateOf(rec)
	to, ok := transitions[from][ev.Action]
	if !ok {
		return Change{}, rejection(from, ev.Action)
	}
	if rec != nil && ev.At.Before(rec.CheckIn) {
		return Change{}, attendanceerrors.ErrTimestampBeforeCheckIn
	}

	change := Change{Record: rec, From: from, To: to}

	switch ev.Action {
	case ActionClockIn:
		loc := ev.Location
		if loc == nil {
			loc = time.UTC
		}
		source := ev.Source
		if source == "" {
			source = "MANUAL"
		}
		late := p.IsLate(ev.At, loc)
		status := StatusPresent
		if late {
			status = StatusLate
		}
		change.Record = &Attendance{
			ID:             uuid.New(),
			CompanyID:      ev.CompanyID,
			EmployeeID:     ev.EmployeeID,
			AttendanceDate: DayOf(ev.At, loc),
			CheckIn:        ev.At,
			IsLate:         late,
			Status:         status,
			Latitude:       ev.Latitude,
			Longitude:      ev.Longitude,
			Source:         source,
		}
		change.Created = true

	case ActionClockOut:
		if open := rec.openInterval(); open != nil {
			if err := closeInterval(open, ev.At); err != nil {
				return Change{}, err
			}
			change.Closed = open
		}
		at := ev.At
		rec.CheckOut = &at
		rec.TotalWorkHours = hoursBetween(rec.CheckIn, at)
		rec.OvertimeHours = decimal.Max(decimal.Zero, rec.TotalWorkHours.Sub(p.StandardHours))
		if rec.TotalWorkHours.LessThan(p.HalfDayHours) {
			rec.Status = StatusHalfDay
		}
		if ev.Latitude != nil {
			rec.Latitude = ev.Latitude
		}
		if ev.Longitude != nil {
			rec.Longitude = ev.Longitude
		}

	case ActionStartBreak, ActionStartMeeting:
		kind := IntervalBreak
		if ev.Action == ActionStartMeeting {
			kind = IntervalMeeting
		}
		rec.Intervals = append(rec.Intervals, Interval{
			ID:           uuid.New(),
			AttendanceID: rec.ID,
			Kind:         kind,
			StartedAt:    ev.At,
		})
		change.Opened = &rec.Intervals[len(rec.Intervals)-1]

	case ActionEndBreak, ActionEndMeeting:
		open := rec.openInterval()
		if err := closeInterval(open, ev.At); err != nil {
			return Change{}, err
		}
		change.Closed = open
	}

	return change, nil
}

func closeInterval(i *Interval, at time.Time) error {
	if at.Before(i.StartedAt) {
		return attendanceerrors.ErrTimestampBeforeCheckIn
	}
	end := at
	minutes := minutesBetween(i.StartedAt, end)
	i.EndedAt = &end
	i.DurationMinutes = &minutes
	return nil
}
