package events

import "time"

const PayrollCycleTransitionedTopic = "hr.payroll.cycle.transitioned.v1"

const EventPayrollCycleTransitioned = "payroll_cycle.transitioned"

type PayrollCycleTransitionedEvent struct {
	EventType   string    `json:"event_type"`
	CycleID     string    `json:"cycle_id"`
	CompanyID   string    `json:"company_id"`
	Period      string    `json:"period"`
	FromState   string    `json:"from_state"`
	ToState     string    `json:"to_state"`
	PerformedBy string    `json:"performed_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
