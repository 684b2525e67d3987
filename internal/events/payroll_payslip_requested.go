package events

import "time"

const PayrollPayslipRequestedTopic = "hr.payroll.payslip.requested.v1"

const EventPayslipRenderRequested = "payslip.render_requested"

// PayrollPayslipRequestedEvent asks the renderer to (re)build one payslip
// document, e.g. after an off-cycle payment.
type PayrollPayslipRequestedEvent struct {
	EventType   string    `json:"event_type"`
	PayslipID   string    `json:"payslip_id"`
	CompanyID   string    `json:"company_id"`
	Period      string    `json:"period"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
