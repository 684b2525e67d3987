package events

import "time"

const AuditRecordedTopic = "hr.audit.recorded.v1"

const EventAuditRecorded = "audit.recorded"

type AuditRecordedEvent struct {
	EventType   string    `json:"event_type"`
	ActionType  string    `json:"action_type"`
	Module      string    `json:"module"`
	PerformedBy string    `json:"performed_by"`
	TargetID    string    `json:"target_id"`
	Description string    `json:"description"`
	TenantID    string    `json:"tenant_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}
