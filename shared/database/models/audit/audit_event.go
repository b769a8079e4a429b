package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Level represents the severity of an audit event
type Level string

const (
	LevelInfo     Level = "info"
	LevelWarning  Level = "warning"
	LevelError    Level = "error"
	LevelCritical Level = "critical"
)

// Audit event types emitted by the provisioning pipeline.
const (
	EventWebhookReceived     = "webhook.received"
	EventWebhookIgnored      = "webhook.ignored"
	EventPaymentConfirmed    = "payment.confirmed"
	EventPaymentIntentNoted  = "payment_intent.succeeded"
	EventChargeRecorded      = "charge.recorded"
	EventPaymentFailed       = "payment.failed"
	EventAlreadyHandled      = "process.already_handled"
	EventOrganizationCreated = "organization.created"
	EventUserCreated         = "user.created"
	EventRoleGranted         = "role.granted"
	EventTrainingInitialized = "training.initialized"
	EventProcessProvisioned  = "process.provisioned"
	EventProvisioningFailed  = "provisioning.failed"
	EventNotificationsSent   = "notifications.sent"
	EventCRMSyncCompleted    = "crm_sync.completed"
	EventCRMSyncFailed       = "crm_sync.failed"
	EventPayloadArchived     = "payload.archived"
)

// AuditEvent is the compliance ledger entry for one pipeline decision.
// Rows are append-only and immutable once written; nothing in the system
// updates or deletes them.
type AuditEvent struct {
	ID        uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	ProcessID *uuid.UUID      `json:"process_id,omitempty" gorm:"type:uuid;index"`
	EventType string          `json:"event_type" gorm:"type:varchar(100);not null;index"`
	Level     Level           `json:"level" gorm:"type:varchar(20);not null;default:'info'"`
	Payload   json.RawMessage `json:"payload,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName returns the table name for AuditEvent
func (AuditEvent) TableName() string {
	return "audit_events"
}
