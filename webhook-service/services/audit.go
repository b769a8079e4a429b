package services

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"complyhub-backend/shared/database/models/audit"
)

// AuditRecorder appends events to the compliance ledger. Every component of
// the pipeline depends on it; it depends on nothing but the database.
type AuditRecorder interface {
	Record(processID *uuid.UUID, eventType string, level audit.Level, payload map[string]interface{})
}

// GormAuditRecorder writes audit events to the audit_events table
type GormAuditRecorder struct {
	db *gorm.DB
}

// NewGormAuditRecorder creates the Postgres-backed audit recorder
func NewGormAuditRecorder(db *gorm.DB) *GormAuditRecorder {
	return &GormAuditRecorder{db: db}
}

// Record appends one audit event. A failed write must never abort
// provisioning, but it undermines the compliance guarantee, so it is
// surfaced loudly in the operational log.
func (r *GormAuditRecorder) Record(processID *uuid.UUID, eventType string, level audit.Level, payload map[string]interface{}) {
	event := audit.AuditEvent{
		ProcessID: processID,
		EventType: eventType,
		Level:     level,
	}

	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			log.Printf("❌ CRITICAL: failed to encode audit payload for %s: %v", eventType, err)
		} else {
			event.Payload = json.RawMessage(encoded)
		}
	}

	if err := r.db.Create(&event).Error; err != nil {
		log.Printf("❌ CRITICAL: audit write failed for %s (process=%v): %v", eventType, processID, err)
	}
}
