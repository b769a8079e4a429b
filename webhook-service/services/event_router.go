package services

import (
	"log"

	"github.com/google/uuid"

	"complyhub-backend/shared/database/models/audit"
)

// EventRouter dispatches verified events by type. Unknown types are
// acknowledged and ignored: the processor must never receive an error for an
// event kind this system does not need yet, or it would redeliver forever.
type EventRouter struct {
	provisioner *ProvisioningService
	store       ProcessStore
	recorder    AuditRecorder
}

// NewEventRouter wires the router
func NewEventRouter(provisioner *ProvisioningService, store ProcessStore, recorder AuditRecorder) *EventRouter {
	return &EventRouter{
		provisioner: provisioner,
		store:       store,
		recorder:    recorder,
	}
}

// Route handles one trusted event
func (r *EventRouter) Route(event *Event) error {
	switch event.Type {
	case EventPaymentCompleted:
		return r.provisioner.HandlePaymentCompleted(event)

	case EventPaymentIntentSucceeded:
		return r.notePaymentIntent(event)

	case EventChargeSucceeded:
		return r.recordCharge(event)

	case EventPaymentFailed:
		return r.provisioner.HandlePaymentFailed(event)

	default:
		r.recorder.Record(nil, audit.EventWebhookIgnored, audit.LevelInfo, map[string]interface{}{
			"event_id":   event.ID,
			"event_type": string(event.Type),
		})
		return nil
	}
}

// notePaymentIntent records an idempotent audit note for the intent and
// persists the intent reference when the process is known. No provisioning.
func (r *EventRouter) notePaymentIntent(event *Event) error {
	processID := r.parseProcessRef(event)

	if processID != nil {
		if err := r.store.RecordIntentRef(*processID, event.Data.Object.IntentRef); err != nil {
			log.Printf("⚠️ Failed to record payment intent ref for process %s: %v", processID, err)
		}
	}

	r.recorder.Record(processID, audit.EventPaymentIntentNoted, audit.LevelInfo, map[string]interface{}{
		"event_id":   event.ID,
		"intent_ref": event.Data.Object.IntentRef,
	})
	return nil
}

// recordCharge persists the processor charge reference on the process
func (r *EventRouter) recordCharge(event *Event) error {
	processID := r.parseProcessRef(event)

	if processID != nil {
		if err := r.store.RecordChargeRef(*processID, event.Data.Object.ChargeRef); err != nil {
			log.Printf("⚠️ Failed to record charge ref for process %s: %v", processID, err)
		}
	}

	r.recorder.Record(processID, audit.EventChargeRecorded, audit.LevelInfo, map[string]interface{}{
		"event_id":   event.ID,
		"charge_ref": event.Data.Object.ChargeRef,
	})
	return nil
}

func (r *EventRouter) parseProcessRef(event *Event) *uuid.UUID {
	id, err := uuid.Parse(event.Data.Object.ProcessRef())
	if err != nil {
		return nil
	}
	return &id
}
