package services

import (
	"testing"

	"complyhub-backend/shared/database/models"
	"complyhub-backend/shared/database/models/audit"
)

func TestRouteUnknownEventTypeIsIgnored(t *testing.T) {
	recorder := &fakeRecorder{}
	router := NewEventRouter(nil, newFakeStore(), recorder)

	event := &Event{Type: "invoice.created", ID: "evt_x"}
	if err := router.Route(event); err != nil {
		t.Fatalf("unknown event type must be acknowledged, got %v", err)
	}
	if recorder.count(audit.EventWebhookIgnored) != 1 {
		t.Fatal("ignored event was not audited")
	}
}

func TestRouteChargeSucceededRecordsRef(t *testing.T) {
	process := testProcess()
	process.Status = models.ProcessStatusPaid
	store := newFakeStore(process)
	recorder := &fakeRecorder{}
	router := NewEventRouter(nil, store, recorder)

	event := &Event{Type: EventChargeSucceeded, ID: "evt_c"}
	event.Data.Object = EventObject{
		ChargeRef: "ch_777",
		Metadata:  map[string]string{"process_id": process.ID.String()},
	}

	if err := router.Route(event); err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if store.processes[process.ID].PaymentChargeRef != "ch_777" {
		t.Fatalf("charge ref not recorded: %q", store.processes[process.ID].PaymentChargeRef)
	}
	if recorder.count(audit.EventChargeRecorded) != 1 {
		t.Fatal("charge was not audited")
	}
}

func TestRoutePaymentIntentNotedWithoutProcess(t *testing.T) {
	recorder := &fakeRecorder{}
	router := NewEventRouter(nil, newFakeStore(), recorder)

	event := &Event{Type: EventPaymentIntentSucceeded, ID: "evt_i"}
	event.Data.Object = EventObject{IntentRef: "pi_1"}

	if err := router.Route(event); err != nil {
		t.Fatalf("intent events are informational and must not error: %v", err)
	}
	if recorder.count(audit.EventPaymentIntentNoted) != 1 {
		t.Fatal("intent was not audited")
	}
}

func TestRoutePaymentCompletedRunsProvisioning(t *testing.T) {
	process := testProcess()
	p := newPipeline(process)
	router := NewEventRouter(p.service, p.store, p.recorder)

	if err := router.Route(paymentCompletedEvent(process.ID)); err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if p.store.processes[process.ID].Status != models.ProcessStatusProvisioned {
		t.Fatalf("provisioning did not run: %s", p.store.processes[process.ID].Status)
	}
}

func TestRoutePaymentFailedDoesNotProvision(t *testing.T) {
	process := testProcess()
	p := newPipeline(process)
	router := NewEventRouter(p.service, p.store, p.recorder)

	event := paymentCompletedEvent(process.ID)
	event.Type = EventPaymentFailed
	event.Data.Object.FailureMessage = "insufficient funds"

	if err := router.Route(event); err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if len(p.store.orgs) != 0 {
		t.Fatal("payment.failed must not provision anything")
	}
	if len(p.notifier.alerts) != 1 {
		t.Fatalf("expected one ops alert, got %d", len(p.notifier.alerts))
	}
}
