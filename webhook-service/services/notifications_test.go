package services

import (
	"testing"

	"complyhub-backend/shared/database/models/audit"
)

func TestDispatchProvisionedPartialFailure(t *testing.T) {
	process := testProcess()
	notifier := &fakeNotifier{failWelcome: true}
	recorder := &fakeRecorder{}
	d := NewNotificationDispatcher(notifier, recorder, "https://app.example.com")

	results := d.DispatchProvisioned(process, fakeOrg(), "tempPassword1234")

	succeeded, failed := Summarize(results)
	if len(succeeded) != 1 || succeeded[0] != "ops_alert" {
		t.Fatalf("unexpected succeeded steps: %v", succeeded)
	}
	if len(failed) != 1 || failed[0] != "welcome_email" {
		t.Fatalf("unexpected failed steps: %v", failed)
	}

	// One summary entry at warning level, not one entry per send.
	if recorder.total() != 1 {
		t.Fatalf("expected a single summary audit entry, got %d", recorder.total())
	}
	if recorder.events[0].EventType != audit.EventNotificationsSent || recorder.events[0].Level != audit.LevelWarning {
		t.Fatalf("unexpected summary entry: %+v", recorder.events[0])
	}
}

func TestDispatchProvisionedBuildsLoginURL(t *testing.T) {
	process := testProcess()
	notifier := &fakeNotifier{}
	d := NewNotificationDispatcher(notifier, &fakeRecorder{}, "https://app.example.com")

	d.DispatchProvisioned(process, fakeOrg(), "tempPassword1234")

	if len(notifier.welcomes) != 1 {
		t.Fatalf("expected 1 welcome email, got %d", len(notifier.welcomes))
	}
	if notifier.welcomes[0].LoginURL != "https://app.example.com/login" {
		t.Fatalf("unexpected login URL: %s", notifier.welcomes[0].LoginURL)
	}
}

func TestDispatchPaymentFailedCarriesDetail(t *testing.T) {
	process := testProcess()
	notifier := &fakeNotifier{}
	d := NewNotificationDispatcher(notifier, &fakeRecorder{}, "https://app.example.com")

	result := d.DispatchPaymentFailed(process, "card declined")
	if !result.Success {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(notifier.alerts) != 1 {
		t.Fatalf("expected 1 ops alert, got %d", len(notifier.alerts))
	}
	alert := notifier.alerts[0]
	if alert.AlertType != "payment_failed" || alert.Detail != "card declined" {
		t.Fatalf("unexpected alert: %+v", alert)
	}
	if alert.ProcessID != process.ID.String() {
		t.Fatalf("alert missing process reference: %+v", alert)
	}
}
