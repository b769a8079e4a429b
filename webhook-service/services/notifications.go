package services

import (
	"fmt"
	"log"
	"time"

	"complyhub-backend/shared/clients"
	"complyhub-backend/shared/database/models"
	"complyhub-backend/shared/database/models/audit"
)

// Notifier is the outbound messaging boundary (the notification service)
type Notifier interface {
	SendWelcomeEmail(req clients.WelcomeEmailRequest) error
	SendOpsAlert(req clients.OpsAlertRequest) error
}

// NotificationDispatcher sends the post-provisioning messages: the customer
// welcome and the internal operations alert. Each send is attempted
// independently and a single audit entry summarizes the outcome. The
// dispatcher never returns an error to the orchestrator - notification
// failure is always logged-and-continue.
type NotificationDispatcher struct {
	notifier Notifier
	recorder AuditRecorder
	loginURL string
}

// NewNotificationDispatcher wires the dispatcher
func NewNotificationDispatcher(notifier Notifier, recorder AuditRecorder, appBaseURL string) *NotificationDispatcher {
	return &NotificationDispatcher{
		notifier: notifier,
		recorder: recorder,
		loginURL: appBaseURL + "/login",
	}
}

// DispatchProvisioned sends the welcome email and the new-tenant ops alert
// for a successfully provisioned process
func (d *NotificationDispatcher) DispatchProvisioned(process *models.OnboardingProcess, org *models.Organization, temporaryPassword string) []StepResult {
	var results []StepResult

	welcome := clients.WelcomeEmailRequest{
		Email:             process.ContactEmail,
		OrganizationName:  org.Name,
		PlanCode:          org.PlanCode,
		TemporaryPassword: temporaryPassword,
		LoginURL:          d.loginURL,
	}
	results = append(results, d.attempt("welcome_email", func() error {
		return d.notifier.SendWelcomeEmail(welcome)
	}))

	alert := clients.OpsAlertRequest{
		AlertType:        "new_tenant",
		OrganizationName: org.Name,
		ContactEmail:     process.ContactEmail,
		PlanCode:         org.PlanCode,
		ProcessID:        process.ID.String(),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}
	results = append(results, d.attempt("ops_alert", func() error {
		return d.notifier.SendOpsAlert(alert)
	}))

	succeeded, failed := Summarize(results)
	level := audit.LevelInfo
	if len(failed) > 0 {
		level = audit.LevelWarning
	}
	d.recorder.Record(&process.ID, audit.EventNotificationsSent, level, map[string]interface{}{
		"succeeded": succeeded,
		"failed":    failed,
	})

	return results
}

// DispatchPaymentFailed sends the operations alert for a failed payment.
// No provisioning is triggered by this path.
func (d *NotificationDispatcher) DispatchPaymentFailed(process *models.OnboardingProcess, failureMessage string) StepResult {
	alert := clients.OpsAlertRequest{
		AlertType:        "payment_failed",
		OrganizationName: process.OrganizationName,
		ContactEmail:     process.ContactEmail,
		PlanCode:         process.PlanCode,
		ProcessID:        process.ID.String(),
		Detail:           failureMessage,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}
	return d.attempt("ops_alert", func() error {
		return d.notifier.SendOpsAlert(alert)
	})
}

func (d *NotificationDispatcher) attempt(step string, send func() error) StepResult {
	if err := send(); err != nil {
		log.Printf("⚠️ Notification step %s failed: %v", step, err)
		return StepResult{Step: step, Success: false, Detail: fmt.Sprintf("%v", err)}
	}
	return StepResult{Step: step, Success: true}
}
