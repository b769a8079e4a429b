package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"complyhub-backend/shared/clients"
	"complyhub-backend/shared/database/models"
	"complyhub-backend/shared/database/models/audit"
	utils "complyhub-backend/shared/utils/auth"
)

// IdentityService creates authentication principals for new tenants
type IdentityService interface {
	CreateAccount(req clients.CreateAccountRequest) (uuid.UUID, error)
}

const temporaryPasswordLength = 16

// ProvisioningService is the state machine that turns a confirmed payment
// into a usable tenant. Steps run in a fixed order; organization and account
// creation are fatal, everything after them is logged-and-continue.
//
// All collaborators are injected so each external service can be substituted
// with a test double.
type ProvisioningService struct {
	store      ProcessStore
	identity   IdentityService
	dispatcher *NotificationDispatcher
	syncer     TenantSyncer
	recorder   AuditRecorder
}

// NewProvisioningService wires the orchestrator
func NewProvisioningService(store ProcessStore, identity IdentityService, dispatcher *NotificationDispatcher, syncer TenantSyncer, recorder AuditRecorder) *ProvisioningService {
	return &ProvisioningService{
		store:      store,
		identity:   identity,
		dispatcher: dispatcher,
		syncer:     syncer,
		recorder:   recorder,
	}
}

// HandlePaymentCompleted runs the full provisioning pipeline for one
// payment-completed event. Safe against duplicate delivery: the conditional
// claim on the process row admits exactly one run.
func (ps *ProvisioningService) HandlePaymentCompleted(event *Event) error {
	processID, err := uuid.Parse(event.Data.Object.ProcessRef())
	if err != nil {
		ps.recorder.Record(nil, audit.EventProvisioningFailed, audit.LevelError, map[string]interface{}{
			"event_id": event.ID,
			"reason":   "event metadata carries no valid process reference",
		})
		return fmt.Errorf("invalid process reference in event %s: %w", event.ID, ErrProcessNotFound)
	}

	process, err := ps.store.GetProcess(processID)
	if err != nil {
		if errors.Is(err, ErrProcessNotFound) {
			// Data-consistency bug: a payment confirmed for a process that
			// was never created. Investigated via the audit trail, not retried.
			ps.recorder.Record(&processID, audit.EventProvisioningFailed, audit.LevelError, map[string]interface{}{
				"event_id": event.ID,
				"reason":   "process not found",
			})
		}
		return err
	}

	// Idempotency guard, part one: a terminal process means this event was
	// already handled. The processor delivers at least once; answering
	// success here is what stops the redelivery loop.
	if process.IsTerminal() {
		ps.recorder.Record(&process.ID, audit.EventAlreadyHandled, audit.LevelInfo, map[string]interface{}{
			"event_id": event.ID,
			"status":   process.Status,
		})
		return nil
	}

	// Step 1: confirm payment and claim the process. The claim is a single
	// conditional UPDATE, so concurrent duplicates race for one row and the
	// losers land here with claimed == false.
	object := event.Data.Object
	claimed, err := ps.store.ClaimForProvisioning(process.ID, PaymentRefs{
		CustomerRef: object.CustomerRef,
		ChargeRef:   object.ChargeRef,
		IntentRef:   object.IntentRef,
	})
	if err != nil {
		return ps.abort(process.ID, models.ProcessStatusError, "confirm_payment", err)
	}
	if !claimed {
		ps.recorder.Record(&process.ID, audit.EventAlreadyHandled, audit.LevelInfo, map[string]interface{}{
			"event_id": event.ID,
			"reason":   "provisioning already claimed",
		})
		return nil
	}

	ps.recorder.Record(&process.ID, audit.EventPaymentConfirmed, audit.LevelInfo, map[string]interface{}{
		"event_id":     event.ID,
		"customer_ref": object.CustomerRef,
		"charge_ref":   object.ChargeRef,
	})

	// Step 2: create the tenant organization. Fatal on failure.
	org := &models.Organization{
		Name:               process.OrganizationName,
		Slug:               buildOrganizationSlug(process.OrganizationName),
		ContactEmail:       process.ContactEmail,
		PlanCode:           process.PlanCode,
		Status:             "ACTIVE",
		PaymentCustomerRef: object.CustomerRef,
	}
	if err := ps.store.CreateOrganization(org); err != nil {
		return ps.abort(process.ID, models.ProcessStatusError, "create_organization", err)
	}

	ps.recorder.Record(&process.ID, audit.EventOrganizationCreated, audit.LevelInfo, map[string]interface{}{
		"organization_id": org.ID.String(),
		"name":            org.Name,
		"plan_code":       org.PlanCode,
	})

	// Step 3: create the delegate account. Fatal on failure, but the process
	// is parked in needs_identity_retry rather than error: the organization
	// exists and recovery tooling only has to redo the identity half.
	temporaryPassword, err := utils.GenerateTemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return ps.abort(process.ID, models.ProcessStatusNeedsIdentityRetry, "create_account", err)
	}

	userID, err := ps.identity.CreateAccount(clients.CreateAccountRequest{
		Email:             process.ContactEmail,
		TemporaryPassword: temporaryPassword,
		OrganizationID:    org.ID,
		PlanCode:          process.PlanCode,
	})
	if err != nil {
		return ps.abort(process.ID, models.ProcessStatusNeedsIdentityRetry, "create_account", err)
	}

	ps.recorder.Record(&process.ID, audit.EventUserCreated, audit.LevelInfo, map[string]interface{}{
		"user_id": userID.String(),
		"email":   process.ContactEmail,
	})

	// Step 4: role grant. Non-fatal - a tenant that exists with a role
	// needing manual fixup beats aborting after two successful creations.
	grant := &models.RoleGrant{
		UserID:         userID,
		OrganizationID: org.ID,
		Role:           models.RoleDelegateAdmin,
	}
	if err := ps.store.CreateRoleGrant(grant); err != nil {
		ps.recordNonFatal(process.ID, "create_role_grant", err)
	} else {
		ps.recorder.Record(&process.ID, audit.EventRoleGranted, audit.LevelInfo, map[string]interface{}{
			"user_id": userID.String(),
			"role":    models.RoleDelegateAdmin,
		})
	}

	// Step 5: training progress seed. Non-fatal.
	progress := &models.TrainingProgress{
		UserID:         userID,
		OrganizationID: org.ID,
		StepsCompleted: 0,
		StepsTotal:     models.TrainingStepsTotal,
	}
	if err := ps.store.CreateTrainingProgress(progress); err != nil {
		ps.recordNonFatal(process.ID, "create_training_progress", err)
	} else {
		ps.recorder.Record(&process.ID, audit.EventTrainingInitialized, audit.LevelInfo, map[string]interface{}{
			"user_id":     userID.String(),
			"steps_total": models.TrainingStepsTotal,
		})
	}

	// Step 6: record the provisioned resources and reach the terminal state.
	if err := ps.store.MarkProvisioned(process.ID, org.ID, userID); err != nil {
		return ps.abort(process.ID, models.ProcessStatusError, "mark_provisioned", err)
	}

	ps.recorder.Record(&process.ID, audit.EventProcessProvisioned, audit.LevelInfo, map[string]interface{}{
		"organization_id": org.ID.String(),
		"user_id":         userID.String(),
	})

	// Step 7: notifications. Non-fatal, failure-isolated per destination.
	ps.dispatcher.DispatchProvisioned(process, org, temporaryPassword)

	// Step 8: external accounting/CRM sync, only if configured. Non-fatal.
	ps.syncTenant(process, org)

	return nil
}

// HandlePaymentFailed notifies operations about a failed payment. The
// process keeps whatever state it had - nothing is provisioned here.
func (ps *ProvisioningService) HandlePaymentFailed(event *Event) error {
	processID, err := uuid.Parse(event.Data.Object.ProcessRef())
	if err != nil {
		ps.recorder.Record(nil, audit.EventPaymentFailed, audit.LevelWarning, map[string]interface{}{
			"event_id": event.ID,
			"reason":   "no valid process reference",
		})
		return nil
	}

	process, err := ps.store.GetProcess(processID)
	if err != nil {
		return err
	}

	result := ps.dispatcher.DispatchPaymentFailed(process, event.Data.Object.FailureMessage)

	ps.recorder.Record(&process.ID, audit.EventPaymentFailed, audit.LevelWarning, map[string]interface{}{
		"event_id":       event.ID,
		"failure_detail": event.Data.Object.FailureMessage,
		"alert_sent":     result.Success,
	})

	return nil
}

// abort records the fatal failure, moves the process into a terminal state
// and stops the pipeline
func (ps *ProvisioningService) abort(processID uuid.UUID, status string, step string, cause error) error {
	ps.recorder.Record(&processID, audit.EventProvisioningFailed, audit.LevelError, map[string]interface{}{
		"step":   step,
		"status": status,
		"error":  cause.Error(),
	})

	if err := ps.store.MarkFailed(processID, status, fmt.Sprintf("%s: %v", step, cause)); err != nil {
		log.Printf("❌ CRITICAL: failed to mark process %s as %s: %v", processID, status, err)
	}

	return &FatalStepError{Step: step, Err: cause}
}

func (ps *ProvisioningService) recordNonFatal(processID uuid.UUID, step string, cause error) {
	log.Printf("⚠️ Non-fatal provisioning step %s failed for process %s: %v", step, processID, cause)
	ps.recorder.Record(&processID, audit.EventProvisioningFailed, audit.LevelWarning, map[string]interface{}{
		"step":      step,
		"error":     cause.Error(),
		"non_fatal": true,
	})
}

func (ps *ProvisioningService) syncTenant(process *models.OnboardingProcess, org *models.Organization) {
	if ps.syncer == nil || !ps.syncer.Enabled() {
		return
	}

	result, err := ps.syncer.SyncTenant(org, process)
	if err != nil {
		log.Printf("⚠️ CRM sync failed for process %s: %v", process.ID, err)
		ps.recorder.Record(&process.ID, audit.EventCRMSyncFailed, audit.LevelWarning, map[string]interface{}{
			"error":      err.Error(),
			"contact_id": result.ContactID,
		})
		return
	}

	if err := ps.store.SaveCRMRefs(process.ID, result.ContactID, result.InvoiceID); err != nil {
		log.Printf("⚠️ Failed to persist CRM references for process %s: %v", process.ID, err)
		ps.recorder.Record(&process.ID, audit.EventCRMSyncFailed, audit.LevelWarning, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	ps.recorder.Record(&process.ID, audit.EventCRMSyncCompleted, audit.LevelInfo, map[string]interface{}{
		"contact_id": result.ContactID,
		"invoice_id": result.InvoiceID,
	})
}

// buildOrganizationSlug derives a unique URL-safe slug from the organization
// name. A short random suffix avoids collisions between same-named tenants.
func buildOrganizationSlug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "org"
	}

	suffix, err := utils.GenerateRandomToken(3)
	if err != nil {
		return slug
	}
	return slug + "-" + suffix
}
