package models

import (
	"time"

	"github.com/google/uuid"
)

// Onboarding process states. Provisioned and Error are terminal;
// NeedsIdentityRetry is a parked state targeted by recovery tooling.
const (
	ProcessStatusCreated            = "created"
	ProcessStatusPaid               = "paid"
	ProcessStatusProvisioning       = "provisioning_in_progress"
	ProcessStatusProvisioned        = "provisioned"
	ProcessStatusNeedsIdentityRetry = "needs_identity_retry"
	ProcessStatusError              = "error"
)

// OnboardingProcess is the aggregate root of the provisioning pipeline.
// One row per purchase, created at checkout initiation and never deleted.
type OnboardingProcess struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContactEmail     string    `json:"contact_email" gorm:"size:255;not null"`
	OrganizationName string    `json:"organization_name" gorm:"size:200;not null"`
	PlanCode         string    `json:"plan_code" gorm:"size:50;not null"`
	Status           string    `json:"status" gorm:"size:40;not null;default:'created';index"`

	// Payment processor references
	PaymentCustomerRef string `json:"payment_customer_ref" gorm:"size:100"`
	PaymentChargeRef   string `json:"payment_charge_ref" gorm:"size:100"`
	PaymentIntentRef   string `json:"payment_intent_ref" gorm:"size:100"`

	// Provisioned resource references
	OrganizationID *uuid.UUID `json:"organization_id" gorm:"type:uuid"`
	DelegateUserID *uuid.UUID `json:"delegate_user_id" gorm:"type:uuid"`

	// External accounting/CRM sync references
	CRMContactID string `json:"crm_contact_id" gorm:"size:100"`
	CRMInvoiceID string `json:"crm_invoice_id" gorm:"size:100"`

	ErrorDetail string `json:"error_detail,omitempty" gorm:"type:text"`

	PaidAt        *time.Time `json:"paid_at"`
	ProvisionedAt *time.Time `json:"provisioned_at"`
	FailedAt      *time.Time `json:"failed_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName returns the table name for OnboardingProcess
func (OnboardingProcess) TableName() string {
	return "onboarding_processes"
}

// IsTerminal reports whether no further provisioning may run for this process.
func (p *OnboardingProcess) IsTerminal() bool {
	switch p.Status {
	case ProcessStatusProvisioned, ProcessStatusNeedsIdentityRetry, ProcessStatusError:
		return true
	}
	return false
}
