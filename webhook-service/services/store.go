package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"complyhub-backend/shared/database/models"
)

// PaymentRefs carries the processor references recorded when a payment is
// confirmed
type PaymentRefs struct {
	CustomerRef string
	ChargeRef   string
	IntentRef   string
}

// ProcessStore is the persistence boundary of the provisioning pipeline.
// The orchestrator receives an implementation through its constructor so
// tests can substitute a double for every external write.
type ProcessStore interface {
	GetProcess(id uuid.UUID) (*models.OnboardingProcess, error)
	// ClaimForProvisioning atomically transitions created|paid into
	// provisioning_in_progress and records the payment references. Returns
	// false when another delivery already holds or finished the claim.
	ClaimForProvisioning(id uuid.UUID, refs PaymentRefs) (bool, error)
	CreateOrganization(org *models.Organization) error
	CreateRoleGrant(grant *models.RoleGrant) error
	CreateTrainingProgress(progress *models.TrainingProgress) error
	MarkProvisioned(id uuid.UUID, orgID, userID uuid.UUID) error
	MarkFailed(id uuid.UUID, status string, detail string) error
	SaveCRMRefs(id uuid.UUID, contactID, invoiceID string) error
	RecordChargeRef(id uuid.UUID, chargeRef string) error
	RecordIntentRef(id uuid.UUID, intentRef string) error
}

// GormProcessStore is the Postgres-backed ProcessStore
type GormProcessStore struct {
	db *gorm.DB
}

// NewGormProcessStore creates a store on top of an open GORM connection
func NewGormProcessStore(db *gorm.DB) *GormProcessStore {
	return &GormProcessStore{db: db}
}

func (s *GormProcessStore) GetProcess(id uuid.UUID) (*models.OnboardingProcess, error) {
	var process models.OnboardingProcess
	if err := s.db.First(&process, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProcessNotFound
		}
		return nil, err
	}
	return &process, nil
}

// ClaimForProvisioning is a single conditional UPDATE, not a read-then-write:
// under concurrent duplicate delivery exactly one caller sees RowsAffected == 1.
func (s *GormProcessStore) ClaimForProvisioning(id uuid.UUID, refs PaymentRefs) (bool, error) {
	now := time.Now().UTC()
	result := s.db.Model(&models.OnboardingProcess{}).
		Where("id = ? AND status IN ?", id, []string{models.ProcessStatusCreated, models.ProcessStatusPaid}).
		Updates(map[string]interface{}{
			"status":               models.ProcessStatusProvisioning,
			"payment_customer_ref": refs.CustomerRef,
			"payment_charge_ref":   refs.ChargeRef,
			"payment_intent_ref":   refs.IntentRef,
			"paid_at":              now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (s *GormProcessStore) CreateOrganization(org *models.Organization) error {
	return s.db.Create(org).Error
}

func (s *GormProcessStore) CreateRoleGrant(grant *models.RoleGrant) error {
	return s.db.Create(grant).Error
}

func (s *GormProcessStore) CreateTrainingProgress(progress *models.TrainingProgress) error {
	return s.db.Create(progress).Error
}

func (s *GormProcessStore) MarkProvisioned(id uuid.UUID, orgID, userID uuid.UUID) error {
	now := time.Now().UTC()
	return s.db.Model(&models.OnboardingProcess{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           models.ProcessStatusProvisioned,
			"organization_id":  orgID,
			"delegate_user_id": userID,
			"provisioned_at":   now,
		}).Error
}

func (s *GormProcessStore) MarkFailed(id uuid.UUID, status string, detail string) error {
	now := time.Now().UTC()
	return s.db.Model(&models.OnboardingProcess{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"error_detail": detail,
			"failed_at":    now,
		}).Error
}

func (s *GormProcessStore) SaveCRMRefs(id uuid.UUID, contactID, invoiceID string) error {
	return s.db.Model(&models.OnboardingProcess{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"crm_contact_id": contactID,
			"crm_invoice_id": invoiceID,
		}).Error
}

func (s *GormProcessStore) RecordChargeRef(id uuid.UUID, chargeRef string) error {
	return s.db.Model(&models.OnboardingProcess{}).
		Where("id = ?", id).
		Update("payment_charge_ref", chargeRef).Error
}

func (s *GormProcessStore) RecordIntentRef(id uuid.UUID, intentRef string) error {
	return s.db.Model(&models.OnboardingProcess{}).
		Where("id = ?", id).
		Update("payment_intent_ref", intentRef).Error
}
