package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"complyhub-backend/shared/database/models"
)

// SyncResult carries the external identifiers returned by the accounting/CRM
// system
type SyncResult struct {
	ContactID string
	InvoiceID string
}

// TenantSyncer pushes a provisioned tenant to the external accounting/CRM
// system. The push is best-effort: a failed sync never fails provisioning,
// and a background reconciliation job retries it later.
type TenantSyncer interface {
	Enabled() bool
	SyncTenant(org *models.Organization, process *models.OnboardingProcess) (SyncResult, error)
}

// CRMSyncService talks to the external accounting/CRM HTTP API
type CRMSyncService struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewCRMSyncService creates the sync adapter. Empty credentials disable it.
func NewCRMSyncService(apiURL, apiKey string) *CRMSyncService {
	return &CRMSyncService{
		apiURL: apiURL,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Enabled reports whether CRM credentials are configured
func (s *CRMSyncService) Enabled() bool {
	return s.apiURL != "" && s.apiKey != ""
}

type crmContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

type crmInvoiceRequest struct {
	ContactID  string `json:"contact_id"`
	PlanCode   string `json:"plan_code"`
	ChargeRef  string `json:"charge_ref"`
	ExternalID string `json:"external_id"`
}

type crmResponse struct {
	ID string `json:"id"`
}

// SyncTenant creates or updates a contact and an invoice record for the new
// tenant and returns the external identifiers
func (s *CRMSyncService) SyncTenant(org *models.Organization, process *models.OnboardingProcess) (SyncResult, error) {
	contact := crmContactRequest{
		Name:    org.Name,
		Email:   org.ContactEmail,
		Phone:   org.ContactPhone,
		Address: org.ContactAddress,
		TaxID:   org.TaxID,
	}

	contactID, err := s.post("/contacts", contact)
	if err != nil {
		return SyncResult{}, fmt.Errorf("contact sync failed: %w", err)
	}

	invoice := crmInvoiceRequest{
		ContactID:  contactID,
		PlanCode:   org.PlanCode,
		ChargeRef:  process.PaymentChargeRef,
		ExternalID: process.ID.String(),
	}

	invoiceID, err := s.post("/invoices", invoice)
	if err != nil {
		// Contact exists but the invoice does not; report the partial state
		// so reconciliation can finish the job.
		return SyncResult{ContactID: contactID}, fmt.Errorf("invoice sync failed: %w", err)
	}

	return SyncResult{ContactID: contactID, InvoiceID: invoiceID}, nil
}

func (s *CRMSyncService) post(endpoint string, payload interface{}) (string, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL+endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("CRM returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed crmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse CRM response: %v", err)
	}
	if parsed.ID == "" {
		return "", fmt.Errorf("CRM response has no id")
	}

	return parsed.ID, nil
}
