package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"complyhub-backend/shared/config"
	utils "complyhub-backend/shared/utils/auth"
)

// IdentityClient handles communication with the identity service
type IdentityClient struct {
	baseURL     string
	httpClient  *http.Client
	serviceName string
}

// NewIdentityClient creates a new identity client
func NewIdentityClient() *IdentityClient {
	cfg := config.GetConfig()
	return NewIdentityClientWithBaseURL(cfg.IdentityServiceURL)
}

// NewIdentityClientWithBaseURL creates an identity client against an explicit
// base URL (used by tests)
func NewIdentityClientWithBaseURL(baseURL string) *IdentityClient {
	return &IdentityClient{
		baseURL:     baseURL,
		serviceName: "webhook-service",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateAccountRequest is the internal account-creation payload
type CreateAccountRequest struct {
	Email             string    `json:"email"`
	TemporaryPassword string    `json:"temporary_password"`
	FirstName         string    `json:"first_name,omitempty"`
	LastName          string    `json:"last_name,omitempty"`
	OrganizationID    uuid.UUID `json:"organization_id"`
	PlanCode          string    `json:"plan_code"`
}

// CreateAccountResponse is the identity service response envelope
type CreateAccountResponse struct {
	Success bool `json:"success"`
	Data    struct {
		ID    uuid.UUID `json:"id"`
		Email string    `json:"email"`
	} `json:"data"`
	Error string `json:"error,omitempty"`
}

// CreateAccount creates a delegate account with a temporary credential.
// The returned ID is the authentication principal for the new tenant.
func (ic *IdentityClient) CreateAccount(req CreateAccountRequest) (uuid.UUID, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	url := fmt.Sprintf("%s/api/internal/accounts", ic.baseURL)
	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	token, err := utils.GenerateServiceToken(ic.serviceName)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to mint service token: %v", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := ic.httpClient.Do(httpReq)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return uuid.Nil, fmt.Errorf("identity service returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed CreateAccountResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse identity service response: %v", err)
	}
	if !parsed.Success || parsed.Data.ID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("identity service rejected account creation: %s", parsed.Error)
	}

	return parsed.Data.ID, nil
}
