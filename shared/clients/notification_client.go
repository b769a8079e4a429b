package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"complyhub-backend/shared/config"
)

// NotificationClient handles communication with notification service
type NotificationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNotificationClient creates a new notification client
func NewNotificationClient() *NotificationClient {
	cfg := config.GetConfig()
	return NewNotificationClientWithBaseURL(cfg.NotificationServiceURL)
}

// NewNotificationClientWithBaseURL creates a notification client against an
// explicit base URL (used by tests)
func NewNotificationClientWithBaseURL(baseURL string) *NotificationClient {
	return &NotificationClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Email request structs

// WelcomeEmailRequest carries the customer-facing welcome message for a
// freshly provisioned tenant
type WelcomeEmailRequest struct {
	Email             string `json:"email"`
	OrganizationName  string `json:"organization_name"`
	PlanCode          string `json:"plan_code"`
	TemporaryPassword string `json:"temporary_password"`
	LoginURL          string `json:"login_url"`
}

// OpsAlertRequest carries an internal operations alert
type OpsAlertRequest struct {
	AlertType        string `json:"alert_type"`
	OrganizationName string `json:"organization_name"`
	ContactEmail     string `json:"contact_email"`
	PlanCode         string `json:"plan_code"`
	ProcessID        string `json:"process_id"`
	Detail           string `json:"detail,omitempty"`
	Timestamp        string `json:"timestamp"`
}

// SendWelcomeEmail sends the tenant welcome email with the temporary credential
func (nc *NotificationClient) SendWelcomeEmail(req WelcomeEmailRequest) error {
	return nc.sendRequest("/api/notifications/welcome", req)
}

// SendOpsAlert sends an internal operations alert (email + ops feed)
func (nc *NotificationClient) SendOpsAlert(req OpsAlertRequest) error {
	return nc.sendRequest("/api/notifications/ops-alert", req)
}

// Generic request sender
func (nc *NotificationClient) sendRequest(endpoint string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %v", err)
	}

	url := fmt.Sprintf("%s%s", nc.baseURL, endpoint)
	resp, err := nc.httpClient.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notification service returned status: %d", resp.StatusCode)
	}

	return nil
}
