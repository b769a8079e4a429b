package clients

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestIdentityClientCreateAccount(t *testing.T) {
	accountID := uuid.New()
	var received CreateAccountRequest
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/internal/accounts" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("unparseable request body: %v", err)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]string{"id": accountID.String(), "email": received.Email},
		})
	}))
	defer server.Close()

	client := NewIdentityClientWithBaseURL(server.URL)
	orgID := uuid.New()

	id, err := client.CreateAccount(CreateAccountRequest{
		Email:             "a@x.com",
		TemporaryPassword: "tempPassword1234",
		OrganizationID:    orgID,
		PlanCode:          "BASIC",
	})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if id != accountID {
		t.Fatalf("expected account ID %s, got %s", accountID, id)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		t.Fatalf("internal call missing service token: %q", authHeader)
	}
	if received.Email != "a@x.com" || received.OrganizationID != orgID {
		t.Fatalf("unexpected request payload: %+v", received)
	}
}

func TestIdentityClientSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "email already registered to another organization",
		})
	}))
	defer server.Close()

	client := NewIdentityClientWithBaseURL(server.URL)
	if _, err := client.CreateAccount(CreateAccountRequest{Email: "a@x.com"}); err == nil {
		t.Fatal("expected error for conflicting account")
	}
}

func TestIdentityClientRejectsEnvelopeWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	client := NewIdentityClientWithBaseURL(server.URL)
	if _, err := client.CreateAccount(CreateAccountRequest{Email: "a@x.com"}); err == nil {
		t.Fatal("expected error for a success envelope with no account ID")
	}
}
