package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"complyhub-backend/shared/database/models"
)

func crmTestServer(t *testing.T, failInvoices bool) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			t.Errorf("missing bearer token on %s", r.URL.Path)
		}

		switch r.URL.Path {
		case "/contacts":
			json.NewEncoder(w).Encode(map[string]string{"id": "crm_c1"})
		case "/invoices":
			if failInvoices {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"id": "crm_i1"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	return server, &paths
}

func TestCRMSyncTenant(t *testing.T) {
	server, paths := crmTestServer(t, false)
	defer server.Close()

	syncer := NewCRMSyncService(server.URL, "key_test")
	if !syncer.Enabled() {
		t.Fatal("syncer with credentials should be enabled")
	}

	org := &models.Organization{Name: "Club X", ContactEmail: "a@x.com", PlanCode: "BASIC"}
	process := testProcess()
	process.PaymentChargeRef = "ch_456"

	result, err := syncer.SyncTenant(org, process)
	if err != nil {
		t.Fatalf("SyncTenant failed: %v", err)
	}
	if result.ContactID != "crm_c1" || result.InvoiceID != "crm_i1" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(*paths) != 2 || (*paths)[0] != "/contacts" || (*paths)[1] != "/invoices" {
		t.Fatalf("unexpected call order: %v", *paths)
	}
}

func TestCRMSyncInvoiceFailureReturnsPartialResult(t *testing.T) {
	server, _ := crmTestServer(t, true)
	defer server.Close()

	syncer := NewCRMSyncService(server.URL, "key_test")
	result, err := syncer.SyncTenant(&models.Organization{Name: "Club X"}, testProcess())
	if err == nil {
		t.Fatal("expected invoice sync error")
	}
	// The contact was created; reconciliation needs its ID.
	if result.ContactID != "crm_c1" {
		t.Fatalf("partial result lost the contact ID: %+v", result)
	}
	if result.InvoiceID != "" {
		t.Fatalf("invoice ID set despite failure: %+v", result)
	}
}

func TestCRMSyncDisabledWithoutCredentials(t *testing.T) {
	if NewCRMSyncService("", "").Enabled() {
		t.Fatal("syncer without credentials must be disabled")
	}
	if NewCRMSyncService("https://crm.example.com", "").Enabled() {
		t.Fatal("syncer without an API key must be disabled")
	}
}
