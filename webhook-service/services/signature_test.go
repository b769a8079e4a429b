package services

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

const testSecret = "whsec_test_secret"

func signedHeader(payload []byte, secret string) string {
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	return fmt.Sprintf("t=%s,v1=%s", timestamp, ComputeSignature(payload, timestamp, secret))
}

func TestVerifySignatureAcceptsValidPayload(t *testing.T) {
	payload := []byte(`{"type":"payment.completed","id":"evt_1","data":{"object":{"customer":"cus_1","metadata":{"process_id":"p1"}}}}`)

	event, err := VerifySignature(payload, signedHeader(payload, testSecret), testSecret)
	if err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
	if event.Type != EventPaymentCompleted || event.ID != "evt_1" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Data.Object.CustomerRef != "cus_1" {
		t.Fatalf("unexpected object: %+v", event.Data.Object)
	}
}

func TestVerifySignatureRejectsTamperedPayload(t *testing.T) {
	payload := []byte(`{"type":"payment.completed","id":"evt_1"}`)
	header := signedHeader(payload, testSecret)

	tampered := []byte(`{"type":"payment.completed","id":"evt_2"}`)
	if _, err := VerifySignature(tampered, header, testSecret); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"type":"payment.completed","id":"evt_1"}`)
	header := signedHeader(payload, "whsec_other")

	if _, err := VerifySignature(payload, header, testSecret); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifySignatureRejectsMissingHeader(t *testing.T) {
	if _, err := VerifySignature([]byte(`{}`), "", testSecret); !errors.Is(err, ErrMissingSignature) {
		t.Fatalf("expected ErrMissingSignature, got %v", err)
	}
}

func TestVerifySignatureRejectsMalformedHeader(t *testing.T) {
	cases := []string{
		"v1=deadbeef",
		"t=1700000000",
		"garbage",
		"t=,v1=",
	}
	for _, header := range cases {
		if _, err := VerifySignature([]byte(`{}`), header, testSecret); !errors.Is(err, ErrMissingSignature) {
			t.Fatalf("header %q: expected ErrMissingSignature, got %v", header, err)
		}
	}
}

func TestVerifySignatureRequiresConfiguredSecret(t *testing.T) {
	payload := []byte(`{"type":"payment.completed"}`)
	header := signedHeader(payload, testSecret)

	if _, err := VerifySignature(payload, header, ""); !errors.Is(err, ErrSecretNotConfigured) {
		t.Fatalf("expected ErrSecretNotConfigured, got %v", err)
	}
}

func TestVerifySignatureRejectsUnparseableBody(t *testing.T) {
	payload := []byte(`not json at all`)
	header := signedHeader(payload, testSecret)

	if _, err := VerifySignature(payload, header, testSecret); err == nil {
		t.Fatal("expected parse error for non-JSON body")
	}
}
