package utils

import (
	"strings"
	"testing"
)

func TestServiceTokenRoundTrip(t *testing.T) {
	token, err := GenerateServiceToken("webhook-service")
	if err != nil {
		t.Fatalf("GenerateServiceToken failed: %v", err)
	}

	claims, err := ValidateServiceToken(token)
	if err != nil {
		t.Fatalf("ValidateServiceToken failed: %v", err)
	}
	if claims.Service != "webhook-service" {
		t.Fatalf("unexpected service claim: %s", claims.Service)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("service token has no expiry")
	}
}

func TestValidateServiceTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateServiceToken("not.a.token"); err == nil {
		t.Fatal("expected error for a malformed token")
	}
}

func TestValidateServiceTokenRejectsTamperedToken(t *testing.T) {
	token, err := GenerateServiceToken("webhook-service")
	if err != nil {
		t.Fatalf("GenerateServiceToken failed: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d parts", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, err := ValidateServiceToken(tampered); err == nil {
		t.Fatal("expected error for a tampered signature")
	}
}
