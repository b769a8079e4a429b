package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// SignatureHeader is the HTTP header carrying the processor signature
const SignatureHeader = "X-Payment-Signature"

// VerifySignature authenticates a raw webhook body against the shared secret
// and returns the parsed, trusted event on success.
//
// The header format is "t=<unix>,v1=<hex>"; the signature is HMAC-SHA256 over
// "<t>.<raw body>". Verification operates on the raw bytes as received - any
// re-encoding of the payload would invalidate the signature.
func VerifySignature(payload []byte, header string, secret string) (*Event, error) {
	if secret == "" {
		return nil, ErrSecretNotConfigured
	}

	timestamp, signature, err := parseSignatureHeader(header)
	if err != nil {
		return nil, err
	}

	expected := ComputeSignature(payload, timestamp, secret)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, ErrInvalidSignature
	}

	return ParseEvent(payload)
}

// ComputeSignature returns the hex HMAC-SHA256 the processor is expected to
// send for a given body and timestamp
func ComputeSignature(payload []byte, timestamp string, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// parseSignatureHeader extracts the timestamp and v1 signature parts
func parseSignatureHeader(header string) (timestamp, signature string, err error) {
	if header == "" {
		return "", "", ErrMissingSignature
	}

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			signature = value
		}
	}

	if timestamp == "" || signature == "" {
		return "", "", fmt.Errorf("%w: expected t=<unix>,v1=<hex>", ErrMissingSignature)
	}

	return timestamp, signature, nil
}
