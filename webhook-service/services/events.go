package services

import (
	"encoding/json"
	"fmt"
)

// EventType tags the payment processor event kinds this pipeline understands
type EventType string

const (
	EventPaymentCompleted       EventType = "payment.completed"
	EventPaymentIntentSucceeded EventType = "payment_intent.succeeded"
	EventChargeSucceeded        EventType = "charge.succeeded"
	EventPaymentFailed          EventType = "payment.failed"
)

// Event is the trusted, parsed webhook envelope. Only the Signature Verifier
// produces one; everything downstream may assume it came from the processor.
type Event struct {
	Type EventType `json:"type"`
	ID   string    `json:"id"`
	Data struct {
		Object EventObject `json:"object"`
	} `json:"data"`
}

// EventObject is the payment object carried inside the envelope
type EventObject struct {
	CustomerRef    string            `json:"customer"`
	ChargeRef      string            `json:"charge"`
	IntentRef      string            `json:"payment_intent"`
	AmountTotal    int64             `json:"amount_total"`
	Currency       string            `json:"currency"`
	FailureMessage string            `json:"failure_message,omitempty"`
	Metadata       map[string]string `json:"metadata"`
}

// ProcessRef returns the onboarding process ID embedded in the event metadata
func (o EventObject) ProcessRef() string {
	if v := o.Metadata["process_id"]; v != "" {
		return v
	}
	return o.Metadata["processId"]
}

// ParseEvent decodes the raw webhook body into a typed envelope
func ParseEvent(raw []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("failed to parse event envelope: %w", err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("event envelope has no type")
	}
	return &event, nil
}
