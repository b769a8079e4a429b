package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"complyhub-backend/shared/database/models/audit"
	"complyhub-backend/webhook-service/services"
)

const testSecret = "whsec_handler_test"

type recordedEvent struct {
	EventType string
	Level     audit.Level
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *fakeRecorder) Record(processID *uuid.UUID, eventType string, level audit.Level, payload map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{EventType: eventType, Level: level})
}

func (r *fakeRecorder) count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.EventType == eventType {
			n++
		}
	}
	return n
}

type fakeArchiver struct {
	archived map[string][]byte
	fail     bool
}

func (a *fakeArchiver) ArchivePayload(eventID string, payload []byte) error {
	if a.fail {
		return fmt.Errorf("object store unavailable")
	}
	if a.archived == nil {
		a.archived = make(map[string][]byte)
	}
	a.archived[eventID] = payload
	return nil
}

type fakeCache struct {
	seen map[string]bool
}

func (c *fakeCache) MarkEventSeen(eventID string) (bool, error) {
	if c.seen == nil {
		c.seen = make(map[string]bool)
	}
	if c.seen[eventID] {
		return false, nil
	}
	c.seen[eventID] = true
	return true, nil
}

func newTestHandler(recorder *fakeRecorder, archiver services.PayloadArchiver, cache EventCache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	// An event type the router does not know keeps the test focused on the
	// intake path; orchestration has its own tests.
	router := services.NewEventRouter(nil, nil, recorder)
	handler := NewWebhookHandler(testSecret, router, recorder, archiver, cache)

	engine := gin.New()
	engine.POST("/api/webhooks/payment", handler.HandlePaymentWebhook)
	return engine
}

func signedRequest(t *testing.T, payload []byte, secret string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", bytes.NewReader(payload))
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	req.Header.Set(services.SignatureHeader,
		fmt.Sprintf("t=%s,v1=%s", timestamp, services.ComputeSignature(payload, timestamp, secret)))
	return req
}

func TestWebhookRejectsInvalidSignatureWithoutSideEffects(t *testing.T) {
	recorder := &fakeRecorder{}
	archiver := &fakeArchiver{}
	engine := newTestHandler(recorder, archiver, nil)

	payload := []byte(`{"type":"invoice.created","id":"evt_1"}`)
	req := signedRequest(t, payload, "whsec_wrong")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(recorder.events) != 0 {
		t.Fatalf("unauthenticated request produced %d audit writes", len(recorder.events))
	}
	if len(archiver.archived) != 0 {
		t.Fatal("unauthenticated request was archived")
	}
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	recorder := &fakeRecorder{}
	engine := newTestHandler(recorder, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment",
		bytes.NewReader([]byte(`{"type":"invoice.created","id":"evt_1"}`)))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(recorder.events) != 0 {
		t.Fatal("missing signature produced audit writes")
	}
}

func TestWebhookAcceptsValidEvent(t *testing.T) {
	recorder := &fakeRecorder{}
	archiver := &fakeArchiver{}
	engine := newTestHandler(recorder, archiver, nil)

	payload := []byte(`{"type":"invoice.created","id":"evt_2"}`)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, signedRequest(t, payload, testSecret))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unparseable response: %v", err)
	}
	if !body["received"] {
		t.Fatalf("unexpected response body: %s", w.Body.String())
	}

	if recorder.count(audit.EventWebhookReceived) != 1 {
		t.Fatal("receipt was not audited")
	}
	if recorder.count(audit.EventWebhookIgnored) != 1 {
		t.Fatal("unknown event type was not audited as ignored")
	}
	if !bytes.Equal(archiver.archived["evt_2"], payload) {
		t.Fatal("raw payload was not archived byte-for-byte")
	}
	if recorder.count(audit.EventPayloadArchived) != 1 {
		t.Fatal("archive write was not audited")
	}
}

func TestWebhookDeduplicatesOnEventID(t *testing.T) {
	recorder := &fakeRecorder{}
	engine := newTestHandler(recorder, nil, &fakeCache{})

	payload := []byte(`{"type":"invoice.created","id":"evt_3"}`)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, signedRequest(t, payload, testSecret))
		if w.Code != http.StatusOK {
			t.Fatalf("delivery %d: expected 200, got %d", i+1, w.Code)
		}
	}

	if recorder.count(audit.EventWebhookIgnored) != 1 {
		t.Fatalf("expected the event to be routed once, routed %d times", recorder.count(audit.EventWebhookIgnored))
	}
	if recorder.count(audit.EventAlreadyHandled) != 1 {
		t.Fatalf("expected one duplicate-suppression audit entry, got %d", recorder.count(audit.EventAlreadyHandled))
	}
}

func TestWebhookArchiveFailureDoesNotBlockIntake(t *testing.T) {
	recorder := &fakeRecorder{}
	engine := newTestHandler(recorder, &fakeArchiver{fail: true}, nil)

	payload := []byte(`{"type":"invoice.created","id":"evt_4"}`)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, signedRequest(t, payload, testSecret))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 despite archive failure, got %d", w.Code)
	}
	if recorder.count(audit.EventPayloadArchived) != 0 {
		t.Fatal("failed archive write was audited as success")
	}
}
