package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"complyhub-backend/shared/database/models/audit"
	"complyhub-backend/webhook-service/services"
)

// EventCache is the fast-path duplicate filter for processor event IDs
type EventCache interface {
	MarkEventSeen(eventID string) (bool, error)
}

// WebhookHandler receives signed payment processor events
type WebhookHandler struct {
	secret   string
	router   *services.EventRouter
	recorder services.AuditRecorder
	archiver services.PayloadArchiver
	cache    EventCache
}

// NewWebhookHandler creates the webhook handler. Archiver and cache are
// optional; nil disables the payload archive and the dedup fast path.
func NewWebhookHandler(secret string, router *services.EventRouter, recorder services.AuditRecorder, archiver services.PayloadArchiver, cache EventCache) *WebhookHandler {
	return &WebhookHandler{
		secret:   secret,
		router:   router,
		recorder: recorder,
		archiver: archiver,
		cache:    cache,
	}
}

// HandlePaymentWebhook processes a signed payment event
// @Summary Payment processor webhook
// @Description Accepts signed payment events and drives tenant provisioning
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Payment-Signature header string true "Event signature (t=<unix>,v1=<hex>)"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "Signature or configuration failure"
// @Router /webhooks/payment [post]
func (h *WebhookHandler) HandlePaymentWebhook(c *gin.Context) {
	// The signature covers the raw bytes as sent; read them before any
	// JSON binding can re-encode the payload.
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	event, err := services.VerifySignature(raw, c.GetHeader(services.SignatureHeader), h.secret)
	if err != nil {
		// Nothing is written for an unauthenticated request - not even an
		// audit event.
		log.Printf("🚫 Webhook rejected: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.recorder.Record(nil, audit.EventWebhookReceived, audit.LevelInfo, map[string]interface{}{
		"event_id":   event.ID,
		"event_type": string(event.Type),
	})

	h.archive(event, raw)

	// Fast-path dedup on the processor event ID. Best effort only: the
	// conditional claim in the orchestrator remains the real guard.
	if h.cache != nil {
		if first, err := h.cache.MarkEventSeen(event.ID); err == nil && !first {
			h.recorder.Record(nil, audit.EventAlreadyHandled, audit.LevelInfo, map[string]interface{}{
				"event_id": event.ID,
				"source":   "event_cache",
			})
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
	}

	if err := h.router.Route(event); err != nil {
		// The event was authenticated and routed; the processor must not
		// redeliver it. Failures from here on are operational concerns,
		// surfaced through the audit trail.
		var fatal *services.FatalStepError
		switch {
		case errors.As(err, &fatal):
			log.Printf("❌ Provisioning aborted for event %s: %v", event.ID, err)
		case errors.Is(err, services.ErrProcessNotFound):
			log.Printf("❌ Event %s references an unknown process: %v", event.ID, err)
		default:
			log.Printf("❌ Event %s handling failed: %v", event.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *WebhookHandler) archive(event *services.Event, raw []byte) {
	if h.archiver == nil {
		return
	}
	if err := h.archiver.ArchivePayload(event.ID, raw); err != nil {
		log.Printf("⚠️ Payload archive failed for event %s: %v", event.ID, err)
		return
	}
	h.recorder.Record(nil, audit.EventPayloadArchived, audit.LevelInfo, map[string]interface{}{
		"event_id": event.ID,
	})
}
