package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/infrastructure/logger"
	"github.com/novizna/ninjasync/internal/interfaces/http/dto"
)

// signatureHeader carries the HMAC of the webhook body
const signatureHeader = "X-Ninja-Signature"

// webhookSyncer lands inbound webhook records
type webhookSyncer interface {
	SyncRecordIn(ctx context.Context, entityType syncdomain.EntityType, ninjaCompanyID string, raw json.RawMessage) error
	MarkDeletedRemotely(ctx context.Context, entityType syncdomain.EntityType, ninjaID string) error
}

// defaultResolver resolves the fallback company mapping
type defaultResolver interface {
	ResolveDefault(ctx context.Context) (*syncdomain.CompanyMapping, error)
}

// WebhookHandler receives Invoice Ninja webhook deliveries
type WebhookHandler struct {
	BaseHandler
	syncer   webhookSyncer
	defaults defaultResolver
	secret   string
	logger   *zap.Logger
}

// NewWebhookHandler creates a webhook handler. An empty secret disables
// signature verification.
func NewWebhookHandler(syncer webhookSyncer, defaults defaultResolver, secret string, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{syncer: syncer, defaults: defaults, secret: secret, logger: log}
}

// RegisterRoutes registers webhook routes
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/invoice-ninja", h.Receive)
}

// Receive handles one webhook delivery. The signature is verified against
// the raw body before any parsing happens.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "unable to read request body")
		return
	}

	if h.secret != "" && !h.verifySignature(body, c.GetHeader(signatureHeader)) {
		h.Unauthorized(c, "invalid webhook signature")
		return
	}

	var req dto.WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "invalid webhook payload")
		return
	}
	if req.EventType == "" || req.EntityType == "" {
		h.BadRequest(c, "event_type and entity_type are required")
		return
	}

	entityType, ok := syncdomain.EntityTypeFromWebhook(req.EntityType)
	if !ok {
		h.BadRequest(c, "unknown webhook entity type: "+req.EntityType)
		return
	}

	ctx := c.Request.Context()
	log := logger.L(ctx).With(
		zap.String("event_type", req.EventType),
		zap.String("entity_type", entityType.String()))

	switch req.EventType {
	case "created", "updated":
		companyID, err := h.resolveCompany(ctx, req.Data.CompanyID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if err := h.syncer.SyncRecordIn(ctx, entityType, companyID, req.Data.Raw); err != nil {
			log.Warn("webhook record rejected", zap.Error(err))
			h.HandleError(c, err)
			return
		}
		log.Info("webhook record landed", zap.String("remote_id", req.Data.ID))
		h.Message(c, "record synced")

	case "deleted":
		if req.Data.ID == "" {
			h.BadRequest(c, "deleted event has no record id")
			return
		}
		if err := h.syncer.MarkDeletedRemotely(ctx, entityType, req.Data.ID); err != nil {
			h.HandleError(c, err)
			return
		}
		log.Info("remote deletion recorded", zap.String("remote_id", req.Data.ID))
		h.Message(c, "deletion recorded")

	default:
		h.BadRequest(c, "unknown event type: "+req.EventType)
	}
}

// resolveCompany picks the remote company the record belongs to. Payloads
// without a company_id fall back to the default mapping.
func (h *WebhookHandler) resolveCompany(ctx context.Context, companyID string) (string, error) {
	if companyID != "" {
		return companyID, nil
	}
	mapping, err := h.defaults.ResolveDefault(ctx)
	if err != nil {
		return "", err
	}
	return mapping.NinjaCompanyID, nil
}

// verifySignature checks the hex HMAC-SHA256 of the body in constant time
func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
