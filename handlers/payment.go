package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxWebhookBody bounds the payload read from the payment processor.
const maxWebhookBody = int64(65536)

// WebhookProcessor verifies and applies a signed payment processor event.
type WebhookProcessor interface {
	Handle(ctx context.Context, payload []byte, signature string) error
}

type PaymentHandler struct {
	Webhooks WebhookProcessor
}

func NewPaymentHandler(p WebhookProcessor) *PaymentHandler {
	return &PaymentHandler{Webhooks: p}
}

// StripeWebhookHandler acknowledges an event once it has been applied or deliberately ignored.
// Any other failure answers non-2xx so Stripe redelivers.
func (h *PaymentHandler) StripeWebhookHandler(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "read_failed", "message": "could not read request body"})
		return
	}

	if err := h.Webhooks.Handle(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Debug("Webhook accepted", zap.Int("bytes", len(payload)))
	c.JSON(http.StatusOK, gin.H{"received": true})
}
