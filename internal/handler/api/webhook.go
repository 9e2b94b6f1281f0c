package api

import (
	"errors"
	"io"
	"net/http"

	"orderflow/internal/infra/shopify"
	"orderflow/internal/pkg/config"
	"orderflow/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	syncCommands commands.SyncCommands
	secret       string
}

func NewWebhookHandler(syncCommands commands.SyncCommands, cfg config.ShopifyConfig) *WebhookHandler {
	return &WebhookHandler{
		syncCommands: syncCommands,
		secret:       cfg.WebhookSecret,
	}
}

// @Summary Ingest platform webhook
// @Description Verify the HMAC signature and mirror the order payload locally
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Shopify-Hmac-Sha256 header string true "Payload signature"
// @Param X-Shopify-Shop-Domain header string true "Shop domain"
// @Param X-Shopify-Topic header string true "Webhook topic"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /webhooks/shopify [post]
func (h *WebhookHandler) Ingest(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Could not read body",
		})
		return
	}

	signature := c.GetHeader("X-Shopify-Hmac-Sha256")
	if !shopify.VerifyWebhook(h.secret, body, signature) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid webhook signature",
		})
		return
	}

	shopDomain := c.GetHeader("X-Shopify-Shop-Domain")
	topic := c.GetHeader("X-Shopify-Topic")
	if shopDomain == "" || topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing webhook headers",
		})
		return
	}

	if err := h.syncCommands.IngestOrderWebhook(c.Request.Context(), shopDomain, topic, body); err != nil {
		if errors.Is(err, commands.ErrInvalidPayload) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Malformed payload",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
