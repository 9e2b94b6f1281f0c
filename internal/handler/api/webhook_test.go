//go:build unit

package api_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"testing"

	"orderflow/internal/handler/api"
	"orderflow/internal/pkg/config"
	"orderflow/internal/usecase/commands"
	"orderflow/tests/common/httptest"
	commandsmock "orderflow/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WebhookHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockSync *commandsmock.MockSyncCommands
	handler  *api.WebhookHandler
	secret   string
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	cfg := config.NewTestConfig()
	s.secret = cfg.Shopify.WebhookSecret

	s.mockCtrl = gomock.NewController(s.T())
	s.mockSync = commandsmock.NewMockSyncCommands(s.mockCtrl)
	s.handler = api.NewWebhookHandler(s.mockSync, cfg.Shopify)

	s.router.POST("/webhooks/shopify", s.handler.Ingest)
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (s *WebhookHandlerTestSuite) TestIngest() {
	url := "/webhooks/shopify"
	body := []byte(`{"id":4001,"tags":"vip"}`)

	s.Run("success: verified payload is mirrored", func() {
		s.mockSync.EXPECT().IngestOrderWebhook(gomock.Any(), "demo.myshopify.com", "orders/updated", body).
			Return(nil).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, body, map[string]string{
			"X-Shopify-Hmac-Sha256": s.sign(body),
			"X-Shopify-Shop-Domain": "demo.myshopify.com",
			"X-Shopify-Topic":       "orders/updated",
			"Content-Type":          "application/json",
		})

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 401 Unauthorized on bad signature", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, body, map[string]string{
			"X-Shopify-Hmac-Sha256": "bm90LWEtcmVhbC1zaWduYXR1cmU=",
			"X-Shopify-Shop-Domain": "demo.myshopify.com",
			"X-Shopify-Topic":       "orders/updated",
		})

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid webhook signature")
	})

	s.Run("error: 401 Unauthorized when signature is for different bytes", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, body, map[string]string{
			"X-Shopify-Hmac-Sha256": s.sign([]byte(`{"id":4002}`)),
			"X-Shopify-Shop-Domain": "demo.myshopify.com",
			"X-Shopify-Topic":       "orders/updated",
		})

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid webhook signature")
	})

	s.Run("error: 400 Bad Request without shop or topic headers", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, body, map[string]string{
			"X-Shopify-Hmac-Sha256": s.sign(body),
		})

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Missing webhook headers")
	})

	s.Run("error: 400 Bad Request on malformed payload", func() {
		bad := []byte(`{"tags":`)
		s.mockSync.EXPECT().IngestOrderWebhook(gomock.Any(), "demo.myshopify.com", "orders/updated", bad).
			Return(commands.ErrInvalidPayload).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, bad, map[string]string{
			"X-Shopify-Hmac-Sha256": s.sign(bad),
			"X-Shopify-Shop-Domain": "demo.myshopify.com",
			"X-Shopify-Topic":       "orders/updated",
		})

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Malformed payload")
	})
}
