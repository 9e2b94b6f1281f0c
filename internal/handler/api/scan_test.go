//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"orderflow/internal/domain/order"
	"orderflow/internal/domain/workflow"
	"orderflow/internal/handler/api"
	reqdto "orderflow/internal/handler/dto/request"
	resdto "orderflow/internal/handler/dto/response"
	"orderflow/internal/usecase/commands"
	"orderflow/tests/common/httptest"
	commandsmock "orderflow/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScanHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockScan *commandsmock.MockScanCommands
	handler  *api.ScanHandler
}

func (s *ScanHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockScan = commandsmock.NewMockScanCommands(s.mockCtrl)
	s.handler = api.NewScanHandler(s.mockScan)

	s.router.POST("/scan/token", s.handler.IssueToken)
	s.router.POST("/scan/open", s.handler.Open)
}

func (s *ScanHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestScanHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScanHandlerTestSuite))
}

func (s *ScanHandlerTestSuite) TestIssueToken() {
	url := "/scan/token"

	reqBody := reqdto.IssueTokenRequest{
		ShopDomain: "demo.myshopify.com",
		OrderID:    "1001",
	}

	s.Run("success: returns 200 OK with token and URL", func() {
		s.mockScan.EXPECT().IssueToken(gomock.Any(), reqBody.ShopDomain, reqBody.OrderID).
			Return(&commands.IssueTokenResult{Token: "deadbeef", URL: "http://localhost:8080/scan/deadbeef"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.IssueTokenResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("deadbeef", response.Token)
		s.Contains(response.URL, "/scan/deadbeef")
	})

	s.Run("error: 404 Not Found for unknown order", func() {
		s.mockScan.EXPECT().IssueToken(gomock.Any(), reqBody.ShopDomain, reqBody.OrderID).
			Return(nil, commands.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})
}

func (s *ScanHandlerTestSuite) TestOpen() {
	url := "/scan/open"

	reqBody := reqdto.OpenScanRequest{Token: "deadbeef"}

	s.Run("success: returns the order and workflow transition", func() {
		s.mockScan.EXPECT().Open(gomock.Any(), "deadbeef").
			Return(&commands.OpenScanResult{
				Order: &order.Order{
					ShopDomain: "demo.myshopify.com",
					OrderID:    "1001",
					OrderName:  "#1001",
					Tags:       "VIP, Shipped",
				},
				Items:          []order.LineItem{{LineID: "11", Title: "Classic Tee", Quantity: 2}},
				WorkflowStatus: workflow.StatusShipped,
				AdvancedFrom:   workflow.StatusPending,
				AdvancedTo:     workflow.StatusShipped,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.OpenScanResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("1001", response.Order.OrderID)
		s.Equal([]string{"VIP", "Shipped"}, response.Order.Labels)
		s.Equal("shipped", response.WorkflowStatus)
		s.Equal("pending", response.AdvancedFrom)
		s.Len(response.Items, 1)
	})

	s.Run("error: 404 Not Found for unknown token", func() {
		s.mockScan.EXPECT().Open(gomock.Any(), "deadbeef").
			Return(nil, commands.ErrTokenNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Scan token not found")
	})

	s.Run("error: 500 on storage failure", func() {
		s.mockScan.EXPECT().Open(gomock.Any(), "deadbeef").
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
