//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"orderflow/internal/domain/order"
	"orderflow/internal/handler/api"
	reqdto "orderflow/internal/handler/dto/request"
	resdto "orderflow/internal/handler/dto/response"
	"orderflow/internal/infra"
	"orderflow/internal/usecase/commands"
	"orderflow/internal/usecase/queries"
	"orderflow/tests/common/httptest"
	commandsmock "orderflow/tests/mock/commands"
	queriesmock "orderflow/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockTags    *commandsmock.MockTagCommands
	mockQueries *queriesmock.MockOrderQueries
	handler     *api.OrderHandler
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockTags = commandsmock.NewMockTagCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockTags, s.mockQueries)

	s.router.POST("/orders/tags", s.handler.MutateTag)
	s.router.POST("/orders/cancel", s.handler.CancelOrder)
	s.router.GET("/orders", s.handler.List)
	s.router.GET("/orders/summary", s.handler.Summary)
	s.router.GET("/orders/:id", s.handler.Detail)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func (s *OrderHandlerTestSuite) TestMutateTag() {
	url := "/orders/tags"

	reqBody := reqdto.MutateTagRequest{
		ShopDomain: "demo.myshopify.com",
		OrderID:    "1001",
		Action:     "add",
		Label:      "Processing",
	}

	s.Run("success: returns 200 OK with resulting labels", func() {
		s.mockTags.EXPECT().MutateTag(gomock.Any(), reqBody.ToInput()).
			Return(&commands.MutateTagResult{
				Labels: []string{"VIP", "Processing"},
				Ledger: &commands.LedgerResult{AppliedCount: 2},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.MutateTagResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal([]string{"VIP", "Processing"}, response.Labels)
	})

	s.Run("error: 400 Bad Request when body misses required fields", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"shop_domain": "demo.myshopify.com"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "order not found",
				commandsError:  commands.ErrOrderNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Order not found",
			},
			{
				name:           "missing label",
				commandsError:  commands.ErrMissingLabel,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Label is required",
			},
			{
				name:           "invalid action",
				commandsError:  commands.ErrInvalidAction,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Action must be add or remove",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockTags.EXPECT().MutateTag(gomock.Any(), reqBody.ToInput()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *OrderHandlerTestSuite) TestCancelOrder() {
	url := "/orders/cancel"

	reqBody := reqdto.CancelOrderRequest{
		ShopDomain: "demo.myshopify.com",
		OrderID:    "1001",
		Reason:     "customer",
	}

	s.Run("success: returns 200 OK with released count", func() {
		s.mockTags.EXPECT().CancelOrder(gomock.Any(), reqBody.ShopDomain, reqBody.OrderID, reqBody.Reason).
			Return(&commands.CancelOrderResult{Labels: []string{"VIP", "Cancelled"}, Released: 2}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.CancelOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(2, response.Released)
	})

	s.Run("error: 404 Not Found for unknown order", func() {
		s.mockTags.EXPECT().CancelOrder(gomock.Any(), reqBody.ShopDomain, reqBody.OrderID, reqBody.Reason).
			Return(nil, commands.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: 502 Bad Gateway with mirrored state when platform cancel fails", func() {
		s.mockTags.EXPECT().CancelOrder(gomock.Any(), reqBody.ShopDomain, reqBody.OrderID, reqBody.Reason).
			Return(&commands.CancelOrderResult{Labels: []string{"Cancelled"}, Released: 1}, errors.New("platform refused")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusBadGateway, rec.Code)

		var response resdto.CancelOrderResponse
		httptest.DecodeBody(s.T(), rec, &response)
		s.Equal([]string{"Cancelled"}, response.Labels)
		s.Equal(1, response.Released)
	})
}

func (s *OrderHandlerTestSuite) TestList() {
	s.Run("success: returns items for the shop", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), "demo.myshopify.com", "rush", 10, true).
			Return([]*queries.OrderListItem{{OrderID: "1001"}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?shop=demo.myshopify.com&q=rush&limit=10&refresh=true", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request without shop", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "shop is required")
	})
}

func (s *OrderHandlerTestSuite) TestDetail() {
	s.Run("success: returns the order view", func() {
		ref := order.Ref{ShopDomain: "demo.myshopify.com", OrderID: "1001"}
		s.mockQueries.EXPECT().Detail(gomock.Any(), ref).
			Return(&queries.OrderView{OrderID: "1001"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/1001?shop=demo.myshopify.com", nil, "")

		var response queries.OrderView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("1001", response.OrderID)
	})

	s.Run("error: 404 Not Found for unknown order", func() {
		ref := order.Ref{ShopDomain: "demo.myshopify.com", OrderID: "9999"}
		s.mockQueries.EXPECT().Detail(gomock.Any(), ref).
			Return(nil, infra.WrapRepoErr("order not found", errors.New("no rows"), infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/9999?shop=demo.myshopify.com", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})
}

func (s *OrderHandlerTestSuite) TestSummary() {
	s.Run("success: returns per-label counts", func() {
		s.mockQueries.EXPECT().Summary(gomock.Any(), "demo.myshopify.com", false).
			Return(&queries.ShopSummary{Orders: 12, Processing: 3}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/summary?shop=demo.myshopify.com", nil, "")

		var response queries.ShopSummary
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(12, response.Orders)
		s.Equal(3, response.Processing)
	})
}
