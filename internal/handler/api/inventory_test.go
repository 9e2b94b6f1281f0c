//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

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

type InventoryHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockReserve *commandsmock.MockReserveCommands
	mockImport  *commandsmock.MockImportCommands
	handler     *api.InventoryHandler
}

func (s *InventoryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockReserve = commandsmock.NewMockReserveCommands(s.mockCtrl)
	s.mockImport = commandsmock.NewMockImportCommands(s.mockCtrl)
	s.handler = api.NewInventoryHandler(s.mockReserve, s.mockImport)

	s.router.POST("/inventory/reserve", s.handler.SetReserve)
	s.router.POST("/inventory/import", s.handler.ImportStock)
}

func (s *InventoryHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestInventoryHandlerSuite(t *testing.T) {
	suite.Run(t, new(InventoryHandlerTestSuite))
}

func (s *InventoryHandlerTestSuite) TestSetReserve() {
	url := "/inventory/reserve"

	reserve := true
	reqBody := reqdto.SetReserveRequest{
		ShopDomain: "demo.myshopify.com",
		OrderID:    "1001",
		Reserve:    &reserve,
	}

	s.Run("success: returns 200 OK with changed count", func() {
		s.mockReserve.EXPECT().SetReserve(gomock.Any(), reqBody.ToInput()).
			Return(&commands.SetReserveResult{Reserved: true, Changed: 2}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.SetReserveResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Reserved)
		s.Equal(2, response.Changed)
	})

	s.Run("error: 400 Bad Request when reserve flag is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"shop_domain": "demo.myshopify.com", "order_id": "1001"}, "")
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
				name:           "order locked",
				commandsError:  commands.ErrOrderLocked,
				expectedStatus: http.StatusLocked,
				expectedMsg:    "reservation is locked",
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
				s.mockReserve.EXPECT().SetReserve(gomock.Any(), reqBody.ToInput()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *InventoryHandlerTestSuite) TestImportStock() {
	csv := []byte("title,color,size,qty\nClassic Tee,Black,M,5\n")

	s.Run("success: returns 200 OK with import counts", func() {
		s.mockImport.EXPECT().ImportStock(gomock.Any(), "demo.myshopify.com", gomock.Any()).
			Return(&commands.ImportStockResult{Imported: 1}, nil).Times(1)

		rec := httptest.PerformFileUpload(s.T(), s.router, "/inventory/import?shop=demo.myshopify.com", "file", "stock.csv", csv, "")

		var response commands.ImportStockResult
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(1, response.Imported)
	})

	s.Run("error: 400 Bad Request without shop", func() {
		rec := httptest.PerformFileUpload(s.T(), s.router, "/inventory/import", "file", "stock.csv", csv, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "shop is required")
	})

	s.Run("error: 400 Bad Request without file", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/inventory/import?shop=demo.myshopify.com", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "file is required")
	})

	s.Run("error: 400 Bad Request on empty import", func() {
		s.mockImport.EXPECT().ImportStock(gomock.Any(), "demo.myshopify.com", gomock.Any()).
			Return(nil, commands.ErrEmptyImport).Times(1)

		rec := httptest.PerformFileUpload(s.T(), s.router, "/inventory/import?shop=demo.myshopify.com", "file", "stock.csv", []byte("title,color,size,qty\n"), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "empty or malformed")
	})
}
