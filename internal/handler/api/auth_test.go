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

type AuthHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockAuth *commandsmock.MockAuthCommands
	handler  *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockAuth = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockAuth)

	s.router.POST("/auth/token", s.handler.IssueToken)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestIssueToken() {
	url := "/auth/token"

	reqBody := reqdto.IssueAuthTokenRequest{
		APIKey: "test-api-key",
		Client: "dashboard",
	}

	s.Run("success: returns 200 OK with a JWT", func() {
		s.mockAuth.EXPECT().IssueToken(gomock.Any(), reqBody.APIKey, reqBody.Client).
			Return(&commands.AuthTokenResult{Token: "test-jwt-token", ExpiresIn: 3600}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.AuthTokenResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("test-jwt-token", response.Token)
		s.Equal(int64(3600), response.ExpiresIn)
	})

	s.Run("error: 400 Bad Request without api_key", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"client": "dashboard"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 401 Unauthorized on wrong key", func() {
		s.mockAuth.EXPECT().IssueToken(gomock.Any(), reqBody.APIKey, reqBody.Client).
			Return(nil, commands.ErrInvalidAPIKey).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid API key")
	})

	s.Run("error: 500 on unexpected failure", func() {
		s.mockAuth.EXPECT().IssueToken(gomock.Any(), reqBody.APIKey, reqBody.Client).
			Return(nil, errors.New("signing error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
