package api

import (
	"errors"
	"net/http"

	reqdto "orderflow/internal/handler/dto/request"
	resdto "orderflow/internal/handler/dto/response"
	"orderflow/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type ScanHandler struct {
	scanCommands commands.ScanCommands
}

func NewScanHandler(scanCommands commands.ScanCommands) *ScanHandler {
	return &ScanHandler{scanCommands: scanCommands}
}

// @Summary Issue scan token
// @Description Mint a fresh warehouse scan token for an order, invalidating any previous one
// @Tags scan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.IssueTokenRequest true "Target order"
// @Success 200 {object} resdto.IssueTokenResponse
// @Failure 404 {object} map[string]string
// @Router /scan/token [post]
func (h *ScanHandler) IssueToken(c *gin.Context) {
	var req reqdto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.scanCommands.IssueToken(c.Request.Context(), req.ShopDomain, req.OrderID)
	if err != nil {
		if errors.Is(err, commands.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.IssueTokenResponse{
		Token: result.Token,
		URL:   result.URL,
	})
}

// @Summary Open scan
// @Description Resolve a scan token and advance the order to shipped on first use
// @Tags scan
// @Accept json
// @Produce json
// @Param request body reqdto.OpenScanRequest true "Scan token"
// @Success 200 {object} resdto.OpenScanResponse
// @Failure 404 {object} map[string]string
// @Router /scan/open [post]
func (h *ScanHandler) Open(c *gin.Context) {
	var req reqdto.OpenScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.scanCommands.Open(c.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, commands.ErrTokenNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Scan token not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	resp, err := resdto.NewOpenScanResponse(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}
