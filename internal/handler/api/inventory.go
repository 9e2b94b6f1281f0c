package api

import (
	"errors"
	"net/http"

	reqdto "orderflow/internal/handler/dto/request"
	resdto "orderflow/internal/handler/dto/response"
	"orderflow/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	reserveCommands commands.ReserveCommands
	importCommands  commands.ImportCommands
}

func NewInventoryHandler(reserveCommands commands.ReserveCommands, importCommands commands.ImportCommands) *InventoryHandler {
	return &InventoryHandler{
		reserveCommands: reserveCommands,
		importCommands:  importCommands,
	}
}

// @Summary Toggle inventory reservation
// @Description Reserve or release stock for an order's variants
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SetReserveRequest true "Reservation toggle"
// @Success 200 {object} resdto.SetReserveResponse
// @Failure 404 {object} map[string]string
// @Failure 423 {object} map[string]string
// @Router /inventory/reserve [post]
func (h *InventoryHandler) SetReserve(c *gin.Context) {
	var req reqdto.SetReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.reserveCommands.SetReserve(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, commands.ErrOrderLocked):
			c.JSON(http.StatusLocked, gin.H{
				"error": "Order is complete or processing; reservation is locked",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.SetReserveResponse{
		Reserved: result.Reserved,
		Changed:  result.Changed,
	})
}

// @Summary Bulk stock import
// @Description Seed stock rows from a CSV of (title, color, size, qty)
// @Tags inventory
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param shop query string true "Shop domain"
// @Param file formData file true "CSV file"
// @Success 200 {object} commands.ImportStockResult
// @Failure 400 {object} map[string]string
// @Router /inventory/import [post]
func (h *InventoryHandler) ImportStock(c *gin.Context) {
	shopDomain := c.Query("shop")
	if shopDomain == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "shop is required",
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "file is required",
		})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "could not read file",
		})
		return
	}
	defer file.Close()

	result, err := h.importCommands.ImportStock(c.Request.Context(), shopDomain, file)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmptyImport), errors.Is(err, commands.ErrInvalidPayload):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Import file is empty or malformed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
