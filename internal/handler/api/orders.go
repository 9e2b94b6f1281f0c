package api

import (
	"errors"
	"net/http"
	"strconv"

	"orderflow/internal/domain/order"
	reqdto "orderflow/internal/handler/dto/request"
	resdto "orderflow/internal/handler/dto/response"
	"orderflow/internal/infra"
	"orderflow/internal/usecase/commands"
	"orderflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	tagCommands  commands.TagCommands
	orderQueries queries.OrderQueries
}

func NewOrderHandler(tagCommands commands.TagCommands, orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		tagCommands:  tagCommands,
		orderQueries: orderQueries,
	}
}

// @Summary Mutate order tags
// @Description Add or remove one label on an order, applying any implied inventory effect
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.MutateTagRequest true "Tag mutation"
// @Success 200 {object} resdto.MutateTagResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/tags [post]
func (h *OrderHandler) MutateTag(c *gin.Context) {
	var req reqdto.MutateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.tagCommands.MutateTag(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, commands.ErrMissingLabel):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Label is required",
			})
		case errors.Is(err, commands.ErrInvalidAction):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Action must be add or remove",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.NewMutateTagResponse(result))
}

// @Summary Cancel order
// @Description Request platform cancellation and mirror it locally
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CancelOrderRequest true "Cancellation"
// @Success 200 {object} resdto.CancelOrderResponse
// @Failure 404 {object} map[string]string
// @Failure 502 {object} resdto.CancelOrderResponse
// @Router /orders/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	var req reqdto.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.tagCommands.CancelOrder(c.Request.Context(), req.ShopDomain, req.OrderID, req.Reason)
	if err != nil {
		if errors.Is(err, commands.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		if result != nil {
			// local mirror succeeded, platform call did not
			c.JSON(http.StatusBadGateway, resdto.CancelOrderResponse{
				Labels:   result.Labels,
				Released: result.Released,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.CancelOrderResponse{
		Labels:   result.Labels,
		Released: result.Released,
	})
}

// @Summary List orders
// @Tags orders
// @Produce json
// @Param shop query string true "Shop domain"
// @Param q query string false "Search in order name or customer email"
// @Param limit query int false "Max rows"
// @Param refresh query bool false "Bypass cache"
// @Success 200 {array} queries.OrderListItem
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	shopDomain := c.Query("shop")
	if shopDomain == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "shop is required",
		})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	refresh := c.Query("refresh") == "true"

	items, err := h.orderQueries.List(c.Request.Context(), shopDomain, c.Query("q"), limit, refresh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// @Summary Paged orders
// @Tags orders
// @Produce json
// @Param shop query string true "Shop domain"
// @Param page query int false "Page number"
// @Param per_page query int false "Rows per page"
// @Success 200 {object} queries.OrderPage
// @Router /orders/page [get]
func (h *OrderHandler) Page(c *gin.Context) {
	shopDomain := c.Query("shop")
	if shopDomain == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "shop is required",
		})
		return
	}
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))

	result, err := h.orderQueries.Page(c.Request.Context(), shopDomain, c.Query("q"), page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Shop order summary
// @Tags orders
// @Produce json
// @Param shop query string true "Shop domain"
// @Success 200 {object} queries.ShopSummary
// @Router /orders/summary [get]
func (h *OrderHandler) Summary(c *gin.Context) {
	shopDomain := c.Query("shop")
	if shopDomain == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "shop is required",
		})
		return
	}

	summary, err := h.orderQueries.Summary(c.Request.Context(), shopDomain, c.Query("refresh") == "true")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Order detail
// @Tags orders
// @Produce json
// @Param shop query string true "Shop domain"
// @Param id path string true "Order ID"
// @Success 200 {object} queries.OrderView
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) Detail(c *gin.Context) {
	shopDomain := c.Query("shop")
	if shopDomain == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "shop is required",
		})
		return
	}
	ref := order.Ref{ShopDomain: shopDomain, OrderID: c.Param("id")}

	view, err := h.orderQueries.Detail(c.Request.Context(), ref)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
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
	c.JSON(http.StatusOK, view)
}

// @Summary Order line items
// @Tags orders
// @Produce json
// @Param shop query string true "Shop domain"
// @Param order_id query string true "Order ID"
// @Success 200 {array} queries.OrderItemView
// @Router /order-items [get]
func (h *OrderHandler) Items(c *gin.Context) {
	shopDomain := c.Query("shop")
	orderID := c.Query("order_id")
	if shopDomain == "" || orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "shop and order_id are required",
		})
		return
	}

	items, err := h.orderQueries.Items(c.Request.Context(), order.Ref{ShopDomain: shopDomain, OrderID: orderID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
