package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"abarrotes-be/internal/logger"
	"abarrotes-be/internal/order"
)

type placeOrderRequest struct {
	Items           []orderItemRequest `json:"items" binding:"required"`
	ShippingAddress *string            `json:"shipping_address"`
}

type orderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type checkoutRequest struct {
	ShippingAddress *string `json:"shipping_address"`
}

type returnRequest struct {
	Reason *string `json:"reason"`
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
		return
	}

	items := make([]order.ItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, order.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	orderID, err := h.orders.PlaceOrder(c.Request.Context(), currentUserID(c), items, req.ShippingAddress)
	if err != nil {
		h.orderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order_id": orderID})
}

// Checkout places an order from the caller's cart and clears it on success.
func (h *Handler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkout payload"})
			return
		}
	}

	ctx := c.Request.Context()
	userID := currentUserID(c)

	cartItems, err := h.carts.GetCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	items := make([]order.ItemInput, 0, len(cartItems))
	for _, it := range cartItems {
		items = append(items, order.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	orderID, err := h.orders.PlaceOrder(ctx, userID, items, req.ShippingAddress)
	if err != nil {
		h.orderError(c, err)
		return
	}

	// The order is already committed; a failed cart wipe is only noise.
	if err := h.carts.ClearCart(ctx, userID); err != nil {
		logger.FromCtx(ctx).Warn("failed to clear cart after checkout",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusCreated, gin.H{"order_id": orderID})
}

func (h *Handler) ListMyOrders(c *gin.Context) {
	orders, err := h.orders.ListOrdersForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *Handler) ListAllOrders(c *gin.Context) {
	orders, err := h.orders.ListAllOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	o, err := h.orders.GetOrder(c.Request.Context(), orderID, currentUserID(c), isStaff(c))
	if err != nil {
		h.orderError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *Handler) MarkItemReceived(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	err := h.orders.MarkItemReceived(c.Request.Context(), orderID, itemID, currentUserID(c), isStaff(c))
	if err != nil {
		h.orderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item marked as received"})
}

func (h *Handler) RequestItemReturn(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	var req returnRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid return payload"})
			return
		}
	}

	err := h.orders.RequestItemReturn(c.Request.Context(), orderID, itemID, currentUserID(c), isStaff(c), req.Reason)
	if err != nil {
		h.orderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "return requested"})
}

// orderError maps domain failures onto HTTP statuses. Validation problems are
// 400, business-rule rejections 422, missing things 404 and forbidden
// transitions 403.
func (h *Handler) orderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrProductNotFound),
		errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, order.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
