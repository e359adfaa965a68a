package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"abarrotes-be/internal/cart"
)

type addToCartRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart payload"})
		return
	}

	item, err := h.carts.AddToCart(c.Request.Context(), cart.AddToCartParams{
		UserID:    currentUserID(c),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.cartError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) GetCart(c *gin.Context) {
	items, err := h.carts.GetCart(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart payload"})
		return
	}

	if err := h.carts.UpdateQuantity(c.Request.Context(), currentUserID(c), productID, req.Quantity); err != nil {
		h.cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	if err := h.carts.RemoveFromCart(c.Request.Context(), currentUserID(c), productID); err != nil {
		h.cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.carts.ClearCart(c.Request.Context(), currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

func (h *Handler) cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
	case errors.Is(err, cart.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, cart.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
	case errors.Is(err, cart.ErrInsufficientStock):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "insufficient stock"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
