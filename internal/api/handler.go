package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"abarrotes-be/internal/cart"
	"abarrotes-be/internal/category"
	"abarrotes-be/internal/metrics"
	"abarrotes-be/internal/order"
	"abarrotes-be/internal/product"
	"abarrotes-be/internal/user"
)

// Handler bundles the domain services behind the HTTP surface.
type Handler struct {
	users      user.Service
	products   product.Service
	categories category.Service
	carts      cart.Service
	orders     order.Service
	m          *metrics.OrderMetrics
}

func NewHandler(
	users user.Service,
	products product.Service,
	categories category.Service,
	carts cart.Service,
	orders order.Service,
	m *metrics.OrderMetrics,
) *Handler {
	return &Handler{
		users:      users,
		products:   products,
		categories: categories,
		carts:      carts,
		orders:     orders,
		m:          m,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Metrics(c *gin.Context) {
	if h.m == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, h.m.Snapshot())
}

// currentUserID reads the identity set by the auth middleware.
func currentUserID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}

func isStaff(c *gin.Context) bool {
	return c.GetString("role") == string(user.RoleStaff)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
