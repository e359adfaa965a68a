package api

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"abarrotes-be/internal/middleware"
)

// NewRouter wires every endpoint behind the shared middleware chain.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(corsConfig())
	r.Use(middleware.RateLimit())

	r.GET("/health", h.Health)
	r.GET("/metrics", h.Metrics)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
		}

		// Public catalog
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/categories", h.ListCategories)

		protected := api.Group("/")
		protected.Use(middleware.RequireAuth())
		{
			protected.GET("/me", h.Profile)

			protected.POST("/cart", h.AddToCart)
			protected.GET("/cart", h.GetCart)
			protected.PUT("/cart/:productId", h.UpdateCartItem)
			protected.DELETE("/cart/:productId", h.RemoveFromCart)
			protected.DELETE("/cart", h.ClearCart)

			protected.POST("/checkout", h.Checkout)
			protected.POST("/orders", h.PlaceOrder)
			protected.GET("/orders", h.ListMyOrders)
			protected.GET("/orders/:id", h.GetOrder)
			protected.POST("/orders/:id/items/:itemId/receive", h.MarkItemReceived)
			protected.POST("/orders/:id/items/:itemId/return", h.RequestItemReturn)

			staff := protected.Group("/staff")
			staff.Use(middleware.RequireStaff())
			{
				staff.GET("/orders", h.ListAllOrders)

				staff.POST("/products", h.CreateProduct)
				staff.PUT("/products/:id", h.UpdateProduct)
				staff.DELETE("/products/:id", h.DeleteProduct)

				staff.POST("/categories", h.CreateCategory)
			}
		}
	}

	return r
}

func corsConfig() gin.HandlerFunc {
	origins := []string{"http://localhost:3000"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
