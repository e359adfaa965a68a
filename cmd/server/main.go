package main

import (
	"go.uber.org/zap"

	"abarrotes-be/internal/api"
	"abarrotes-be/internal/cart"
	"abarrotes-be/internal/category"
	"abarrotes-be/internal/config"
	"abarrotes-be/internal/db"
	"abarrotes-be/internal/logger"
	"abarrotes-be/internal/metrics"
	"abarrotes-be/internal/order"
	"abarrotes-be/internal/product"
	"abarrotes-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	orderMetrics := &metrics.OrderMetrics{}

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, orderMetrics)

	h := api.NewHandler(userSvc, productSvc, categorySvc, cartSvc, orderSvc, orderMetrics)
	router := api.NewRouter(h)

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	if err := router.Run(":" + cfg.AppPort); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
