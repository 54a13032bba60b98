// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"muthurwa/internal/delivery/api/middleware"
	"muthurwa/internal/delivery/api/router/handler"
	"muthurwa/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler        *handler.AuthHandler
	BuyerHandler       *handler.BuyerHandler
	ProductTypeHandler *handler.ProductTypeHandler
	TransactionHandler *handler.TransactionHandler
	DeliveryHandler    *handler.DeliveryHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler        *handler.AuthHandler
	buyerHandler       *handler.BuyerHandler
	productTypeHandler *handler.ProductTypeHandler
	transactionHandler *handler.TransactionHandler
	deliveryHandler    *handler.DeliveryHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:        params.AuthHandler,
		buyerHandler:       params.BuyerHandler,
		productTypeHandler: params.ProductTypeHandler,
		transactionHandler: params.TransactionHandler,
		deliveryHandler:    params.DeliveryHandler,
		authMiddleware:     params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Public auth routes
	api.POST("/auth/register", r.authHandler.Register)
	api.POST("/auth/login", r.authHandler.Login)

	// Everything below requires a bearer token
	secured := api.Group("", r.authMiddleware.Authenticate)

	secured.GET("/auth/me", r.authHandler.Me)

	// Vendor management is admin only
	admin := secured.Group("/auth", r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		admin.GET("/vendors", r.authHandler.ListVendors)
		admin.GET("/vendors/stats", r.authHandler.VendorStats)
		admin.PUT("/vendor/:id", r.authHandler.UpdateVendor)
		admin.DELETE("/vendor/:id", r.authHandler.DeleteVendor)
	}

	buyers := secured.Group("/buyers")
	{
		buyers.POST("", r.buyerHandler.CreateBuyer)
		buyers.GET("", r.buyerHandler.ListBuyers)
		buyers.GET("/:id", r.buyerHandler.GetBuyer)
		buyers.PUT("/:id", r.buyerHandler.UpdateBuyer)
		buyers.DELETE("/:id", r.buyerHandler.DeleteBuyer)
	}

	productTypes := secured.Group("/product-types")
	{
		productTypes.POST("", r.productTypeHandler.CreateProductType)
		productTypes.GET("", r.productTypeHandler.ListProductTypes)
		productTypes.GET("/:id", r.productTypeHandler.GetProductType)
		productTypes.PUT("/:id", r.productTypeHandler.UpdateProductType)
		productTypes.DELETE("/:id", r.productTypeHandler.DeleteProductType)
	}

	transactions := secured.Group("/transactions")
	{
		transactions.POST("", r.transactionHandler.CreateTransaction)
		transactions.GET("", r.transactionHandler.ListTransactions)
		transactions.GET("/debts", r.transactionHandler.ListDebts)
		transactions.GET("/:id", r.transactionHandler.GetTransaction)
		transactions.GET("/:id/receipt", r.transactionHandler.Receipt)
		transactions.PUT("/:id", r.transactionHandler.UpdateTransaction)
		transactions.DELETE("/:id", r.transactionHandler.DeleteTransaction)
	}

	deliveries := secured.Group("/deliveries")
	{
		deliveries.POST("", r.deliveryHandler.CreateDelivery)
		deliveries.GET("", r.deliveryHandler.ListDeliveries)
		deliveries.GET("/:id", r.deliveryHandler.GetDelivery)
		deliveries.PUT("/:id", r.deliveryHandler.UpdateDelivery)
		deliveries.DELETE("/:id", r.deliveryHandler.DeleteDelivery)
	}
}
