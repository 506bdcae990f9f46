package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakibtweets/booknest-sub000/config"
	orderControllers "github.com/rakibtweets/booknest-sub000/controllers/order"
	"github.com/rakibtweets/booknest-sub000/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	auth := middleware.ValidateToken(cfg.JWT.Secret)

	// User-facing order endpoints
	userOrders := r.Group("/user/orders")
	userOrders.Use(auth)
	{
		userOrders.POST("", orderControllers.PlaceOrderHandler(db))
		userOrders.GET("", orderControllers.GetUserOrdersHandler(db))
	}

	// Order tracking by reference (owner or admin)
	r.GET("/orders/:orderRef", auth, orderControllers.GetOrderByRefHandler(db))

	// Admin order management
	adminOrders := r.Group("/admin/orders")
	adminOrders.Use(auth, middleware.RequireAdmin())
	{
		adminOrders.GET("", orderControllers.GetAllOrdersHandler(db))

		// websocket endpoint for real-time order updates
		adminOrders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Update order status (e.g., shipped, cancelled)
		adminOrders.PUT("/:orderRef/status", orderControllers.UpdateOrderStatusHandler(db))

		// Update payment status (e.g., paid, refunded)
		adminOrders.PUT("/:orderRef/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
	}
}
