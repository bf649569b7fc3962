package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/rizwan-khalid06/Buyzi-app/controllers/order"
	"github.com/rizwan-khalid06/Buyzi-app/middleware"
	"github.com/rizwan-khalid06/Buyzi-app/notify"
)

// SetupOrderRoutes registers the "/api/orders/*" endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, sender notify.Sender) {
	orders := api.Group("/orders")
	{
		// Live feed for admin dashboards
		orders.GET("/ws", middleware.ValidateToken, middleware.RequireAdmin,
			orderControllers.OrderWebSocketHandler)

		authed := orders.Group("")
		authed.Use(middleware.ValidateToken)
		{
			authed.POST("", orderControllers.PlaceOrderHandler(db, sender))
			authed.GET("", orderControllers.GetUserOrdersHandler(db))
			authed.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
		}
	}
}
