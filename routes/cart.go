package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/rizwan-khalid06/Buyzi-app/controllers/cart"
	"github.com/rizwan-khalid06/Buyzi-app/middleware"
)

// SetupCartRoutes registers the "/api/cart/*" endpoints. All require auth.
func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cart := api.Group("/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.GET("", cartControllers.GetCartItems(db))
		cart.POST("", cartControllers.AddCartItem(db))
		cart.PUT("/:id", cartControllers.UpdateCartItem(db))
		cart.PATCH("/:id", cartControllers.UpdateCartItem(db))
		cart.DELETE("/:id", cartControllers.DeleteCartItem(db))
		cart.DELETE("", cartControllers.ClearCart(db))
	}
}
