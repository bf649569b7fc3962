package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	favouriteControllers "github.com/rizwan-khalid06/Buyzi-app/controllers/favourite"
	"github.com/rizwan-khalid06/Buyzi-app/middleware"
)

// SetupFavouriteRoutes registers the "/api/favourite/*" endpoints.
func SetupFavouriteRoutes(api *gin.RouterGroup, db *gorm.DB) {
	favourites := api.Group("/favourite")
	favourites.Use(middleware.ValidateToken)
	{
		favourites.GET("", favouriteControllers.GetFavourites(db))
		favourites.POST("/toggle/:product_id", favouriteControllers.ToggleFavourite(db))
	}
}
