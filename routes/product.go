package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/rizwan-khalid06/Buyzi-app/controllers/product"
	"github.com/rizwan-khalid06/Buyzi-app/middleware"
)

// SetupProductRoutes registers the "/api/products/*" endpoints. Reads are
// public (with optional auth for favourite flags); writes are admin-only.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB) {
	products := api.Group("/products")
	{
		products.GET("", middleware.OptionalToken, productcontroller.GetProducts(db))
		products.GET("/:id", middleware.OptionalToken, productcontroller.GetProductByID(db))

		admin := products.Group("")
		admin.Use(middleware.ValidateToken, middleware.RequireAdmin)
		{
			admin.POST("", productcontroller.CreateProduct(db))
			admin.PUT("/:id", productcontroller.UpdateProduct(db))
			admin.DELETE("/:id", productcontroller.DeleteProduct(db))
			admin.GET("/export", productcontroller.ExportProductsToExcel(db))
		}
	}
}
