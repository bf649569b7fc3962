package favouriteControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/rizwan-khalid06/Buyzi-app/controllers/product"
	"github.com/rizwan-khalid06/Buyzi-app/models"
)

// ToggleFavourite flips a product in or out of the user's favourites. Two
// consecutive toggles return the user to where they started.
// POST /api/favourite/toggle/:product_id
func ToggleFavourite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			}
			return
		}

		var fav models.Favourite
		err = db.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&fav).Error
		if err == nil {
			if err := db.Delete(&fav).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favourite"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "removed from favourites", "is_favourite": false})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favourite"})
			return
		}

		fav = models.Favourite{UserID: userID, ProductID: product.ID}
		if err := db.Create(&fav).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favourite"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "added to favourites", "is_favourite": true})
	}
}

// GetFavourites lists the user's favourited products.
// GET /api/favourite
func GetFavourites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		var products []models.Product
		if err := db.
			Joins("JOIN favourites ON favourites.product_id = products.id").
			Where("favourites.user_id = ?", userID).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favourites"})
			return
		}

		resp := make([]productcontroller.ProductResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, productcontroller.NewProductResponse(p, true))
		}
		c.JSON(http.StatusOK, resp)
	}
}
