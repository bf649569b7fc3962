package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rizwan-khalid06/Buyzi-app/models"
)

// GetProducts returns the catalog, optionally filtered by ?category=.
// Category matching is case-insensitive and tolerant of spaces.
// GET /api/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{})

		if raw := c.Query("category"); raw != "" {
			category, ok := models.NormalizeCategory(raw)
			if !ok {
				// Unknown category matches nothing, same as a filter miss
				c.JSON(http.StatusOK, []ProductResponse{})
				return
			}
			query = query.Where("category = ?", category)
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		resp, err := ProductListResponse(db, products, requestUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetProductByID returns a single product.
// GET /api/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		isFav := false
		if userID := requestUserID(c); userID != 0 {
			var fav models.Favourite
			isFav = db.Where("user_id = ? AND product_id = ?", userID, product.ID).
				First(&fav).Error == nil
		}
		c.JSON(http.StatusOK, NewProductResponse(product, isFav))
	}
}
