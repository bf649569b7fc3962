package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rizwan-khalid06/Buyzi-app/models"
)

// UpdateProduct applies a partial multipart update; only submitted fields
// change.
// PUT /api/products/:id (admin)
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
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

		updates := make(map[string]interface{})

		if name := c.PostForm("name"); name != "" {
			updates["name"] = name
		}
		if desc, ok := c.GetPostForm("description"); ok {
			updates["description"] = desc
		}
		if priceStr := c.PostForm("price"); priceStr != "" {
			price, err := decimal.NewFromString(priceStr)
			if err != nil || price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			updates["price"] = price.Round(2)
		}
		if stockStr, ok := c.GetPostForm("stock"); ok {
			if stockStr == "" {
				updates["stock"] = nil // back to untracked
			} else {
				n, err := strconv.Atoi(stockStr)
				if err != nil || n < 0 {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
					return
				}
				updates["stock"] = n
			}
		}
		if raw := c.PostForm("category"); raw != "" {
			cat, ok := models.NormalizeCategory(raw)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
				return
			}
			updates["category"] = cat
		}
		if _, err := c.FormFile("image"); err == nil {
			imageURL, err := saveProductImage(c)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			updates["image"] = imageURL
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}
		c.JSON(http.StatusOK, NewProductResponse(product, false))
	}
}
