package productcontroller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rizwan-khalid06/Buyzi-app/models"
)

func mediaDir() string {
	if dir := os.Getenv("MEDIA_DIR"); dir != "" {
		return dir
	}
	return "./media"
}

// saveProductImage stores an uploaded image under the media dir and returns
// the public URL it will be served from.
func saveProductImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", err
	}
	filename := strings.ReplaceAll(file.Filename, " ", "_")

	saveDir := filepath.Join(mediaDir(), "product_images")
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload folder: %w", err)
	}
	if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return "/media/product_images/" + filename, nil
}

// CreateProduct creates a catalog product from a multipart form with an
// optional image upload.
// POST /api/products (admin)
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		if name == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}

		price, err := decimal.NewFromString(priceStr)
		if err != nil || price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		var stock *int
		if stockStr := c.PostForm("stock"); stockStr != "" {
			n, err := strconv.Atoi(stockStr)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
			stock = &n
		}

		var category models.Category
		if raw := c.PostForm("category"); raw != "" {
			cat, ok := models.NormalizeCategory(raw)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
				return
			}
			category = cat
		}

		var imageURL string
		if _, err := c.FormFile("image"); err == nil {
			imageURL, err = saveProductImage(c)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		product := models.Product{
			Name:        name,
			Description: c.PostForm("description"),
			Price:       price.Round(2),
			Stock:       stock,
			Image:       imageURL,
			Category:    category,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, NewProductResponse(product, false))
	}
}
