package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rizwan-khalid06/Buyzi-app/models"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product does not exist")
	ErrCartItemNotFound  = errors.New("cart item not found")
)

// ValidationError carries the offending field so handlers can answer with
// field-keyed messages.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type AddCartItemInput struct {
	ProductID uint   `json:"product" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

type UpdateCartItemInput struct {
	Quantity *int    `json:"quantity"`
	Color    *string `json:"color"`
	Size     *string `json:"size"`
}

// lockForUpdate takes a row lock on dialects that support it. SQLite (the
// test store) serializes writers on its own and rejects FOR UPDATE.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// MergeResult reports whether the add created a new row or merged into an
// existing one.
type MergeResult struct {
	Item    models.CartItem
	Product models.Product
	Created bool
}

// AddOrMergeCartItem adds a variant to the user's cart. An existing row for
// the same (product, color, size) absorbs the requested quantity instead of
// producing a duplicate. The stock check and the write happen under a row
// lock on the product so concurrent adds cannot oversell.
func AddOrMergeCartItem(db *gorm.DB, userID uint, input AddCartItemInput) (*MergeResult, error) {
	if input.Quantity < 1 {
		return nil, &ValidationError{Field: "quantity", Message: "Quantity must be at least 1"}
	}
	if input.Color == "" {
		return nil, &ValidationError{Field: "color", Message: "Color is required."}
	}
	if input.Size == "" {
		return nil, &ValidationError{Field: "size", Message: "Size is required."}
	}

	var result MergeResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := lockForUpdate(tx).
			First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if !product.InStock(input.Quantity) {
			return ErrInsufficientStock
		}

		var item models.CartItem
		err := tx.Where("user_id = ? AND product_id = ? AND color = ? AND size = ?",
			userID, input.ProductID, input.Color, input.Size).First(&item).Error

		if err == nil {
			// Merge into the existing variant row
			newQuantity := item.Quantity + input.Quantity
			if !product.InStock(newQuantity) {
				return ErrInsufficientStock
			}
			item.Quantity = newQuantity
			item.AddedAt = time.Now()
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
			result = MergeResult{Item: item, Product: product, Created: false}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		newItem := models.CartItem{
			UserID:    userID,
			ProductID: product.ID,
			Quantity:  input.Quantity,
			Color:     input.Color,
			Size:      input.Size,
			AddedAt:   time.Now(),
		}
		if err := tx.Create(&newItem).Error; err != nil {
			return err
		}
		result = MergeResult{Item: newItem, Product: product, Created: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateCartItemByID applies a partial update to one of the user's cart
// items. Quantity changes are validated against the product's current stock,
// not the stock seen when the item was first added.
func UpdateCartItemByID(db *gorm.DB, userID, itemID uint, input UpdateCartItemInput) (*MergeResult, error) {
	if input.Color != nil && *input.Color == "" {
		return nil, &ValidationError{Field: "color", Message: "Color cannot be empty."}
	}
	if input.Size != nil && *input.Size == "" {
		return nil, &ValidationError{Field: "size", Message: "Size cannot be empty."}
	}
	if input.Quantity != nil && *input.Quantity < 1 {
		return nil, &ValidationError{Field: "quantity", Message: "Quantity must be at least 1"}
	}

	var result MergeResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		if err := tx.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}

		var product models.Product
		if err := lockForUpdate(tx).
			First(&product, "id = ?", item.ProductID).Error; err != nil {
			return err
		}

		quantity := item.Quantity
		if input.Quantity != nil {
			quantity = *input.Quantity
		}
		if !product.InStock(quantity) {
			return ErrInsufficientStock
		}

		item.Quantity = quantity
		if input.Color != nil {
			item.Color = *input.Color
		}
		if input.Size != nil {
			item.Size = *input.Size
		}
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		result = MergeResult{Item: item, Product: product}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// -------- Response shape --------

type CartItemResponse struct {
	ID           uint            `json:"id"`
	Product      uint            `json:"product"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Image        string          `json:"image"`
	Quantity     int             `json:"quantity"`
	Color        string          `json:"color"`
	Size         string          `json:"size"`
	AddedAt      time.Time       `json:"added_at"`
}

func toCartItemResponse(item models.CartItem, product models.Product) CartItemResponse {
	return CartItemResponse{
		ID:           item.ID,
		Product:      item.ProductID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		Image:        product.Image,
		Quantity:     item.Quantity,
		Color:        item.Color,
		Size:         item.Size,
		AddedAt:      item.AddedAt,
	}
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func respondCartError(c *gin.Context, err error) {
	var vErr *ValidationError
	switch {
	case errors.Is(err, ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
	case errors.Is(err, ErrProductNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
	case errors.Is(err, ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{vErr.Field: vErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
	}
}

// -------- Handlers --------

// GET /api/cart
func GetCartItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		var items []models.CartItem
		if err := db.Preload("Product").Where("user_id = ?", userID).
			Order("added_at").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		resp := make([]CartItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, toCartItemResponse(item, item.Product))
		}
		c.JSON(http.StatusOK, resp)
	}
}

// POST /api/cart
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		var input AddCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		result, err := AddOrMergeCartItem(db, userID, input)
		if err != nil {
			respondCartError(c, err)
			return
		}

		status := http.StatusOK // merged
		if result.Created {
			status = http.StatusCreated
		}
		c.JSON(status, toCartItemResponse(result.Item, result.Product))
	}
}

// PUT/PATCH /api/cart/:id
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		itemID, ok := parseID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
			return
		}

		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		result, err := UpdateCartItemByID(db, userID, itemID, input)
		if err != nil {
			respondCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartItemResponse(result.Item, result.Product))
	}
}

// DELETE /api/cart/:id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		itemID, ok := parseID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// DELETE /api/cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		if err := db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
