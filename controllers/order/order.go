package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cartControllers "github.com/rizwan-khalid06/Buyzi-app/controllers/cart"
	"github.com/rizwan-khalid06/Buyzi-app/models"
	"github.com/rizwan-khalid06/Buyzi-app/notify"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrMissingPhone = errors.New("phone number is required")
)

const notifyTimeout = 5 * time.Second

// -------- Request / Response Structs --------

type PlaceOrderInput struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	City            string `json:"city" binding:"required"`
	PostalCode      string `json:"postal_code" binding:"required"`
	Country         string `json:"country" binding:"required"`
	Phone           string `json:"phone"`
}

type OrderResponse struct {
	models.Order
	WhatsappStatus notify.DispatchResult `json:"whatsapp_status"`
}

// -------- Helpers --------

// lockForUpdate takes a row lock on dialects that support it. SQLite (the
// test store) serializes writers on its own and rejects FOR UPDATE.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// NormalizePhone brings a phone number into the `+<digits>` form the
// messaging collaborator expects.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	return phone
}

// -------- Core Logic --------

// PlaceOrder converts the user's cart into an Order + OrderItem snapshot and
// empties the cart. Everything runs in one transaction: product rows are
// locked, tracked stock is re-validated and decremented, item prices are
// copied from the catalog at this moment. Either all of it commits or none
// of it does.
func PlaceOrder(db *gorm.DB, userID uint, input PlaceOrderInput) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var cartItems []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("added_at").Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			var product models.Product
			if err := lockForUpdate(tx).
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}

			if !product.InStock(item.Quantity) {
				return fmt.Errorf("%w for product: %s", cartControllers.ErrInsufficientStock, product.Name)
			}
			if product.Stock != nil {
				remaining := *product.Stock - item.Quantity
				if err := tx.Model(&product).Update("stock", remaining).Error; err != nil {
					return err
				}
			}

			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Color:     item.Color,
				Size:      item.Size,
				Price:     product.Price, // snapshot, immune to later price changes
			})
		}

		order = models.Order{
			UserID:          userID,
			ShippingAddress: input.ShippingAddress,
			City:            input.City,
			PostalCode:      input.PostalCode,
			Country:         input.Country,
			Items:           orderItems,
			CreatedAt:       time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Clear the cart together with the order creation
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// POST /api/orders
func PlaceOrderHandler(db *gorm.DB, sender notify.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// The confirmation message needs a contact number; reject before any
		// durable mutation.
		if strings.TrimSpace(input.Phone) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required for confirmation message"})
			return
		}

		order, err := PlaceOrder(db, userID, input)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			case errors.Is(err, cartControllers.ErrInsufficientStock):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		// Reload with item products for the response
		var full models.Order
		if err := db.Preload("Items.Product").First(&full, order.ID).Error; err != nil {
			full = *order
		}

		// Notification runs strictly after the commit and never rolls the
		// order back; its outcome is informational.
		phone := NormalizePhone(input.Phone)
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		result := sender.SendOrderConfirmation(ctx, phone, full.ID)
		if result.Status != notify.StatusSuccess {
			log.Printf("⚠️ WhatsApp confirmation for order %d failed: %s", full.ID, result.Error)
		}

		broadcastNewOrder(full)

		c.JSON(http.StatusCreated, OrderResponse{Order: full, WhatsappStatus: result})
	}
}

// GET /api/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		var orders []models.Order
		if err := db.Where("user_id = ?", userID).
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:orderID
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var order models.Order
		if err := db.Where("id = ? AND user_id = ?", orderID, userID).
			Preload("Items").
			Preload("Items.Product").
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
