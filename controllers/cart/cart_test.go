package cartControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rizwan-khalid06/Buyzi-app/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}))
	return db
}

func intPtr(n int) *int { return &n }

func seedProduct(t *testing.T, db *gorm.DB, name string, stock *int) models.Product {
	t.Helper()
	product := models.Product{
		Name:     name,
		Price:    decimal.NewFromFloat(49.99),
		Stock:    stock,
		Category: models.CategorySneaker,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestAddCreatesCartItem(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(10))

	result, err := AddOrMergeCartItem(db, 1, AddCartItemInput{
		ProductID: product.ID, Quantity: 2, Color: "red", Size: "42",
	})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, 2, result.Item.Quantity)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAddMergesSameVariant(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(10))

	input := AddCartItemInput{ProductID: product.ID, Quantity: 2, Color: "red", Size: "42"}
	_, err := AddOrMergeCartItem(db, 1, input)
	require.NoError(t, err)

	input.Quantity = 3
	result, err := AddOrMergeCartItem(db, 1, input)
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, 5, result.Item.Quantity)

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count)
	assert.EqualValues(t, 1, count, "same variant must collapse onto one row")
}

func TestAddDifferentVariantCreatesNewRow(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(10))

	_, err := AddOrMergeCartItem(db, 1, AddCartItemInput{
		ProductID: product.ID, Quantity: 1, Color: "red", Size: "42",
	})
	require.NoError(t, err)

	result, err := AddOrMergeCartItem(db, 1, AddCartItemInput{
		ProductID: product.ID, Quantity: 1, Color: "blue", Size: "42",
	})
	require.NoError(t, err)
	assert.True(t, result.Created)

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestAddSameVariantDifferentUsers(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(10))

	input := AddCartItemInput{ProductID: product.ID, Quantity: 1, Color: "red", Size: "42"}
	for _, userID := range []uint{1, 2} {
		result, err := AddOrMergeCartItem(db, userID, input)
		require.NoError(t, err)
		assert.True(t, result.Created, "carts are per user, no cross-user merge")
	}
}

func TestAddInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(3))

	_, err := AddOrMergeCartItem(db, 1, AddCartItemInput{
		ProductID: product.ID, Quantity: 4, Color: "red", Size: "42",
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestMergeInsufficientStockLeavesExistingRow(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(5))

	input := AddCartItemInput{ProductID: product.ID, Quantity: 3, Color: "red", Size: "42"}
	first, err := AddOrMergeCartItem(db, 1, input)
	require.NoError(t, err)

	// 3 + 3 exceeds stock of 5
	_, err = AddOrMergeCartItem(db, 1, input)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var item models.CartItem
	require.NoError(t, db.First(&item, first.Item.ID).Error)
	assert.Equal(t, 3, item.Quantity, "failed merge must not change the existing row")
}

func TestAddUntrackedStockNeverBlocks(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", nil)

	result, err := AddOrMergeCartItem(db, 1, AddCartItemInput{
		ProductID: product.ID, Quantity: 9999, Color: "red", Size: "42",
	})
	require.NoError(t, err)
	assert.Equal(t, 9999, result.Item.Quantity)
}

func TestAddUnknownProduct(t *testing.T) {
	db := setupTestDB(t)

	_, err := AddOrMergeCartItem(db, 1, AddCartItemInput{
		ProductID: 42, Quantity: 1, Color: "red", Size: "42",
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddValidation(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(10))

	tests := []struct {
		name  string
		input AddCartItemInput
		field string
	}{
		{"missing color", AddCartItemInput{ProductID: product.ID, Quantity: 1, Size: "42"}, "color"},
		{"missing size", AddCartItemInput{ProductID: product.ID, Quantity: 1, Color: "red"}, "size"},
		{"zero quantity", AddCartItemInput{ProductID: product.ID, Quantity: 0, Color: "red", Size: "42"}, "quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AddOrMergeCartItem(db, 1, tt.input)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "expected validation error, got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestUpdateQuantityChecksCurrentStock(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(10))

	result, err := AddOrMergeCartItem(db, 1, AddCartItemInput{
		ProductID: product.ID, Quantity: 2, Color: "red", Size: "42",
	})
	require.NoError(t, err)

	// Stock shrinks after the item was added
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("stock", 4).Error)

	_, err = UpdateCartItemByID(db, 1, result.Item.ID, UpdateCartItemInput{Quantity: intPtr(5)})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	updated, err := UpdateCartItemByID(db, 1, result.Item.ID, UpdateCartItemInput{Quantity: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Item.Quantity)
}

func TestUpdateVariantFields(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(10))

	result, err := AddOrMergeCartItem(db, 1, AddCartItemInput{
		ProductID: product.ID, Quantity: 2, Color: "red", Size: "42",
	})
	require.NoError(t, err)

	blue := "blue"
	updated, err := UpdateCartItemByID(db, 1, result.Item.ID, UpdateCartItemInput{Color: &blue})
	require.NoError(t, err)
	assert.Equal(t, "blue", updated.Item.Color)
	assert.Equal(t, "42", updated.Item.Size, "unset fields keep their value")
	assert.Equal(t, 2, updated.Item.Quantity)
}

func TestUpdateRejectsEmptyVariantFields(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(10))

	result, err := AddOrMergeCartItem(db, 1, AddCartItemInput{
		ProductID: product.ID, Quantity: 2, Color: "red", Size: "42",
	})
	require.NoError(t, err)

	empty := ""
	_, err = UpdateCartItemByID(db, 1, result.Item.ID, UpdateCartItemInput{Color: &empty})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "color", vErr.Field)

	_, err = UpdateCartItemByID(db, 1, result.Item.ID, UpdateCartItemInput{Size: &empty})
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "size", vErr.Field)
}

func TestUpdateOtherUsersItem(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(10))

	result, err := AddOrMergeCartItem(db, 1, AddCartItemInput{
		ProductID: product.ID, Quantity: 2, Color: "red", Size: "42",
	})
	require.NoError(t, err)

	_, err = UpdateCartItemByID(db, 2, result.Item.ID, UpdateCartItemInput{Quantity: intPtr(1)})
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

// -------- Handler tests --------

func newCartRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.GET("/api/cart", GetCartItems(db))
	r.POST("/api/cart", AddCartItem(db))
	r.PUT("/api/cart/:id", UpdateCartItem(db))
	r.DELETE("/api/cart/:id", DeleteCartItem(db))
	r.DELETE("/api/cart", ClearCart(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddCartItemHandlerCreatedThenMerged(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(10))
	r := newCartRouter(db, 1)

	body := map[string]any{"product": product.ID, "quantity": 2, "color": "red", "size": "42"}

	w := doJSON(t, r, http.MethodPost, "/api/cart", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/cart", body)
	assert.Equal(t, http.StatusOK, w.Code, "merge answers 200, not 201")

	var resp CartItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Quantity)
	assert.Equal(t, "Runner", resp.ProductName)
}

func TestAddCartItemHandlerFieldErrors(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(10))
	r := newCartRouter(db, 1)

	w := doJSON(t, r, http.MethodPost, "/api/cart", map[string]any{
		"product": product.ID, "quantity": 2, "size": "42",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Color is required.", resp["color"])
}

func TestDeleteCartItemHandler(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(10))
	r := newCartRouter(db, 1)

	result, err := AddOrMergeCartItem(db, 1, AddCartItemInput{
		ProductID: product.ID, Quantity: 1, Color: "red", Size: "42",
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/cart/%d", result.Item.ID)
	w := doJSON(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearCartHandler(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(10))
	r := newCartRouter(db, 1)

	for _, color := range []string{"red", "blue"} {
		_, err := AddOrMergeCartItem(db, 1, AddCartItemInput{
			ProductID: product.ID, Quantity: 1, Color: color, Size: "42",
		})
		require.NoError(t, err)
	}
	// Another user's cart must survive the clear
	_, err := AddOrMergeCartItem(db, 2, AddCartItemInput{
		ProductID: product.ID, Quantity: 1, Color: "red", Size: "42",
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodDelete, "/api/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var mine, theirs int64
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&mine)
	db.Model(&models.CartItem{}).Where("user_id = ?", 2).Count(&theirs)
	assert.EqualValues(t, 0, mine)
	assert.EqualValues(t, 1, theirs)
}

func TestGetCartItemsHandler(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", intPtr(10))
	r := newCartRouter(db, 1)

	_, err := AddOrMergeCartItem(db, 1, AddCartItemInput{
		ProductID: product.ID, Quantity: 2, Color: "red", Size: "42",
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []CartItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, product.ID, resp[0].Product)
	assert.True(t, resp[0].ProductPrice.Equal(product.Price))
}
