package productcontroller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rizwan-khalid06/Buyzi-app/models"
)

func newAdminRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/products", CreateProduct(db))
	r.PUT("/api/products/:id", UpdateProduct(db))
	r.DELETE("/api/products/:id", DeleteProduct(db))
	return r
}

func doForm(t *testing.T, r *gin.Engine, method, path string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProduct(t *testing.T) {
	db := setupTestDB(t)
	r := newAdminRouter(db)

	w := doForm(t, r, http.MethodPost, "/api/products", map[string]string{
		"name":        "Runner",
		"description": "Lightweight trainer",
		"price":       "49.995", // rounds to 2 places
		"stock":       "10",
		"category":    "sneaker",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Runner", resp.Name)
	assert.True(t, resp.Price.Equal(decimal.RequireFromString("50.00")), "price was %s", resp.Price)
	require.NotNil(t, resp.Stock)
	assert.Equal(t, 10, *resp.Stock)
	assert.Equal(t, models.CategorySneaker, resp.Category)
}

func TestCreateProductUntrackedStock(t *testing.T) {
	db := setupTestDB(t)
	r := newAdminRouter(db)

	w := doForm(t, r, http.MethodPost, "/api/products", map[string]string{
		"name": "Runner", "price": "49.99",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Stock, "omitted stock means untracked")
}

func TestCreateProductValidation(t *testing.T) {
	db := setupTestDB(t)
	r := newAdminRouter(db)

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"missing name", map[string]string{"price": "49.99"}},
		{"missing price", map[string]string{"name": "Runner"}},
		{"bad price", map[string]string{"name": "Runner", "price": "cheap"}},
		{"negative price", map[string]string{"name": "Runner", "price": "-1"}},
		{"negative stock", map[string]string{"name": "Runner", "price": "49.99", "stock": "-2"}},
		{"unknown category", map[string]string{"name": "Runner", "price": "49.99", "category": "sandal"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doForm(t, r, http.MethodPost, "/api/products", tt.fields)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUpdateProductPartial(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", models.CategorySneaker)
	r := newAdminRouter(db)

	path := fmt.Sprintf("/api/products/%d", product.ID)
	w := doForm(t, r, http.MethodPut, path, map[string]string{"price": "59.99"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Price.Equal(decimal.RequireFromString("59.99")))
	assert.Equal(t, "Runner", resp.Name, "untouched fields keep their value")
	assert.Equal(t, models.CategorySneaker, resp.Category)
}

func TestUpdateProductClearsStock(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", models.CategorySneaker)
	ten := 10
	require.NoError(t, db.Model(&product).Update("stock", &ten).Error)
	r := newAdminRouter(db)

	// An explicitly empty stock field flips the product back to untracked
	w := doForm(t, r, http.MethodPut, fmt.Sprintf("/api/products/%d", product.ID),
		map[string]string{"stock": ""})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Stock)
}

func TestUpdateProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := newAdminRouter(db)

	w := doForm(t, r, http.MethodPut, "/api/products/999", map[string]string{"price": "59.99"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProductCascades(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Runner", models.CategorySneaker)
	keep := seedProduct(t, db, "Deck Boat", models.CategoryBoat)

	require.NoError(t, db.Create(&models.CartItem{
		UserID: 1, ProductID: product.ID, Quantity: 1, Color: "red", Size: "42",
	}).Error)
	require.NoError(t, db.Create(&models.Favourite{UserID: 1, ProductID: product.ID}).Error)
	require.NoError(t, db.Create(&models.CartItem{
		UserID: 1, ProductID: keep.ID, Quantity: 1, Color: "navy", Size: "42",
	}).Error)

	r := newAdminRouter(db)
	w := doForm(t, r, http.MethodDelete, fmt.Sprintf("/api/products/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products, cartItems, favourites int64
	db.Model(&models.Product{}).Count(&products)
	db.Model(&models.CartItem{}).Count(&cartItems)
	db.Model(&models.Favourite{}).Count(&favourites)
	assert.EqualValues(t, 1, products)
	assert.EqualValues(t, 1, cartItems, "only the deleted product's cart rows go")
	assert.EqualValues(t, 0, favourites)
}
