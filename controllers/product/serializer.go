package productcontroller

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rizwan-khalid06/Buyzi-app/models"
)

// ProductResponse is the wire shape of a catalog product. IsFavourite is
// computed per requesting user, false for anonymous requests.
type ProductResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	IsFavourite bool            `json:"is_favourite"`
	Image       string          `json:"image"`
	Stock       *int            `json:"stock"`
	Category    models.Category `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewProductResponse(p models.Product, isFavourite bool) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		IsFavourite: isFavourite,
		Image:       p.Image,
		Stock:       p.Stock,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
	}
}

// ProductListResponse builds responses for a product slice, resolving the
// requesting user's favourites in one query.
func ProductListResponse(db *gorm.DB, products []models.Product, userID uint) ([]ProductResponse, error) {
	favourites := make(map[uint]bool)
	if userID != 0 && len(products) > 0 {
		ids := make([]uint, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		var favs []models.Favourite
		if err := db.Where("user_id = ? AND product_id IN ?", userID, ids).Find(&favs).Error; err != nil {
			return nil, err
		}
		for _, f := range favs {
			favourites[f.ProductID] = true
		}
	}

	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, NewProductResponse(p, favourites[p.ID]))
	}
	return resp, nil
}

// requestUserID returns the authenticated user's ID, zero when anonymous.
func requestUserID(c *gin.Context) uint {
	if val, ok := c.Get("user_id"); ok {
		if id, ok := val.(uint); ok {
			return id
		}
	}
	return 0
}
