package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

// Catalog categories. The classifier service predicts into the same set, so
// the values here must stay in sync with its class list.
const (
	CategoryBalletflat Category = "balletflat"
	CategoryBoat       Category = "BOAT"
	CategoryBrogue     Category = "BROGUE"
	CategoryClog       Category = "CLOG"
	CategorySneaker    Category = "SNEAKER"
)

var allCategories = []Category{
	CategoryBalletflat,
	CategoryBoat,
	CategoryBrogue,
	CategoryClog,
	CategorySneaker,
}

// NormalizeCategory maps free-form input ("Ballet Flat", "sneaker") onto the
// stored enum value. Spaces collapse to underscores and matching is
// case-insensitive. The second return is false for unknown categories.
func NormalizeCategory(raw string) (Category, bool) {
	candidate := strings.ReplaceAll(strings.TrimSpace(raw), " ", "_")
	for _, cat := range allCategories {
		if strings.EqualFold(candidate, string(cat)) {
			return cat, true
		}
	}
	return "", false
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       *int            `json:"stock"` // nil means stock is not tracked
	Image       string          `json:"image"`
	Category    Category        `gorm:"type:VARCHAR(50)" json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
}

// InStock reports whether the product can cover the requested quantity.
// Untracked stock never blocks a sale.
func (p *Product) InStock(quantity int) bool {
	if p.Stock == nil {
		return true
	}
	return *p.Stock >= quantity
}
