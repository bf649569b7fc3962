package models

import "time"

// CartItem is one purchasable line in a user's cart. A variant of a product
// (same product, colour, size) always collapses onto a single row; the
// composite unique index enforces that at the storage level, the merge logic
// in the cart controller enforces it at the request level.
type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_variant" json:"-"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_variant" json:"product"`
	Product   Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Color     string    `gorm:"size:50;uniqueIndex:idx_cart_variant" json:"color"`
	Size      string    `gorm:"size:10;uniqueIndex:idx_cart_variant" json:"size"`
	AddedAt   time.Time `json:"added_at"`
}
