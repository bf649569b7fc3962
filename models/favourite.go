package models

// Favourite marks a product as favourited by a user. One row per
// (user, product) pair; the toggle endpoint flips it into and out of
// existence.
type Favourite struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint    `gorm:"not null;uniqueIndex:idx_user_product" json:"user"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_user_product" json:"product"`
	Product   Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}
