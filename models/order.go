package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable snapshot of a checkout. It is created exactly once
// from the cart contents and never regenerated.
type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint        `gorm:"not null;index" json:"user"`
	User            User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ShippingAddress string      `gorm:"size:255;not null" json:"shipping_address"`
	City            string      `gorm:"size:100" json:"city"`
	PostalCode      string      `gorm:"size:20" json:"postal_code"`
	Country         string      `gorm:"size:100" json:"country"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"-"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID uint    `json:"-"`
	Product   Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Color     string  `gorm:"size:50" json:"color"`
	Size      string  `gorm:"size:50" json:"size"`
	// Price is the product price captured at order time. Later catalog price
	// changes must not touch it.
	Price decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
}
