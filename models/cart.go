package models

import (
	"gorm.io/gorm"
)

// Cart holds a customer's in-progress selection, one cart per user
type Cart struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"`
}

// CartItem is one product plus the variant the customer picked. The same
// product may appear multiple times with different flavor/size combinations,
// but the same combination may not be added twice.
type CartItem struct {
	gorm.Model
	CartID    uint `gorm:"not null;index" json:"cart_id"`
	ProductID uint `gorm:"not null;index" json:"product_id"`

	Quantity int    `gorm:"default:1" json:"quantity"`
	Flavor   string `json:"flavor"`
	Size     string `json:"size"`

	Product Product `json:"product,omitempty"`
}
