package models

import (
	"gorm.io/gorm"
)

// Wishlist holds products a customer saved for later, one list per user
type Wishlist struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`

	Items []WishlistItem `gorm:"foreignKey:WishlistID" json:"items,omitempty"`
}

// WishlistItem links a wishlist to a product
type WishlistItem struct {
	gorm.Model
	WishlistID uint `gorm:"not null;index" json:"wishlist_id"`
	ProductID  uint `gorm:"not null;index" json:"product_id"`

	Product Product `json:"product,omitempty"`
}
