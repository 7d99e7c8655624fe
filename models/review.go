package models

import (
	"gorm.io/gorm"
)

// Review is a customer rating of a product
type Review struct {
	gorm.Model
	UserID    uint `gorm:"not null;index" json:"user_id"`
	ProductID uint `gorm:"not null;index" json:"product_id"`

	Rating  int    `gorm:"not null" json:"rating"` // 1..5
	Comment string `json:"comment"`

	// Moderation
	IsApproved bool `gorm:"default:true" json:"is_approved"`

	User    User    `json:"user,omitempty"`
	Product Product `json:"-"`
}
