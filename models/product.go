package models

import (
	"gorm.io/gorm"
)

// Category groups products for the storefront navigation
type Category struct {
	gorm.Model
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// Product represents a sellable item
type Product struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	PriceCents  int    `gorm:"not null" json:"price_cents"`
	Stock       int    `gorm:"default:0" json:"stock"`
	CategoryID  *uint  `gorm:"index" json:"category_id,omitempty"`
	IsArchived  bool   `gorm:"default:false" json:"is_archived"`

	// Media and variant options stored as JSON
	ImageURLs []string `json:"image_urls" gorm:"type:jsonb;serializer:json"`
	Flavors   []string `json:"flavors" gorm:"type:jsonb;serializer:json"`
	Sizes     []string `json:"sizes" gorm:"type:jsonb;serializer:json"`

	// Relations
	Category *Category `json:"category,omitempty"`
	Reviews  []Review  `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`
}
