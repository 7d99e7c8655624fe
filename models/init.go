package models

import "gorm.io/gorm"

// CreateDefaultCategories seeds the category table on first boot
func CreateDefaultCategories(db *gorm.DB) error {
	defaultCategories := []Category{
		{
			Name:        "supplements",
			Description: "Protein powders, vitamins and nutrition",
		},
		{
			Name:        "apparel",
			Description: "Branded clothing and accessories",
		},
		{
			Name:        "equipment",
			Description: "Training and home gym equipment",
		},
		{
			Name:        "uncategorized",
			Description: "Products without an assigned category",
		},
	}
	for _, category := range defaultCategories {
		if err := db.FirstOrCreate(&category, "name = ?", category.Name).Error; err != nil {
			return err
		}
	}
	return nil
}
