package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecomadmin/models"
	"ecomadmin/utils"
)

type ProductController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewProductController(db *gorm.DB, logger *log.Logger) *ProductController {
	return &ProductController{DB: db, Logger: logger}
}

type productInput struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description string   `json:"description"`
	PriceCents  int      `json:"price_cents" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	CategoryID  *uint    `json:"category_id"`
	ImageURLs   []string `json:"image_urls"`
	Flavors     []string `json:"flavors"`
	Sizes       []string `json:"sizes"`
}

// CreateProduct adds a product to the catalog
func (pc *ProductController) CreateProduct(c *fiber.Ctx) error {
	var input productInput
	if err := c.BodyParser(&input); err != nil {
		pc.Logger.Printf("Error parsing request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
		ImageURLs:   input.ImageURLs,
		Flavors:     input.Flavors,
		Sizes:       input.Sizes,
	}
	if err := pc.DB.Create(&product).Error; err != nil {
		pc.Logger.Printf("Failed to create product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(product))
}

// GetProducts lists products with optional category/search filters
func (pc *ProductController) GetProducts(c *fiber.Ctx) error {
	query := pc.DB.Preload("Category").Order("created_at DESC")

	if categoryID := c.QueryInt("category_id", 0); categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if !c.QueryBool("include_archived", false) {
		query = query.Where("is_archived = ?", false)
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)

	var products []models.Product
	if err := query.Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		pc.Logger.Printf("Failed to list products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch products",
		})
	}

	return c.JSON(utils.SuccessResponse(products))
}

// GetProduct returns one product with its reviews
func (pc *ProductController) GetProduct(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product ID",
		})
	}

	var product models.Product
	if err := pc.DB.Preload("Category").Preload("Reviews").First(&product, productID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	return c.JSON(utils.SuccessResponse(product))
}

// UpdateProduct applies partial updates to a product
func (pc *ProductController) UpdateProduct(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product ID",
		})
	}

	var product models.Product
	if err := pc.DB.First(&product, productID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	// Pointers so absent fields are left untouched
	var input struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		PriceCents  *int      `json:"price_cents"`
		Stock       *int      `json:"stock"`
		CategoryID  *uint     `json:"category_id"`
		ImageURLs   *[]string `json:"image_urls"`
		Flavors     *[]string `json:"flavors"`
		Sizes       *[]string `json:"sizes"`
		IsArchived  *bool     `json:"is_archived"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PriceCents != nil {
		if *input.PriceCents < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Price cannot be negative",
			})
		}
		product.PriceCents = *input.PriceCents
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Stock cannot be negative",
			})
		}
		product.Stock = *input.Stock
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.ImageURLs != nil {
		product.ImageURLs = *input.ImageURLs
	}
	if input.Flavors != nil {
		product.Flavors = *input.Flavors
	}
	if input.Sizes != nil {
		product.Sizes = *input.Sizes
	}
	if input.IsArchived != nil {
		product.IsArchived = *input.IsArchived
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		pc.Logger.Printf("Failed to update product %d: %v", product.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update product",
		})
	}

	return c.JSON(utils.SuccessResponse(product))
}

// DeleteProduct removes a product from the catalog
func (pc *ProductController) DeleteProduct(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product ID",
		})
	}

	if err := pc.DB.Delete(&models.Product{}, productID).Error; err != nil {
		pc.Logger.Printf("Failed to delete product %d: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete product",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// GetCategories lists the available product categories
func (pc *ProductController) GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := pc.DB.Order("name").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch categories",
		})
	}
	return c.JSON(utils.SuccessResponse(categories))
}

// CreateCategory adds a product category
func (pc *ProductController) CreateCategory(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name" validate:"required,min=1,max=100"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	category := models.Category{Name: input.Name, Description: input.Description}
	if err := pc.DB.Create(&category).Error; err != nil {
		pc.Logger.Printf("Failed to create category: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create category",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(category))
}
