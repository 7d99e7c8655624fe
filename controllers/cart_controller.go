package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecomadmin/models"
	"ecomadmin/utils"
)

type CartController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewCartController(db *gorm.DB, logger *log.Logger) *CartController {
	return &CartController{DB: db, Logger: logger}
}

// GetUserCart returns a user's cart, creating an empty one on first access
func (cc *CartController) GetUserCart(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	cart, err := cc.loadOrCreateCart(uint(userID))
	if err != nil {
		cc.Logger.Printf("Failed to load cart for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch cart",
		})
	}

	return c.JSON(utils.SuccessResponse(cart))
}

// AddCartItem puts a product variant in the cart. The same product with a
// different flavor or size is a separate line; an exact duplicate is rejected.
func (cc *CartController) AddCartItem(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var input struct {
		ProductID uint   `json:"product_id" validate:"required"`
		Quantity  int    `json:"quantity" validate:"gte=1"`
		Flavor    string `json:"flavor"`
		Size      string `json:"size"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var product models.Product
	if err := cc.DB.First(&product, input.ProductID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	cart, err := cc.loadOrCreateCart(uint(userID))
	if err != nil {
		cc.Logger.Printf("Failed to load cart for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update cart",
		})
	}

	for _, item := range cart.Items {
		if item.ProductID == input.ProductID && item.Flavor == input.Flavor && item.Size == input.Size {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "This variant is already in the cart. Update its quantity instead.",
			})
		}
	}

	item := models.CartItem{
		CartID:    cart.ID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Flavor:    input.Flavor,
		Size:      input.Size,
	}
	if err := cc.DB.Create(&item).Error; err != nil {
		cc.Logger.Printf("Failed to add cart item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update cart",
		})
	}

	cart, err = cc.loadOrCreateCart(uint(userID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch cart",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(cart))
}

// UpdateCartItem changes the quantity of one cart line
func (cc *CartController) UpdateCartItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("itemID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid cart item ID",
		})
	}

	var input struct {
		Quantity int `json:"quantity" validate:"required,gte=1"`
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

	var item models.CartItem
	if err := cc.DB.First(&item, itemID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Cart item not found",
		})
	}

	item.Quantity = input.Quantity
	if err := cc.DB.Save(&item).Error; err != nil {
		cc.Logger.Printf("Failed to update cart item %d: %v", item.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update cart",
		})
	}

	return c.JSON(utils.SuccessResponse(item))
}

// RemoveCartItem deletes one line from the cart
func (cc *CartController) RemoveCartItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("itemID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid cart item ID",
		})
	}

	if err := cc.DB.Delete(&models.CartItem{}, itemID).Error; err != nil {
		cc.Logger.Printf("Failed to remove cart item %d: %v", itemID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update cart",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Item removed from cart",
	})
}

func (cc *CartController) loadOrCreateCart(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := cc.DB.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	cart = models.Cart{UserID: userID}
	if err := cc.DB.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}
