package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecomadmin/models"
	"ecomadmin/utils"
)

type WishlistController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewWishlistController(db *gorm.DB, logger *log.Logger) *WishlistController {
	return &WishlistController{DB: db, Logger: logger}
}

// GetWishlists lists all wishlists with their items
func (wc *WishlistController) GetWishlists(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)

	var wishlists []models.Wishlist
	err := wc.DB.Preload("Items").Preload("Items.Product").
		Order("updated_at DESC").Limit(limit).Offset(offset).
		Find(&wishlists).Error
	if err != nil {
		wc.Logger.Printf("Failed to list wishlists: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch wishlists",
		})
	}

	return c.JSON(utils.SuccessResponse(wishlists))
}

// GetUserWishlist returns one user's wishlist, creating an empty one if the
// user has none yet.
func (wc *WishlistController) GetUserWishlist(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	wishlist, err := wc.loadOrCreateWishlist(uint(userID))
	if err != nil {
		wc.Logger.Printf("Failed to load wishlist for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch wishlist",
		})
	}

	return c.JSON(utils.SuccessResponse(wishlist))
}

// AddWishlistItem adds a product to a user's wishlist. Adding a product that
// is already on the list is a no-op.
func (wc *WishlistController) AddWishlistItem(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var input struct {
		ProductID uint `json:"product_id" validate:"required"`
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

	var product models.Product
	if err := wc.DB.First(&product, input.ProductID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	wishlist, err := wc.loadOrCreateWishlist(uint(userID))
	if err != nil {
		wc.Logger.Printf("Failed to load wishlist for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update wishlist",
		})
	}

	for _, item := range wishlist.Items {
		if item.ProductID == input.ProductID {
			return c.JSON(utils.SuccessResponse(wishlist))
		}
	}

	item := models.WishlistItem{WishlistID: wishlist.ID, ProductID: input.ProductID}
	if err := wc.DB.Create(&item).Error; err != nil {
		wc.Logger.Printf("Failed to add wishlist item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update wishlist",
		})
	}

	wishlist, err = wc.loadOrCreateWishlist(uint(userID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch wishlist",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(wishlist))
}

// RemoveWishlistItem takes a product off a user's wishlist
func (wc *WishlistController) RemoveWishlistItem(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}
	productID, err := c.ParamsInt("productID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product ID",
		})
	}

	var wishlist models.Wishlist
	if err := wc.DB.Where("user_id = ?", userID).First(&wishlist).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Wishlist not found",
		})
	}

	err = wc.DB.Where("wishlist_id = ? AND product_id = ?", wishlist.ID, productID).
		Delete(&models.WishlistItem{}).Error
	if err != nil {
		wc.Logger.Printf("Failed to remove wishlist item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update wishlist",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Item removed from wishlist",
	})
}

func (wc *WishlistController) loadOrCreateWishlist(userID uint) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := wc.DB.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).First(&wishlist).Error
	if err == nil {
		return &wishlist, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	wishlist = models.Wishlist{UserID: userID}
	if err := wc.DB.Create(&wishlist).Error; err != nil {
		return nil, err
	}
	return &wishlist, nil
}
