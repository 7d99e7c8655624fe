package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecomadmin/models"
	"ecomadmin/utils"
)

type ReviewController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewReviewController(db *gorm.DB, logger *log.Logger) *ReviewController {
	return &ReviewController{DB: db, Logger: logger}
}

// CreateReview records a rating for a product
func (rc *ReviewController) CreateReview(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		ProductID uint   `json:"product_id" validate:"required"`
		Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
		Comment   string `json:"comment"`
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
	if err := rc.DB.First(&product, input.ProductID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	review := models.Review{
		UserID:     user.ID,
		ProductID:  input.ProductID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		IsApproved: true,
	}
	if err := rc.DB.Create(&review).Error; err != nil {
		rc.Logger.Printf("Failed to create review: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create review",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(review))
}

// GetReviews lists reviews, optionally for one product or only unapproved ones
func (rc *ReviewController) GetReviews(c *fiber.Ctx) error {
	query := rc.DB.Preload("User").Order("created_at DESC")

	if productID := c.QueryInt("product_id", 0); productID > 0 {
		query = query.Where("product_id = ?", productID)
	}
	if c.Query("approved") != "" {
		query = query.Where("is_approved = ?", c.QueryBool("approved"))
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)

	var reviews []models.Review
	if err := query.Limit(limit).Offset(offset).Find(&reviews).Error; err != nil {
		rc.Logger.Printf("Failed to list reviews: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch reviews",
		})
	}

	return c.JSON(utils.SuccessResponse(reviews))
}

// UpdateReview edits a review's rating, comment or moderation flag
func (rc *ReviewController) UpdateReview(c *fiber.Ctx) error {
	reviewID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review ID",
		})
	}

	var review models.Review
	if err := rc.DB.First(&review, reviewID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found",
		})
	}

	var input struct {
		Rating     *int    `json:"rating"`
		Comment    *string `json:"comment"`
		IsApproved *bool   `json:"is_approved"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Rating must be between 1 and 5",
			})
		}
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = *input.Comment
	}
	if input.IsApproved != nil {
		review.IsApproved = *input.IsApproved
	}

	if err := rc.DB.Save(&review).Error; err != nil {
		rc.Logger.Printf("Failed to update review %d: %v", review.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update review",
		})
	}

	return c.JSON(utils.SuccessResponse(review))
}

// DeleteReview removes a review
func (rc *ReviewController) DeleteReview(c *fiber.Ctx) error {
	reviewID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review ID",
		})
	}

	if err := rc.DB.Delete(&models.Review{}, reviewID).Error; err != nil {
		rc.Logger.Printf("Failed to delete review %d: %v", reviewID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete review",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Review deleted successfully",
	})
}
