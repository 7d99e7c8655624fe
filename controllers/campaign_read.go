package controller

import (
	"github.com/gofiber/fiber/v2"

	"ecomadmin/models"
)

// GetCampaigns lists the user's campaigns, newest first
func (cc *CampaignController) GetCampaigns(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	query := cc.DB.Where("user_id = ?", user.ID).Order("updated_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	var campaigns []models.Campaign
	if err := query.Limit(limit).Offset(offset).Find(&campaigns).Error; err != nil {
		cc.Logger.Printf("Failed to list campaigns: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch campaigns",
		})
	}

	return c.JSON(fiber.Map{
		"campaigns": campaigns,
		"count":     len(campaigns),
	})
}

// GetCampaign returns one campaign with its full document
func (cc *CampaignController) GetCampaign(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}
	return c.JSON(fiber.Map{
		"campaign": campaign,
	})
}
