package controller

import (
	"github.com/gofiber/fiber/v2"
)

// DeleteCampaign deletes a campaign. The document and its asset libraries
// live on the row itself, so there are no dependent tables to clean up.
func (cc *CampaignController) DeleteCampaign(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	if err := cc.DB.Delete(campaign).Error; err != nil {
		cc.Logger.Printf("Failed to delete campaign %d: %v", campaign.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete campaign",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Campaign deleted successfully",
	})
}
