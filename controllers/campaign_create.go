package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"ecomadmin/editor"
	"ecomadmin/models"
	"ecomadmin/utils"
)

// CreateCampaign creates a fresh campaign with the default "Welcome Screen"
// step. A full document (steps, libraries) may be supplied to seed it
// instead, which is how the console publishes a locally built flow.
func (cc *CampaignController) CreateCampaign(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Name         string                `json:"name" validate:"required,min=1,max=120"`
		Status       string                `json:"status" validate:"omitempty,oneof=active inactive"`
		Steps        []models.Step         `json:"steps"`
		Images       []models.ImageAsset   `json:"images"`
		Questions    []models.Question     `json:"questions"`
		TextSnippets []models.TextSnippet  `json:"text_snippets"`
		Buttons      []models.ButtonAsset  `json:"buttons"`
	}

	if err := c.BodyParser(&input); err != nil {
		cc.Logger.Printf("Error parsing request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	campaign := editor.NewCampaignDocument(user.ID, input.Name)
	if input.Status != "" {
		campaign.Status = input.Status
	}
	if len(input.Steps) > 0 {
		campaign.Steps = input.Steps
	}
	if len(input.Images) > 0 {
		campaign.Images = input.Images
	}
	if len(input.Questions) > 0 {
		campaign.Questions = input.Questions
	}
	if len(input.TextSnippets) > 0 {
		campaign.TextSnippets = input.TextSnippets
	}
	if len(input.Buttons) > 0 {
		campaign.Buttons = input.Buttons
	}

	if err := cc.DB.Create(campaign).Error; err != nil {
		cc.Logger.Printf("Failed to create campaign: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create campaign",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Campaign created successfully",
		"campaign": campaign,
	})
}
