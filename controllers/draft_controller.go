package controller

import (
	"github.com/gofiber/fiber/v2"

	"ecomadmin/editor"
	"ecomadmin/models"
)

// GetDraft returns the user's in-progress campaign. When the slot is empty a
// fresh default document is returned instead (not persisted), which is the
// document the create flow starts from.
func (cc *CampaignController) GetDraft(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	draft, err := cc.Drafts.Get(c.Context(), user.ID)
	if err != nil {
		cc.Logger.Printf("Failed to load draft for user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load draft",
		})
	}

	if draft == nil {
		return c.JSON(fiber.Map{
			"draft":      editor.NewCampaignDocument(user.ID, "Untitled Campaign"),
			"from_draft": false,
		})
	}
	return c.JSON(fiber.Map{
		"draft":      draft,
		"from_draft": true,
	})
}

// SaveDraft overwrites the user's draft slot wholesale. The console calls
// this after a short debounce on every edit in the create flow.
func (cc *CampaignController) SaveDraft(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var doc models.Campaign
	if err := c.BodyParser(&doc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	doc.UserID = user.ID

	if err := cc.Drafts.Save(c.Context(), user.ID, &doc); err != nil {
		cc.Logger.Printf("Failed to save draft for user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save draft",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Draft saved",
	})
}

// ClearDraft empties the slot; the create flow restarts from a fresh default
func (cc *CampaignController) ClearDraft(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if err := cc.Drafts.Clear(c.Context(), user.ID); err != nil {
		cc.Logger.Printf("Failed to clear draft for user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear draft",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Draft cleared",
		"draft":   editor.NewCampaignDocument(user.ID, "Untitled Campaign"),
	})
}

// PublishDraft persists the draft as a real campaign and clears the slot.
// The slot is only cleared after the database write succeeds, so a failed
// publish keeps the work in progress.
func (cc *CampaignController) PublishDraft(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	draft, err := cc.Drafts.Get(c.Context(), user.ID)
	if err != nil {
		cc.Logger.Printf("Failed to load draft for user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load draft",
		})
	}
	if draft == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No draft to publish",
		})
	}

	draft.UserID = user.ID
	if draft.Status == "" {
		draft.Status = models.CampaignStatusInactive
	}

	// An existing row id means the draft was edited from a saved campaign
	var dbErr error
	if draft.ID != 0 {
		dbErr = cc.DB.Save(draft).Error
	} else {
		dbErr = cc.DB.Create(draft).Error
	}
	if dbErr != nil {
		cc.Logger.Printf("Failed to publish draft for user %d: %v", user.ID, dbErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to publish campaign. Please try again.",
		})
	}

	if err := cc.Drafts.Clear(c.Context(), user.ID); err != nil {
		// The campaign is saved; a stale draft slot is only a nuisance
		cc.Logger.Printf("Failed to clear draft after publish for user %d: %v", user.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Campaign published successfully",
		"campaign": draft,
	})
}
