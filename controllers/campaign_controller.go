package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecomadmin/editor"
	"ecomadmin/models"
	"ecomadmin/worker"
)

// CampaignController owns the campaign document endpoints: CRUD on the rows
// plus every step/content/logic mutation, routed through the editing store.
type CampaignController struct {
	DB      *gorm.DB
	Logger  *log.Logger
	Drafts  editor.DraftStore
	Exports *worker.ExportWorker
}

func NewCampaignController(db *gorm.DB, logger *log.Logger, drafts editor.DraftStore, exports *worker.ExportWorker) *CampaignController {
	return &CampaignController{
		DB:      db,
		Logger:  logger,
		Drafts:  drafts,
		Exports: exports,
	}
}

// loadOwnedCampaign fetches the campaign from the :id param, scoped to the
// authenticated user. Writes the error response itself; callers return nil
// when ok is false.
func (cc *CampaignController) loadOwnedCampaign(c *fiber.Ctx) (*models.Campaign, bool) {
	user := c.Locals("user").(*models.User)

	campaignID, err := c.ParamsInt("id")
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid campaign ID",
		})
		return nil, false
	}

	var campaign models.Campaign
	if err := cc.DB.Where("id = ? AND user_id = ?", campaignID, user.ID).First(&campaign).Error; err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Campaign not found",
		})
		return nil, false
	}
	return &campaign, true
}

// saveDocument persists the edited document and renders it back to the
// caller. The editing store replaces the document wholesale, so a plain Save
// writes every touched column.
func (cc *CampaignController) saveDocument(c *fiber.Ctx, doc *models.Campaign) error {
	if err := cc.DB.Save(doc).Error; err != nil {
		cc.Logger.Printf("Failed to save campaign %d: %v", doc.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save campaign",
		})
	}
	return c.JSON(fiber.Map{
		"campaign": doc,
	})
}

// UpdateCampaignStatus toggles a campaign between active and inactive
func (cc *CampaignController) UpdateCampaignStatus(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if input.Status != models.CampaignStatusActive && input.Status != models.CampaignStatusInactive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be active or inactive",
		})
	}

	campaign.Status = input.Status
	campaign.LastModified = time.Now()
	return cc.saveDocument(c, campaign)
}
