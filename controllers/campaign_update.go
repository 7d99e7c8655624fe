package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"ecomadmin/editor"
	"ecomadmin/models"
)

// UpdateCampaign applies partial updates to campaign metadata
func (cc *CampaignController) UpdateCampaign(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	// Pointers so absent fields are left untouched
	var input struct {
		Name   *string `json:"name"`
		Status *string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		cc.Logger.Printf("Error parsing request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Campaign name cannot be empty",
			})
		}
		campaign.Name = name
	}
	if input.Status != nil {
		if *input.Status != models.CampaignStatusActive && *input.Status != models.CampaignStatusInactive {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Status must be active or inactive",
			})
		}
		campaign.Status = *input.Status
	}
	campaign.LastModified = time.Now()

	return cc.saveDocument(c, campaign)
}

// AddStep appends a new empty step to the campaign
func (cc *CampaignController) AddStep(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	store := editor.NewStoreFor(campaign)
	step := store.AddStep()
	if err := cc.DB.Save(store.Current()).Error; err != nil {
		cc.Logger.Printf("Failed to save campaign %d: %v", campaign.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save campaign",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"step":     step,
		"campaign": store.Current(),
	})
}

// DeleteStep removes a step by id. Unknown step ids fall through as a no-op,
// matching the editing model.
func (cc *CampaignController) DeleteStep(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	store := editor.NewStoreFor(campaign)
	store.DeleteStep(c.Params("stepID"))
	return cc.saveDocument(c, store.Current())
}

// UpdateStepName renames a step
func (cc *CampaignController) UpdateStepName(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Step name cannot be empty",
		})
	}

	store := editor.NewStoreFor(campaign)
	store.UpdateStepName(c.Params("stepID"), name)
	return cc.saveDocument(c, store.Current())
}

// UpdateStepStyle shallow-merges a partial style into the step
func (cc *CampaignController) UpdateStepStyle(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	var patch editor.StylePatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	store := editor.NewStoreFor(campaign)
	store.UpdateStyle(c.Params("stepID"), patch)
	return cc.saveDocument(c, store.Current())
}

// SetStepBackground sets or clears the step's background image reference.
// The id is not checked against the image library; a dangling reference
// renders as no background.
func (cc *CampaignController) SetStepBackground(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	var input struct {
		AssetID *string `json:"assetId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	store := editor.NewStoreFor(campaign)
	store.SetBackground(c.Params("stepID"), input.AssetID)
	return cc.saveDocument(c, store.Current())
}

// AddStepContent places a library asset reference on the step. Rejected with
// a user-facing message when the step's estimated content height would
// overflow the visible frame.
func (cc *CampaignController) AddStepContent(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	var item models.ContentItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	switch item.Type {
	case models.ContentTypeQuestion, models.ContentTypeTextSnippet, models.ContentTypeButton:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Content type must be QUESTION, TEXT_SNIPPET or BUTTON",
		})
	}

	store := editor.NewStoreFor(campaign)
	if err := store.AddContent(c.Params("stepID"), item); err != nil {
		if errors.Is(err, editor.ErrNotEnoughSpace) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "Not enough space on this step",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add content",
		})
	}
	return cc.saveDocument(c, store.Current())
}

// RemoveStepContent removes the content item at the given position.
// Out-of-range indexes are a silent no-op.
func (cc *CampaignController) RemoveStepContent(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid content index",
		})
	}

	store := editor.NewStoreFor(campaign)
	store.RemoveContent(c.Params("stepID"), index)
	return cc.saveDocument(c, store.Current())
}

// ReorderStepContent moves one content item to a new position within its step
func (cc *CampaignController) ReorderStepContent(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	var input struct {
		DragIndex  int `json:"dragIndex"`
		HoverIndex int `json:"hoverIndex"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	store := editor.NewStoreFor(campaign)
	store.ReorderContent(c.Params("stepID"), input.DragIndex, input.HoverIndex)
	return cc.saveDocument(c, store.Current())
}

// ResizeStepContent overwrites the explicit width/height of a content item
func (cc *CampaignController) ResizeStepContent(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid content index",
		})
	}

	var input struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	store := editor.NewStoreFor(campaign)
	store.ResizeContent(c.Params("stepID"), index, input.Width, input.Height)
	return cc.saveDocument(c, store.Current())
}

// UpdateStepLogic replaces the branching rule for a (question, option) pair.
// A null nextStepId removes the rule.
func (cc *CampaignController) UpdateStepLogic(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	var input struct {
		QuestionID  string  `json:"questionId"`
		OptionValue string  `json:"optionValue"`
		NextStepID  *string `json:"nextStepId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if input.QuestionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "questionId is required",
		})
	}

	store := editor.NewStoreFor(campaign)
	store.UpdateLogic(c.Params("stepID"), input.QuestionID, input.OptionValue, input.NextStepID)
	return cc.saveDocument(c, store.Current())
}
