package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ecomadmin/models"
	"ecomadmin/utils"
)

// Library names as they appear in the URL
const (
	libraryImages       = "images"
	libraryQuestions    = "questions"
	libraryTextSnippets = "text-snippets"
	libraryButtons      = "buttons"
)

// AddLibraryAsset appends a new entry to one of the campaign's four asset
// libraries, assigning it a fresh id.
func (cc *CampaignController) AddLibraryAsset(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	id := uuid.NewString()
	switch c.Params("library") {
	case libraryImages:
		var asset models.ImageAsset
		if err := c.BodyParser(&asset); err != nil {
			return badLibraryBody(c)
		}
		asset.ID = id
		campaign.Images = append(campaign.Images, asset)
	case libraryQuestions:
		var question struct {
			Text        string   `json:"text" validate:"required"`
			Type        string   `json:"type" validate:"required,oneof=TEXT DROPDOWN DATE SIGN"`
			Placeholder string   `json:"placeholder"`
			Options     []string `json:"options"`
		}
		if err := c.BodyParser(&question); err != nil {
			return badLibraryBody(c)
		}
		if err := utils.ValidateStruct(question); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		campaign.Questions = append(campaign.Questions, models.Question{
			ID:          id,
			Text:        question.Text,
			Type:        question.Type,
			Placeholder: question.Placeholder,
			Options:     question.Options,
		})
	case libraryTextSnippets:
		var snippet models.TextSnippet
		if err := c.BodyParser(&snippet); err != nil {
			return badLibraryBody(c)
		}
		snippet.ID = id
		campaign.TextSnippets = append(campaign.TextSnippets, snippet)
	case libraryButtons:
		var button models.ButtonAsset
		if err := c.BodyParser(&button); err != nil {
			return badLibraryBody(c)
		}
		button.ID = id
		campaign.Buttons = append(campaign.Buttons, button)
	default:
		return unknownLibrary(c)
	}

	campaign.LastModified = time.Now()
	return cc.saveDocument(c, campaign)
}

// UpdateLibraryAsset replaces an entry wholesale, matched by id. A missing
// id is a silent no-op: the unchanged document is returned.
func (cc *CampaignController) UpdateLibraryAsset(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	assetID := c.Params("assetID")
	touched := false

	switch c.Params("library") {
	case libraryImages:
		var asset models.ImageAsset
		if err := c.BodyParser(&asset); err != nil {
			return badLibraryBody(c)
		}
		asset.ID = assetID
		for i := range campaign.Images {
			if campaign.Images[i].ID == assetID {
				campaign.Images[i] = asset
				touched = true
				break
			}
		}
	case libraryQuestions:
		var question models.Question
		if err := c.BodyParser(&question); err != nil {
			return badLibraryBody(c)
		}
		question.ID = assetID
		for i := range campaign.Questions {
			if campaign.Questions[i].ID == assetID {
				campaign.Questions[i] = question
				touched = true
				break
			}
		}
	case libraryTextSnippets:
		var snippet models.TextSnippet
		if err := c.BodyParser(&snippet); err != nil {
			return badLibraryBody(c)
		}
		snippet.ID = assetID
		for i := range campaign.TextSnippets {
			if campaign.TextSnippets[i].ID == assetID {
				campaign.TextSnippets[i] = snippet
				touched = true
				break
			}
		}
	case libraryButtons:
		var button models.ButtonAsset
		if err := c.BodyParser(&button); err != nil {
			return badLibraryBody(c)
		}
		button.ID = assetID
		for i := range campaign.Buttons {
			if campaign.Buttons[i].ID == assetID {
				campaign.Buttons[i] = button
				touched = true
				break
			}
		}
	default:
		return unknownLibrary(c)
	}

	if touched {
		campaign.LastModified = time.Now()
	}
	return cc.saveDocument(c, campaign)
}

// DeleteLibraryAsset filters an entry out of its library. Content items and
// step backgrounds that still reference the id are deliberately left alone;
// they render as empty.
func (cc *CampaignController) DeleteLibraryAsset(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	assetID := c.Params("assetID")

	switch c.Params("library") {
	case libraryImages:
		kept := campaign.Images[:0:0]
		for _, asset := range campaign.Images {
			if asset.ID != assetID {
				kept = append(kept, asset)
			}
		}
		campaign.Images = kept
	case libraryQuestions:
		kept := campaign.Questions[:0:0]
		for _, question := range campaign.Questions {
			if question.ID != assetID {
				kept = append(kept, question)
			}
		}
		campaign.Questions = kept
	case libraryTextSnippets:
		kept := campaign.TextSnippets[:0:0]
		for _, snippet := range campaign.TextSnippets {
			if snippet.ID != assetID {
				kept = append(kept, snippet)
			}
		}
		campaign.TextSnippets = kept
	case libraryButtons:
		kept := campaign.Buttons[:0:0]
		for _, button := range campaign.Buttons {
			if button.ID != assetID {
				kept = append(kept, button)
			}
		}
		campaign.Buttons = kept
	default:
		return unknownLibrary(c)
	}

	campaign.LastModified = time.Now()
	return cc.saveDocument(c, campaign)
}

func badLibraryBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request body",
	})
}

func unknownLibrary(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Unknown asset library",
	})
}
