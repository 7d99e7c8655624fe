package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign lifecycle statuses
const (
	CampaignStatusActive   = "active"
	CampaignStatusInactive = "inactive"
)

// Content item kinds placed inside a step
const (
	ContentTypeQuestion    = "QUESTION"
	ContentTypeTextSnippet = "TEXT_SNIPPET"
	ContentTypeButton      = "BUTTON"
)

// Question input kinds
const (
	QuestionTypeText     = "TEXT"
	QuestionTypeDropdown = "DROPDOWN"
	QuestionTypeDate     = "DATE"
	QuestionTypeSign     = "SIGN"
)

// Campaign is the root editable document: an ordered funnel of steps plus the
// four asset libraries its content items reference.
type Campaign struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"user_id"`

	Name         string    `gorm:"not null" json:"name"`
	Status       string    `gorm:"default:'inactive'" json:"status"` // active, inactive
	LastModified time.Time `json:"last_modified"`

	// Document structure stored as JSON
	Steps []Step `json:"steps" gorm:"type:jsonb;serializer:json"`

	// Asset libraries scoped to this campaign. Content items reference these
	// by id; deleting an asset does not cascade into the steps that point at
	// it (dangling references render as empty).
	Images       []ImageAsset  `json:"images" gorm:"type:jsonb;serializer:json"`
	Questions    []Question    `json:"questions" gorm:"type:jsonb;serializer:json"`
	TextSnippets []TextSnippet `json:"text_snippets" gorm:"type:jsonb;serializer:json"`
	Buttons      []ButtonAsset `json:"buttons" gorm:"type:jsonb;serializer:json"`
}

// Step is one screen within a campaign
type Step struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	BackgroundAssetID *string       `json:"backgroundAssetId,omitempty"`
	Style             StepStyle     `json:"style"`
	Content           []ContentItem `json:"content"`
	Logic             []StepLogic   `json:"logic"`
}

// StepStyle is the container style of a step's mobile frame
type StepStyle struct {
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	BorderWidth     int    `json:"borderWidth"`
	TextColor       string `json:"textColor"`
}

// ContentItem is a placed reference to a library asset. It does not own the
// asset; the same asset may be referenced any number of times across steps.
// Width/Height are nil for auto-sized items.
type ContentItem struct {
	Type    string `json:"type"` // QUESTION, TEXT_SNIPPET, BUTTON
	AssetID string `json:"assetId"`
	Width   *int   `json:"width,omitempty"`
	Height  *int   `json:"height,omitempty"`
}

// StepLogic is an authored branching rule associating a dropdown answer with
// a target step. It is never evaluated by this service.
type StepLogic struct {
	QuestionID  string `json:"questionId"`
	OptionValue string `json:"optionValue"`
	NextStepID  string `json:"nextStepId"`
}

// ImageAsset is an entry in a campaign's image library
type ImageAsset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Question is an entry in a campaign's question library. Type decides which
/// optional fields apply: Placeholder for TEXT/DATE/SIGN, Options for DROPDOWN.
type Question struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Type        string   `json:"type"` // TEXT, DROPDOWN, DATE, SIGN
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// TextSnippet is an entry in a campaign's text library
type TextSnippet struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ButtonAsset is an entry in a campaign's button library
type ButtonAsset struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// FindStep returns the step with the given id, or nil
func (c *Campaign) FindStep(stepID string) *Step {
	for i := range c.Steps {
		if c.Steps[i].ID == stepID {
			return &c.Steps[i]
		}
	}
	return nil
}

// FindQuestion resolves a question id against the campaign's library, or nil
func (c *Campaign) FindQuestion(id string) *Question {
	for i := range c.Questions {
		if c.Questions[i].ID == id {
			return &c.Questions[i]
		}
	}
	return nil
}

// FindTextSnippet resolves a snippet id against the campaign's library, or nil
func (c *Campaign) FindTextSnippet(id string) *TextSnippet {
	for i := range c.TextSnippets {
		if c.TextSnippets[i].ID == id {
			return &c.TextSnippets[i]
		}
	}
	return nil
}

// FindButton resolves a button id against the campaign's library, or nil
func (c *Campaign) FindButton(id string) *ButtonAsset {
	for i := range c.Buttons {
		if c.Buttons[i].ID == id {
			return &c.Buttons[i]
		}
	}
	return nil
}

// FindImage resolves an image id against the campaign's library, or nil
func (c *Campaign) FindImage(id string) *ImageAsset {
	for i := range c.Images {
		if c.Images[i].ID == id {
			return &c.Images[i]
		}
	}
	return nil
}
