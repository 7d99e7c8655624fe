package editor

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ecomadmin/models"
)

// Estimated rendered heights (px) for auto-sized content, used by the
// capacity check and by the export renderer.
const (
	HeightQuestion    = 80
	HeightTextSnippet = 60
	HeightButton      = 50
	HeightDefault     = 40

	// StepCapacity models the visible screen space of the mobile frame. A
	// content addition that would push the step's estimated total height past
	// this budget is rejected.
	StepCapacity = 500
)

// ErrNotEnoughSpace is returned by AddContent when the step's estimated
// content height would exceed StepCapacity. It is the only editing error
// surfaced to the user; every failed lookup is a silent no-op instead.
var ErrNotEnoughSpace = errors.New("not enough space on this step")

// Store is the sole mutation surface over an in-memory campaign document.
// Every mutation replaces the held document wholesale (copy-on-write of the
// touched step, structural sharing of the rest), so callers must re-read
// Current after each call rather than hold references into the old document.
// All operations are safe no-ops when no document is loaded.
type Store struct {
	current *models.Campaign
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// NewStoreFor returns a store already editing doc
func NewStoreFor(doc *models.Campaign) *Store {
	s := NewStore()
	s.SetCurrentCampaign(doc)
	return s
}

// Current returns the working document, or nil
func (s *Store) Current() *models.Campaign {
	return s.current
}

// SetCurrentCampaign replaces the entire working document. No validation.
func (s *Store) SetCurrentCampaign(doc *models.Campaign) {
	s.current = doc
}

// ResetCurrentCampaign clears the working document
func (s *Store) ResetCurrentCampaign() {
	s.current = nil
}

// DefaultStepStyle is the container style applied to newly created steps
func DefaultStepStyle() models.StepStyle {
	return models.StepStyle{
		BackgroundColor: "rgba(255,255,255,0.8)",
		BorderColor:     "#000000",
		BorderWidth:     1,
		TextColor:       "#000000",
	}
}

// NewCampaignDocument builds a fresh default document with a single
// "Welcome Screen" step and empty asset libraries.
func NewCampaignDocument(userID uint, name string) *models.Campaign {
	return &models.Campaign{
		UserID:       userID,
		Name:         name,
		Status:       models.CampaignStatusInactive,
		LastModified: time.Now(),
		Steps: []models.Step{{
			ID:      uuid.NewString(),
			Name:    "Welcome Screen",
			Style:   DefaultStepStyle(),
			Content: []models.ContentItem{},
			Logic:   []models.StepLogic{},
		}},
		Images:       []models.ImageAsset{},
		Questions:    []models.Question{},
		TextSnippets: []models.TextSnippet{},
		Buttons:      []models.ButtonAsset{},
	}
}

// AddStep appends a new empty step with a default name and style. Returns
// the created step, or nil when no document is loaded.
func (s *Store) AddStep() *models.Step {
	if s.current == nil {
		return nil
	}
	next := *s.current
	next.Steps = make([]models.Step, len(s.current.Steps), len(s.current.Steps)+1)
	copy(next.Steps, s.current.Steps)
	next.Steps = append(next.Steps, models.Step{
		ID:      uuid.NewString(),
		Name:    fmt.Sprintf("New Step %d", len(next.Steps)+1),
		Style:   DefaultStepStyle(),
		Content: []models.ContentItem{},
		Logic:   []models.StepLogic{},
	})
	next.LastModified = s.now()
	s.current = &next
	return &next.Steps[len(next.Steps)-1]
}

// DeleteStep removes the step with the given id. Unknown ids are ignored and
// the step list is allowed to become empty.
func (s *Store) DeleteStep(stepID string) {
	if s.current == nil || s.stepIndex(stepID) < 0 {
		return
	}
	idx := s.stepIndex(stepID)
	next := *s.current
	next.Steps = make([]models.Step, 0, len(s.current.Steps)-1)
	next.Steps = append(next.Steps, s.current.Steps[:idx]...)
	next.Steps = append(next.Steps, s.current.Steps[idx+1:]...)
	next.LastModified = s.now()
	s.current = &next
}

// UpdateStepName renames a step in place. Callers are expected to trim the
// name; the store stores it as given.
func (s *Store) UpdateStepName(stepID, name string) {
	s.mutateStep(stepID, func(step *models.Step) {
		step.Name = name
	})
}

// StylePatch carries a partial style update; nil fields are left untouched
type StylePatch struct {
	BackgroundColor *string `json:"backgroundColor"`
	BorderColor     *string `json:"borderColor"`
	BorderWidth     *int    `json:"borderWidth"`
	TextColor       *string `json:"textColor"`
}

// UpdateStyle shallow-merges the patch into the step's container style
func (s *Store) UpdateStyle(stepID string, patch StylePatch) {
	s.mutateStep(stepID, func(step *models.Step) {
		if patch.BackgroundColor != nil {
			step.Style.BackgroundColor = *patch.BackgroundColor
		}
		if patch.BorderColor != nil {
			step.Style.BorderColor = *patch.BorderColor
		}
		if patch.BorderWidth != nil {
			step.Style.BorderWidth = *patch.BorderWidth
		}
		if patch.TextColor != nil {
			step.Style.TextColor = *patch.TextColor
		}
	})
}

// SetBackground sets the step's background image reference; nil clears it.
// The id is not validated against the image library.
func (s *Store) SetBackground(stepID string, assetID *string) {
	s.mutateStep(stepID, func(step *models.Step) {
		step.BackgroundAssetID = assetID
	})
}

// EstimateHeight returns the item's explicit height when set, otherwise a
// type-based estimate.
func EstimateHeight(item models.ContentItem) int {
	if item.Height != nil {
		return *item.Height
	}
	return estimateForType(item.Type)
}

func estimateForType(contentType string) int {
	switch contentType {
	case models.ContentTypeQuestion:
		return HeightQuestion
	case models.ContentTypeTextSnippet:
		return HeightTextSnippet
	case models.ContentTypeButton:
		return HeightButton
	default:
		return HeightDefault
	}
}

// AddContent appends a content item to the step, auto-sized. The addition is
// rejected with ErrNotEnoughSpace when the step's estimated total height plus
// the new item's estimate would exceed StepCapacity; the document is left
// untouched in that case. Items are not deduplicated: the same asset may be
// placed any number of times.
func (s *Store) AddContent(stepID string, item models.ContentItem) error {
	if s.current == nil {
		return nil
	}
	idx := s.stepIndex(stepID)
	if idx < 0 {
		return nil
	}
	total := 0
	for _, existing := range s.current.Steps[idx].Content {
		total += EstimateHeight(existing)
	}
	if total+estimateForType(item.Type) > StepCapacity {
		return ErrNotEnoughSpace
	}
	// Explicit size is never carried over from the request; placed items
	// start auto-sized.
	item.Width = nil
	item.Height = nil
	s.mutateStep(stepID, func(step *models.Step) {
		content := make([]models.ContentItem, len(step.Content), len(step.Content)+1)
		copy(content, step.Content)
		step.Content = append(content, item)
	})
	return nil
}

// RemoveContent removes the content item at the given position within the
// step. Out-of-range indexes are a silent no-op.
func (s *Store) RemoveContent(stepID string, index int) {
	if s.current == nil {
		return
	}
	idx := s.stepIndex(stepID)
	if idx < 0 || index < 0 || index >= len(s.current.Steps[idx].Content) {
		return
	}
	s.mutateStep(stepID, func(step *models.Step) {
		content := make([]models.ContentItem, 0, len(step.Content)-1)
		content = append(content, step.Content[:index]...)
		content = append(content, step.Content[index+1:]...)
		step.Content = content
	})
}

// ReorderContent moves the item at dragIndex to hoverIndex within the step's
// content list. This is a single-element move, not a swap: the items between
// the two positions shift by one.
func (s *Store) ReorderContent(stepID string, dragIndex, hoverIndex int) {
	if s.current == nil {
		return
	}
	idx := s.stepIndex(stepID)
	if idx < 0 {
		return
	}
	length := len(s.current.Steps[idx].Content)
	if dragIndex < 0 || dragIndex >= length {
		return
	}
	if hoverIndex < 0 {
		hoverIndex = 0
	}
	if hoverIndex >= length {
		hoverIndex = length - 1
	}
	s.mutateStep(stepID, func(step *models.Step) {
		content := make([]models.ContentItem, 0, len(step.Content))
		content = append(content, step.Content[:dragIndex]...)
		content = append(content, step.Content[dragIndex+1:]...)
		moved := step.Content[dragIndex]
		content = append(content[:hoverIndex], append([]models.ContentItem{moved}, content[hoverIndex:]...)...)
		step.Content = content
	})
}

// ResizeContent overwrites the explicit width/height of the content item at
// the given position. Out-of-range indexes are a silent no-op.
func (s *Store) ResizeContent(stepID string, index, width, height int) {
	if s.current == nil {
		return
	}
	idx := s.stepIndex(stepID)
	if idx < 0 || index < 0 || index >= len(s.current.Steps[idx].Content) {
		return
	}
	s.mutateStep(stepID, func(step *models.Step) {
		content := make([]models.ContentItem, len(step.Content))
		copy(content, step.Content)
		content[index].Width = &width
		content[index].Height = &height
		step.Content = content
	})
}

// UpdateLogic replaces the branching rule for (questionID, optionValue) on
// the step. A nil nextStepID removes the rule; otherwise the new target is
// appended, keeping at most one rule per pair.
func (s *Store) UpdateLogic(stepID, questionID, optionValue string, nextStepID *string) {
	s.mutateStep(stepID, func(step *models.Step) {
		logic := make([]models.StepLogic, 0, len(step.Logic)+1)
		for _, rule := range step.Logic {
			if rule.QuestionID == questionID && rule.OptionValue == optionValue {
				continue
			}
			logic = append(logic, rule)
		}
		if nextStepID != nil {
			logic = append(logic, models.StepLogic{
				QuestionID:  questionID,
				OptionValue: optionValue,
				NextStepID:  *nextStepID,
			})
		}
		step.Logic = logic
	})
}

func (s *Store) stepIndex(stepID string) int {
	for i := range s.current.Steps {
		if s.current.Steps[i].ID == stepID {
			return i
		}
	}
	return -1
}

// mutateStep clones the document, applies fn to a copy of the matching step
// and stamps LastModified. Nothing happens without a current document or a
// matching step, so failed lookups leave the document untouched.
func (s *Store) mutateStep(stepID string, fn func(step *models.Step)) {
	if s.current == nil {
		return
	}
	idx := s.stepIndex(stepID)
	if idx < 0 {
		return
	}
	next := *s.current
	next.Steps = make([]models.Step, len(s.current.Steps))
	copy(next.Steps, s.current.Steps)
	step := next.Steps[idx]
	fn(&step)
	next.Steps[idx] = step
	next.LastModified = s.now()
	s.current = &next
}
