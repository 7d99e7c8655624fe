package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomadmin/models"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	store := NewStoreFor(NewCampaignDocument(1, "Test Campaign"))
	require.Len(t, store.Current().Steps, 1)
	return store, store.Current().Steps[0].ID
}

func item(contentType string) models.ContentItem {
	return models.ContentItem{Type: contentType, AssetID: "asset-" + contentType}
}

func TestNewCampaignDocumentDefaults(t *testing.T) {
	doc := NewCampaignDocument(7, "Spring Sale")

	assert.Equal(t, uint(7), doc.UserID)
	assert.Equal(t, "Spring Sale", doc.Name)
	assert.Equal(t, models.CampaignStatusInactive, doc.Status)
	require.Len(t, doc.Steps, 1)
	assert.Equal(t, "Welcome Screen", doc.Steps[0].Name)
	assert.NotEmpty(t, doc.Steps[0].ID)
	assert.Equal(t, DefaultStepStyle(), doc.Steps[0].Style)
	assert.Empty(t, doc.Steps[0].Content)
	assert.Empty(t, doc.Images)
	assert.Empty(t, doc.Questions)
	assert.Empty(t, doc.TextSnippets)
	assert.Empty(t, doc.Buttons)
}

func TestAddStepAssignsDefaults(t *testing.T) {
	store, _ := newTestStore(t)

	step := store.AddStep()
	require.NotNil(t, step)

	assert.Equal(t, "New Step 2", step.Name)
	assert.NotEmpty(t, step.ID)
	assert.Equal(t, DefaultStepStyle(), step.Style)
	assert.Len(t, store.Current().Steps, 2)

	third := store.AddStep()
	assert.Equal(t, "New Step 3", third.Name)
	assert.NotEqual(t, step.ID, third.ID)
}

func TestDeleteStepAllowsEmptyCampaign(t *testing.T) {
	store, stepID := newTestStore(t)

	store.DeleteStep(stepID)
	assert.Empty(t, store.Current().Steps)

	// Deleting again is harmless
	store.DeleteStep(stepID)
	assert.Empty(t, store.Current().Steps)
}

func TestUpdateStyleMergesOnlyProvidedFields(t *testing.T) {
	store, stepID := newTestStore(t)

	red := "#ff0000"
	store.UpdateStyle(stepID, StylePatch{BackgroundColor: &red})

	style := store.Current().Steps[0].Style
	assert.Equal(t, "#ff0000", style.BackgroundColor)
	assert.Equal(t, "#000000", style.BorderColor)
	assert.Equal(t, 1, style.BorderWidth)
	assert.Equal(t, "#000000", style.TextColor)

	// Applying the same patch again changes nothing further
	before := store.Current().Steps[0].Style
	store.UpdateStyle(stepID, StylePatch{BackgroundColor: &red})
	assert.Equal(t, before, store.Current().Steps[0].Style)
}

func TestAddContentEnforcesCapacity(t *testing.T) {
	store, stepID := newTestStore(t)

	// Five questions and a button bring the estimated total to 450
	for i := 0; i < 5; i++ {
		require.NoError(t, store.AddContent(stepID, item(models.ContentTypeQuestion)))
	}
	require.NoError(t, store.AddContent(stepID, item(models.ContentTypeButton)))

	// 450 + 50 = 500 fits exactly
	require.NoError(t, store.AddContent(stepID, item(models.ContentTypeButton)))
	assert.Len(t, store.Current().Steps[0].Content, 7)

	// 500 + anything overflows
	err := store.AddContent(stepID, item(models.ContentTypeQuestion))
	assert.ErrorIs(t, err, ErrNotEnoughSpace)
	assert.Len(t, store.Current().Steps[0].Content, 7, "rejected add must leave the step untouched")
}

func TestAddContentUsesExplicitHeightsInTotal(t *testing.T) {
	store, stepID := newTestStore(t)

	require.NoError(t, store.AddContent(stepID, item(models.ContentTypeQuestion)))
	store.ResizeContent(stepID, 0, 300, 460)

	// 460 + 50 > 500
	err := store.AddContent(stepID, item(models.ContentTypeButton))
	assert.ErrorIs(t, err, ErrNotEnoughSpace)
}

func TestAddContentClearsRequestedSize(t *testing.T) {
	store, stepID := newTestStore(t)

	width, height := 200, 90
	oversized := models.ContentItem{
		Type:    models.ContentTypeButton,
		AssetID: "btn-1",
		Width:   &width,
		Height:  &height,
	}
	require.NoError(t, store.AddContent(stepID, oversized))

	placed := store.Current().Steps[0].Content[0]
	assert.Nil(t, placed.Width)
	assert.Nil(t, placed.Height)
}

func TestAddContentAllowsDuplicates(t *testing.T) {
	store, stepID := newTestStore(t)

	same := models.ContentItem{Type: models.ContentTypeButton, AssetID: "btn-1"}
	require.NoError(t, store.AddContent(stepID, same))
	require.NoError(t, store.AddContent(stepID, same))

	content := store.Current().Steps[0].Content
	require.Len(t, content, 2)
	assert.Equal(t, content[0].AssetID, content[1].AssetID)

	// Removing by index takes out exactly one occurrence
	store.RemoveContent(stepID, 0)
	assert.Len(t, store.Current().Steps[0].Content, 1)
}

func TestRemoveContentOutOfRangeIsNoOp(t *testing.T) {
	store, stepID := newTestStore(t)
	require.NoError(t, store.AddContent(stepID, item(models.ContentTypeButton)))

	before := store.Current()
	store.RemoveContent(stepID, 5)
	store.RemoveContent(stepID, -1)
	assert.Same(t, before, store.Current(), "out-of-range removes must not touch the document")
}

func TestReorderContentMovesNotSwaps(t *testing.T) {
	store, stepID := newTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.AddContent(stepID, models.ContentItem{
			Type:    models.ContentTypeButton,
			AssetID: id,
		}))
	}

	store.ReorderContent(stepID, 0, 2)
	assert.Equal(t, []string{"b", "c", "a"}, contentIDs(store))

	store.ReorderContent(stepID, 2, 0)
	assert.Equal(t, []string{"a", "b", "c"}, contentIDs(store))

	// Hover index is clamped into range
	store.ReorderContent(stepID, 0, 99)
	assert.Equal(t, []string{"b", "c", "a"}, contentIDs(store))

	// Invalid drag index is a no-op
	store.ReorderContent(stepID, 99, 0)
	assert.Equal(t, []string{"b", "c", "a"}, contentIDs(store))
}

func contentIDs(store *Store) []string {
	content := store.Current().Steps[0].Content
	ids := make([]string, len(content))
	for i, item := range content {
		ids[i] = item.AssetID
	}
	return ids
}

func TestResizeContentSetsExplicitSize(t *testing.T) {
	store, stepID := newTestStore(t)
	require.NoError(t, store.AddContent(stepID, item(models.ContentTypeQuestion)))

	store.ResizeContent(stepID, 0, 280, 120)

	placed := store.Current().Steps[0].Content[0]
	require.NotNil(t, placed.Width)
	require.NotNil(t, placed.Height)
	assert.Equal(t, 280, *placed.Width)
	assert.Equal(t, 120, *placed.Height)
	assert.Equal(t, 120, EstimateHeight(placed))
}

func TestUpdateLogicKeepsOneRulePerPair(t *testing.T) {
	store, stepID := newTestStore(t)

	next1, next2 := "step-2", "step-3"
	store.UpdateLogic(stepID, "q1", "Yes", &next1)
	store.UpdateLogic(stepID, "q1", "No", &next1)
	require.Len(t, store.Current().Steps[0].Logic, 2)

	// Overwriting the same pair replaces rather than appends
	store.UpdateLogic(stepID, "q1", "Yes", &next2)
	logic := store.Current().Steps[0].Logic
	require.Len(t, logic, 2)
	for _, rule := range logic {
		if rule.QuestionID == "q1" && rule.OptionValue == "Yes" {
			assert.Equal(t, "step-3", rule.NextStepID)
		}
	}

	// nil target removes the rule
	store.UpdateLogic(stepID, "q1", "Yes", nil)
	assert.Len(t, store.Current().Steps[0].Logic, 1)
}

func TestUnknownStepIsSilentNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	before := store.Current()

	name := "renamed"
	store.UpdateStepName("missing", name)
	store.UpdateStyle("missing", StylePatch{TextColor: &name})
	store.SetBackground("missing", &name)
	store.RemoveContent("missing", 0)
	store.ReorderContent("missing", 0, 1)
	store.ResizeContent("missing", 0, 10, 10)
	store.UpdateLogic("missing", "q1", "Yes", &name)
	store.DeleteStep("missing")
	assert.NoError(t, store.AddContent("missing", item(models.ContentTypeButton)))

	assert.Same(t, before, store.Current(), "failed lookups must not replace the document")
}

func TestMutationsStampLastModified(t *testing.T) {
	store, stepID := newTestStore(t)

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		current = current.Add(time.Minute)
		return current
	}

	store.UpdateStepName(stepID, "First")
	first := store.Current().LastModified
	store.UpdateStepName(stepID, "Second")
	second := store.Current().LastModified

	assert.True(t, second.After(first))

	// A mutation that matches nothing must not stamp
	store.UpdateStepName("missing", "Third")
	assert.Equal(t, second, store.Current().LastModified)
}

func TestOperationsWithoutDocumentAreSafe(t *testing.T) {
	store := NewStore()

	assert.Nil(t, store.AddStep())
	assert.NoError(t, store.AddContent("any", item(models.ContentTypeButton)))
	store.DeleteStep("any")
	store.RemoveContent("any", 0)
	store.ReorderContent("any", 0, 1)
	store.ResizeContent("any", 0, 1, 1)
	store.UpdateStepName("any", "name")
	assert.Nil(t, store.Current())
}

func TestSetBackgroundSetsAndClears(t *testing.T) {
	store, stepID := newTestStore(t)

	assetID := "img-1"
	store.SetBackground(stepID, &assetID)
	require.NotNil(t, store.Current().Steps[0].BackgroundAssetID)
	assert.Equal(t, "img-1", *store.Current().Steps[0].BackgroundAssetID)

	store.SetBackground(stepID, nil)
	assert.Nil(t, store.Current().Steps[0].BackgroundAssetID)
}

func TestEstimateHeightPerType(t *testing.T) {
	assert.Equal(t, HeightQuestion, EstimateHeight(item(models.ContentTypeQuestion)))
	assert.Equal(t, HeightTextSnippet, EstimateHeight(item(models.ContentTypeTextSnippet)))
	assert.Equal(t, HeightButton, EstimateHeight(item(models.ContentTypeButton)))
	assert.Equal(t, HeightDefault, EstimateHeight(models.ContentItem{Type: "IMAGE"}))
}
