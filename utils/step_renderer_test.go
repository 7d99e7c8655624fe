package utils

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomadmin/models"
)

func renderTestCampaign() *models.Campaign {
	return &models.Campaign{
		Name: "Render Test",
		Questions: []models.Question{
			{ID: "q1", Text: "What is your goal?", Type: models.QuestionTypeDropdown, Options: []string{"Bulk", "Cut"}},
		},
		TextSnippets: []models.TextSnippet{
			{ID: "t1", Text: "Free shipping on orders over $50."},
		},
		Buttons: []models.ButtonAsset{
			{ID: "b1", Label: "Continue", Color: "#2563eb"},
		},
	}
}

func TestRenderStepProducesPNG(t *testing.T) {
	campaign := renderTestCampaign()
	step := models.Step{
		ID:   "s1",
		Name: "Welcome Screen",
		Style: models.StepStyle{
			BackgroundColor: "rgba(255,255,255,0.8)",
			BorderColor:     "#000000",
			BorderWidth:     1,
			TextColor:       "#000000",
		},
		Content: []models.ContentItem{
			{Type: models.ContentTypeQuestion, AssetID: "q1"},
			{Type: models.ContentTypeTextSnippet, AssetID: "t1"},
			{Type: models.ContentTypeButton, AssetID: "b1"},
		},
	}

	frame, err := RenderStep(campaign, step)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(frame))
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, 320, bounds.Dx())
	assert.Equal(t, 568, bounds.Dy())
}

func TestRenderStepSkipsDanglingAssets(t *testing.T) {
	campaign := renderTestCampaign()
	step := models.Step{
		ID:    "s1",
		Name:  "Broken",
		Style: models.StepStyle{BackgroundColor: "#ffffff"},
		Content: []models.ContentItem{
			{Type: models.ContentTypeQuestion, AssetID: "deleted"},
			{Type: models.ContentTypeButton, AssetID: "b1"},
		},
	}

	frame, err := RenderStep(campaign, step)
	require.NoError(t, err, "dangling references render as empty, never as errors")
	assert.NotEmpty(t, frame)
}

func TestRenderStepEmptyContent(t *testing.T) {
	campaign := renderTestCampaign()
	step := models.Step{ID: "s1", Name: "Blank", Style: models.StepStyle{}}

	frame, err := RenderStep(campaign, step)
	require.NoError(t, err)
	assert.NotEmpty(t, frame)
}

func TestParseCSSColor(t *testing.T) {
	fallback := color.RGBA{1, 2, 3, 255}

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, ParseCSSColor("#ff0000", fallback))
	assert.Equal(t, color.RGBA{255, 255, 255, 204}, ParseCSSColor("rgba(255,255,255,0.8)", fallback))
	assert.Equal(t, color.RGBA{16, 185, 129, 255}, ParseCSSColor("rgba(16, 185, 129, 1)", fallback))
	assert.Equal(t, fallback, ParseCSSColor("hotpink", fallback))
	assert.Equal(t, fallback, ParseCSSColor("", fallback))
	assert.Equal(t, fallback, ParseCSSColor("#zzz", fallback))
}
