package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomadmin/models"
)

func TestCampaignPDFFilename(t *testing.T) {
	cases := []struct {
		name     string
		campaign string
		want     string
	}{
		{"spaces become underscores", "My Campaign", "my_campaign_campaign.pdf"},
		{"uppercase is lowered", "SUMMER", "summer_campaign.pdf"},
		{"punctuation becomes underscores", "Q4: Sale!", "q4__sale__campaign.pdf"},
		{"digits survive", "promo 2026", "promo_2026_campaign.pdf"},
		{"empty name", "", "_campaign.pdf"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CampaignPDFFilename(tc.campaign))
		})
	}
}

func TestCampaignPDFAddsOnePagePerStep(t *testing.T) {
	campaign := &models.Campaign{
		Name: "Onboarding",
		Steps: []models.Step{
			{ID: "s1", Name: "Welcome Screen", Style: models.StepStyle{BackgroundColor: "#ffffff"}},
			{ID: "s2", Name: "Details", Style: models.StepStyle{BackgroundColor: "#ffffff"}},
		},
	}

	builder := NewCampaignPDF()
	for i, step := range campaign.Steps {
		frame, err := RenderStep(campaign, step)
		require.NoError(t, err)
		require.NoError(t, builder.AddStepPage(i+1, step.Name, frame))
	}

	assert.Equal(t, 2, builder.Pages())

	pdf, err := builder.Bytes()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output must be a PDF document")
}

func TestCampaignPDFStartsEmpty(t *testing.T) {
	builder := NewCampaignPDF()
	assert.Equal(t, 0, builder.Pages())
}
