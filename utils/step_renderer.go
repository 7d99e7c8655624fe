package utils

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strconv"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"ecomadmin/editor"
	"ecomadmin/models"
)

// Mobile frame dimensions the campaign builder previews against. The frame
// height matches the editing store's capacity budget plus chrome padding.
const (
	frameWidth   = 320
	frameHeight  = 568
	framePadding = 12
	contentGap   = 8
)

var (
	fontOnce  sync.Once
	bodyFace  font.Face
	smallFace font.Face
	fontErr   error
)

func loadFaces() {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		fontErr = fmt.Errorf("failed to parse font: %w", err)
		return
	}
	bodyFace = truetype.NewFace(f, &truetype.Options{Size: 13})
	smallFace = truetype.NewFace(f, &truetype.Options{Size: 11})
}

// RenderStep rasterizes one step's mobile frame to a PNG: the step's
// container style as background and border, then its content items stacked
// top to bottom at their explicit or estimated heights. Content pointing at
// assets that no longer exist in the campaign's libraries is skipped.
func RenderStep(campaign *models.Campaign, step models.Step) ([]byte, error) {
	fontOnce.Do(loadFaces)
	if fontErr != nil {
		return nil, fontErr
	}

	dc := gg.NewContext(frameWidth, frameHeight)

	// Container background and border
	dc.SetColor(ParseCSSColor(step.Style.BackgroundColor, color.RGBA{255, 255, 255, 255}))
	dc.Clear()
	if step.Style.BorderWidth > 0 {
		dc.SetColor(ParseCSSColor(step.Style.BorderColor, color.RGBA{0, 0, 0, 255}))
		dc.SetLineWidth(float64(step.Style.BorderWidth))
		inset := float64(step.Style.BorderWidth) / 2
		dc.DrawRectangle(inset, inset, frameWidth-2*inset, frameHeight-2*inset)
		dc.Stroke()
	}

	textColor := ParseCSSColor(step.Style.TextColor, color.RGBA{0, 0, 0, 255})

	y := float64(framePadding)
	for _, item := range step.Content {
		blockWidth := float64(frameWidth - 2*framePadding)
		if item.Width != nil && *item.Width > 0 && *item.Width < frameWidth-2*framePadding {
			blockWidth = float64(*item.Width)
		}
		blockHeight := float64(editor.EstimateHeight(item))

		switch item.Type {
		case models.ContentTypeQuestion:
			q := campaign.FindQuestion(item.AssetID)
			if q == nil {
				continue
			}
			drawQuestion(dc, q, framePadding, y, blockWidth, blockHeight, textColor)
		case models.ContentTypeTextSnippet:
			s := campaign.FindTextSnippet(item.AssetID)
			if s == nil {
				continue
			}
			dc.SetFontFace(bodyFace)
			dc.SetColor(textColor)
			dc.DrawStringWrapped(s.Text, framePadding, y, 0, 0, blockWidth, 1.4, gg.AlignLeft)
		case models.ContentTypeButton:
			b := campaign.FindButton(item.AssetID)
			if b == nil {
				continue
			}
			drawButton(dc, b, framePadding, y, blockWidth, blockHeight)
		default:
			continue
		}

		y += blockHeight + contentGap
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("failed to encode step image: %w", err)
	}
	return buf.Bytes(), nil
}

func drawQuestion(dc *gg.Context, q *models.Question, x, y, w, h float64, textColor color.Color) {
	dc.SetFontFace(bodyFace)
	dc.SetColor(textColor)
	dc.DrawStringWrapped(q.Text, x, y, 0, 0, w, 1.3, gg.AlignLeft)

	fieldY := y + h*0.45
	fieldH := h * 0.4

	switch q.Type {
	case models.QuestionTypeDropdown:
		// Field box plus the first options as a hint of the dropdown
		drawFieldBox(dc, x, fieldY, w, fieldH)
		dc.SetFontFace(smallFace)
		dc.SetColor(color.RGBA{120, 120, 120, 255})
		label := strings.Join(q.Options, " / ")
		dc.DrawStringWrapped(label, x+6, fieldY+4, 0, 0, w-12, 1.2, gg.AlignLeft)
	case models.QuestionTypeText, models.QuestionTypeDate, models.QuestionTypeSign:
		drawFieldBox(dc, x, fieldY, w, fieldH)
		if q.Placeholder != "" {
			dc.SetFontFace(smallFace)
			dc.SetColor(color.RGBA{150, 150, 150, 255})
			dc.DrawStringWrapped(q.Placeholder, x+6, fieldY+4, 0, 0, w-12, 1.2, gg.AlignLeft)
		}
	}
}

func drawFieldBox(dc *gg.Context, x, y, w, h float64) {
	dc.SetColor(color.RGBA{245, 245, 245, 255})
	dc.DrawRoundedRectangle(x, y, w, h, 4)
	dc.Fill()
	dc.SetColor(color.RGBA{200, 200, 200, 255})
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x, y, w, h, 4)
	dc.Stroke()
}

func drawButton(dc *gg.Context, b *models.ButtonAsset, x, y, w, h float64) {
	fill := ParseCSSColor(b.Color, color.RGBA{37, 99, 235, 255})
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, w, h, 6)
	dc.Fill()
	dc.SetFontFace(bodyFace)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(b.Label, x+w/2, y+h/2, 0.5, 0.5)
}

// ParseCSSColor understands the two color notations the builder emits:
// "#rrggbb" and "rgba(r,g,b,a)". Anything else falls back to the given
// default.
func ParseCSSColor(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		r, err1 := strconv.ParseUint(s[1:3], 16, 8)
		g, err2 := strconv.ParseUint(s[3:5], 16, 8)
		b, err3 := strconv.ParseUint(s[5:7], 16, 8)
		if err1 == nil && err2 == nil && err3 == nil {
			return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
		}
		return fallback
	}
	if strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "rgba("), ")"), ",")
		if len(parts) != 4 {
			return fallback
		}
		r, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		g, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		b, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		a, err4 := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return fallback
		}
		if a < 0 {
			a = 0
		}
		if a > 1 {
			a = 1
		}
		return color.RGBA{uint8(r), uint8(g), uint8(b), uint8(a * 255)}
	}
	return fallback
}
