package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// CampaignPDF assembles the export artifact: one A4 page per step, each with
// a bold title line followed by the step's rasterized mobile frame.
type CampaignPDF struct {
	pdf   *gofpdf.Fpdf
	pages int
}

func NewCampaignPDF() *CampaignPDF {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	return &CampaignPDF{pdf: pdf}
}

// AddStepPage appends one page titled "Step N: <name>" with the rendered
// frame image centered beneath it.
func (p *CampaignPDF) AddStepPage(number int, name string, framePNG []byte) error {
	p.pdf.AddPage()
	p.pdf.SetFont("Helvetica", "B", 16)
	p.pdf.CellFormat(0, 12, fmt.Sprintf("Step %d: %s", number, name), "", 1, "L", false, 0, "")

	imageName := fmt.Sprintf("step-%d", number)
	options := gofpdf.ImageOptions{ImageType: "PNG"}
	p.pdf.RegisterImageOptionsReader(imageName, options, bytes.NewReader(framePNG))
	if p.pdf.Err() {
		return fmt.Errorf("failed to embed step image: %s", p.pdf.Error())
	}

	// A4 is 210mm wide; the frame keeps its 320x568 aspect at 90mm
	const imageWidth = 90.0
	p.pdf.ImageOptions(imageName, (210-imageWidth)/2, 30, imageWidth, 0, false, options, 0, "")

	p.pages++
	return p.pdf.Error()
}

// Pages returns how many step pages were added
func (p *CampaignPDF) Pages() int {
	return p.pages
}

// Bytes finalizes the document
func (p *CampaignPDF) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// CampaignPDFFilename derives the download name from the campaign name:
// lowercased, every non-alphanumeric character replaced by an underscore, suffixed
// "_campaign.pdf".
func CampaignPDFFilename(campaignName string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, strings.ToLower(campaignName))
	return slug + "_campaign.pdf"
}
