package controller

import (
	"github.com/gofiber/fiber/v2"

	"ecomadmin/models"
	"ecomadmin/worker"
)

// StartExport queues a PDF export of the campaign. Progress is observable on
// the export WebSocket and through GetExportJob polling.
func (cc *CampaignController) StartExport(c *fiber.Ctx) error {
	campaign, ok := cc.loadOwnedCampaign(c)
	if !ok {
		return nil
	}

	job, err := cc.Exports.Enqueue(campaign.ID, campaign.UserID)
	if err != nil {
		cc.Logger.Printf("Failed to enqueue export for campaign %d: %v", campaign.ID, err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Export is busy. Please try again shortly.",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"job": job,
	})
}

// GetExportJob returns the state of one export job
func (cc *CampaignController) GetExportJob(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	job := cc.Exports.Job(c.Params("jobID"))
	if job == nil || job.UserID != user.ID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Export job not found",
		})
	}

	return c.JSON(fiber.Map{
		"job": job,
	})
}

// DownloadExport streams the finished PDF
func (cc *CampaignController) DownloadExport(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	job := cc.Exports.Job(c.Params("jobID"))
	if job == nil || job.UserID != user.ID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Export job not found",
		})
	}
	if job.Status != worker.ExportStatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":  "Export is not ready yet",
			"status": job.Status,
		})
	}

	pdf, filename, ok := cc.Exports.PDF(job.ID)
	if !ok {
		return c.Status(fiber.StatusGone).JSON(fiber.Map{
			"error": "Export has expired. Please export again.",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(pdf)
}
