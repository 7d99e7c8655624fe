package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ecomadmin/models"
	"ecomadmin/utils"
)

// Export job statuses
const (
	ExportStatusQueued    = "queued"
	ExportStatusRunning   = "running"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// how long finished jobs (and their PDF bytes) stay downloadable
const exportJobRetention = 1 * time.Hour

// ExportJob tracks one PDF export through the queue
type ExportJob struct {
	ID         string    `json:"id"`
	CampaignID uint      `json:"campaign_id"`
	UserID     uint      `json:"user_id"`
	Status     string    `json:"status"`
	StepsDone  int       `json:"steps_done"`
	StepsTotal int       `json:"steps_total"`
	Filename   string    `json:"filename,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`

	pdf []byte
}

// ExportProgress is the event streamed to WebSocket subscribers
type ExportProgress struct {
	JobID      string `json:"job_id"`
	CampaignID uint   `json:"campaign_id"`
	Message    string `json:"message"`
	Percent    int    `json:"percent"`
	Status     string `json:"status"`
}

// ExportWorker generates campaign PDFs off the request path. Steps are
// rendered strictly one at a time; a step that fails to render is skipped
// and the page is simply absent from the output.
type ExportWorker struct {
	DB     *gorm.DB
	Logger *logrus.Logger

	queue chan string
	mu    sync.RWMutex
	jobs  map[string]*ExportJob
	hub   *ProgressHub
}

func NewExportWorker(db *gorm.DB, logger *logrus.Logger) *ExportWorker {
	return &ExportWorker{
		DB:     db,
		Logger: logger,
		queue:  make(chan string, 16),
		jobs:   make(map[string]*ExportJob),
		hub:    NewProgressHub(),
	}
}

// Hub exposes the progress hub for the WebSocket route
func (ew *ExportWorker) Hub() *ProgressHub {
	return ew.hub
}

// Enqueue registers a new export job. Returns an error when the queue is
// saturated; the caller surfaces that as a retryable condition.
func (ew *ExportWorker) Enqueue(campaignID, userID uint) (*ExportJob, error) {
	job := &ExportJob{
		ID:         uuid.NewString(),
		CampaignID: campaignID,
		UserID:     userID,
		Status:     ExportStatusQueued,
		CreatedAt:  time.Now(),
	}

	ew.mu.Lock()
	ew.jobs[job.ID] = job
	ew.mu.Unlock()

	select {
	case ew.queue <- job.ID:
		snapshot := *job
		return &snapshot, nil
	default:
		ew.mu.Lock()
		delete(ew.jobs, job.ID)
		ew.mu.Unlock()
		return nil, fmt.Errorf("export queue is full")
	}
}

// Job returns a snapshot of the job, or nil when unknown
func (ew *ExportWorker) Job(id string) *ExportJob {
	ew.mu.RLock()
	defer ew.mu.RUnlock()
	job, ok := ew.jobs[id]
	if !ok {
		return nil
	}
	snapshot := *job
	snapshot.pdf = nil
	return &snapshot
}

// PDF returns the finished artifact and its filename
func (ew *ExportWorker) PDF(id string) ([]byte, string, bool) {
	ew.mu.RLock()
	defer ew.mu.RUnlock()
	job, ok := ew.jobs[id]
	if !ok || job.Status != ExportStatusCompleted {
		return nil, "", false
	}
	return job.pdf, job.Filename, true
}

func (ew *ExportWorker) Start(ctx context.Context) {
	ew.Logger.Info("Export worker started")

	cleanup := time.NewTicker(10 * time.Minute)
	defer cleanup.Stop()

	for {
		select {
		case <-ctx.Done():
			ew.Logger.Info("Export worker shutting down...")
			return
		case id := <-ew.queue:
			ew.process(id)
		case <-cleanup.C:
			ew.dropExpiredJobs()
		}
	}
}

func (ew *ExportWorker) process(jobID string) {
	ew.mu.Lock()
	job, ok := ew.jobs[jobID]
	if !ok {
		ew.mu.Unlock()
		return
	}
	job.Status = ExportStatusRunning
	campaignID, userID := job.CampaignID, job.UserID
	ew.mu.Unlock()

	var campaign models.Campaign
	if err := ew.DB.Where("id = ? AND user_id = ?", campaignID, userID).First(&campaign).Error; err != nil {
		ew.fail(jobID, fmt.Sprintf("campaign %d not found", campaignID))
		return
	}

	ew.mu.Lock()
	job.StepsTotal = len(campaign.Steps)
	ew.mu.Unlock()

	builder := utils.NewCampaignPDF()
	for i, step := range campaign.Steps {
		framePNG, err := utils.RenderStep(&campaign, step)
		if err != nil {
			// Skipped pages are a diagnostic, not a user-facing failure
			ew.Logger.WithFields(logrus.Fields{
				"campaign_id": campaign.ID,
				"step_id":     step.ID,
			}).Warnf("Skipping unrenderable step: %v", err)
			sentry.CaptureException(err)
			continue
		}
		if err := builder.AddStepPage(i+1, step.Name, framePNG); err != nil {
			ew.Logger.WithField("step_id", step.ID).Warnf("Skipping step page: %v", err)
			continue
		}

		ew.mu.Lock()
		job.StepsDone = i + 1
		ew.mu.Unlock()

		ew.hub.Broadcast(ExportProgress{
			JobID:      jobID,
			CampaignID: campaign.ID,
			Message:    fmt.Sprintf("Rendering step %d of %d...", i+1, len(campaign.Steps)),
			Percent:    (i + 1) * 100 / len(campaign.Steps),
			Status:     ExportStatusRunning,
		})
	}

	if builder.Pages() == 0 {
		ew.fail(jobID, "campaign has no renderable steps")
		return
	}

	pdf, err := builder.Bytes()
	if err != nil {
		ew.Logger.WithField("campaign_id", campaign.ID).Errorf("Export failed: %v", err)
		sentry.CaptureException(err)
		ew.fail(jobID, "failed to assemble PDF")
		return
	}

	ew.mu.Lock()
	job.Status = ExportStatusCompleted
	job.Filename = utils.CampaignPDFFilename(campaign.Name)
	job.pdf = pdf
	job.FinishedAt = time.Now()
	ew.mu.Unlock()

	ew.hub.Broadcast(ExportProgress{
		JobID:      jobID,
		CampaignID: campaign.ID,
		Message:    "Export completed",
		Percent:    100,
		Status:     ExportStatusCompleted,
	})
	ew.Logger.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"pages":       builder.Pages(),
	}).Info("Campaign export completed")
}

func (ew *ExportWorker) fail(jobID, reason string) {
	ew.mu.Lock()
	job, ok := ew.jobs[jobID]
	var campaignID uint
	if ok {
		job.Status = ExportStatusFailed
		job.Error = reason
		job.FinishedAt = time.Now()
		campaignID = job.CampaignID
	}
	ew.mu.Unlock()
	if !ok {
		return
	}

	ew.hub.Broadcast(ExportProgress{
		JobID:      jobID,
		CampaignID: campaignID,
		Message:    reason,
		Status:     ExportStatusFailed,
	})
}

func (ew *ExportWorker) dropExpiredJobs() {
	cutoff := time.Now().Add(-exportJobRetention)
	ew.mu.Lock()
	defer ew.mu.Unlock()
	for id, job := range ew.jobs {
		if job.Status == ExportStatusCompleted || job.Status == ExportStatusFailed {
			if job.FinishedAt.Before(cutoff) {
				delete(ew.jobs, id)
			}
		}
	}
}
