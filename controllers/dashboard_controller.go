package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecomadmin/models"
	"ecomadmin/utils"
)

type DashboardController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewDashboardController(db *gorm.DB, logger *log.Logger) *DashboardController {
	return &DashboardController{DB: db, Logger: logger}
}

// DashboardStats are the headline numbers on the console landing page
type DashboardStats struct {
	RevenueCents   int64 `json:"revenue_cents"`
	OrderCount     int64 `json:"order_count"`
	PendingOrders  int64 `json:"pending_orders"`
	ProductCount   int64 `json:"product_count"`
	UserCount      int64 `json:"user_count"`
	ReviewCount    int64 `json:"review_count"`
	ActiveCampaign int64 `json:"active_campaigns"`
}

type TimeSeriesData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
}

// GetDashboardStats returns the headline totals. Revenue counts orders that
// reached paid or later; cancelled orders never count.
func (dc *DashboardController) GetDashboardStats(c *fiber.Ctx) error {
	var stats DashboardStats

	revenueStatuses := []string{
		models.OrderStatusPaid,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	}

	var revenue struct {
		Total int64
	}
	if err := dc.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(total_cents), 0) AS total").
		Where("status IN ?", revenueStatuses).
		Scan(&revenue).Error; err != nil {
		dc.Logger.Printf("Failed to sum revenue: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch dashboard stats",
		})
	}
	stats.RevenueCents = revenue.Total

	dc.DB.Model(&models.Order{}).Count(&stats.OrderCount)
	dc.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&stats.PendingOrders)
	dc.DB.Model(&models.Product{}).Where("is_archived = ?", false).Count(&stats.ProductCount)
	dc.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&stats.UserCount)
	dc.DB.Model(&models.Review{}).Count(&stats.ReviewCount)
	dc.DB.Model(&models.Campaign{}).Where("status = ?", models.CampaignStatusActive).Count(&stats.ActiveCampaign)

	return c.JSON(utils.SuccessResponse(stats))
}

// GetRevenueOverTime returns chart data for the revenue graph. period=week
// gives daily buckets for the last 7 days; anything else gives monthly
// buckets for the last 12 months.
func (dc *DashboardController) GetRevenueOverTime(c *fiber.Ctx) error {
	period := c.Query("period", "year")
	now := time.Now()

	var labels []string
	var starts []time.Time
	var step func(time.Time) time.Time

	if period == "week" {
		day := now.Truncate(24 * time.Hour)
		for i := 6; i >= 0; i-- {
			start := day.AddDate(0, 0, -i)
			starts = append(starts, start)
			labels = append(labels, start.Format("Mon"))
		}
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	} else {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		for i := 11; i >= 0; i-- {
			start := month.AddDate(0, -i, 0)
			starts = append(starts, start)
			labels = append(labels, start.Format("Jan"))
		}
		step = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
	}

	data := TimeSeriesData{
		Labels: labels,
		Datasets: []Dataset{
			{
				Label:           "Revenue",
				BorderColor:     "#10B981",
				BackgroundColor: "rgba(16, 185, 129, 0.1)",
			},
			{
				Label:           "Orders",
				BorderColor:     "#3B82F6",
				BackgroundColor: "rgba(59, 130, 246, 0.1)",
			},
		},
	}

	revenueStatuses := []string{
		models.OrderStatusPaid,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	}

	for _, start := range starts {
		end := step(start)

		var bucket struct {
			Total int64
			Count int64
		}
		if err := dc.DB.Model(&models.Order{}).
			Select("COALESCE(SUM(total_cents), 0) AS total, COUNT(*) AS count").
			Where("status IN ? AND created_at >= ? AND created_at < ?", revenueStatuses, start, end).
			Scan(&bucket).Error; err != nil {
			dc.Logger.Printf("Failed to bucket revenue: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to fetch revenue data",
			})
		}

		data.Datasets[0].Data = append(data.Datasets[0].Data, float64(bucket.Total)/100)
		data.Datasets[1].Data = append(data.Datasets[1].Data, float64(bucket.Count))
	}

	return c.JSON(utils.SuccessResponse(data))
}

// GetRecentOrders returns the latest orders for the dashboard table
func (dc *DashboardController) GetRecentOrders(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var orders []models.Order
	err := dc.DB.Preload("Items").Order("created_at DESC").Limit(limit).Find(&orders).Error
	if err != nil {
		dc.Logger.Printf("Failed to fetch recent orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch recent orders",
		})
	}

	return c.JSON(utils.SuccessResponse(orders))
}
