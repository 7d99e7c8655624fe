package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecomadmin/models"
	"ecomadmin/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Logger *log.Logger
	Mailer *utils.OrderMailer
}

func NewOrderController(db *gorm.DB, logger *log.Logger, mailer *utils.OrderMailer) *OrderController {
	return &OrderController{DB: db, Logger: logger, Mailer: mailer}
}

// GetOrders lists orders, newest first, with optional status and user filters
func (oc *OrderController) GetOrders(c *fiber.Ctx) error {
	query := oc.DB.Preload("Items").Preload("Items.Product").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if userID := c.QueryInt("user_id", 0); userID > 0 {
		query = query.Where("user_id = ?", userID)
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)

	var orders []models.Order
	if err := query.Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		oc.Logger.Printf("Failed to list orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch orders",
		})
	}

	return c.JSON(utils.SuccessResponse(orders))
}

// GetOrder returns one order with its line items
func (oc *OrderController) GetOrder(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order ID",
		})
	}

	var order models.Order
	if err := oc.DB.Preload("Items").Preload("Items.Product").First(&order, orderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	return c.JSON(utils.SuccessResponse(order))
}

// UpdateOrderStatus moves an order along the fulfilment lifecycle. Invalid
// transitions are rejected; the customer is emailed on success when SMTP is
// configured.
func (oc *OrderController) UpdateOrderStatus(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order ID",
		})
	}

	var input struct {
		Status string `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var order models.Order
	if err := oc.DB.Preload("User").First(&order, orderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	if !models.ValidOrderTransition(order.Status, input.Status) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Order cannot move from " + order.Status + " to " + input.Status,
		})
	}

	now := time.Now()
	order.Status = input.Status
	switch input.Status {
	case models.OrderStatusPaid:
		order.PaidAt = &now
	case models.OrderStatusShipped:
		order.ShippedAt = &now
	case models.OrderStatusDelivered:
		order.DeliveredAt = &now
	case models.OrderStatusCancelled:
		order.CancelledAt = &now
	}

	if err := oc.DB.Save(&order).Error; err != nil {
		oc.Logger.Printf("Failed to update order %d: %v", order.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update order",
		})
	}

	// Notification is best effort; the status change already happened
	if oc.Mailer != nil && oc.Mailer.Enabled() && order.User.Email != "" {
		if err := oc.Mailer.SendStatusUpdate(&order, order.User.Email); err != nil {
			oc.Logger.Printf("Failed to send status email for order %d: %v", order.ID, err)
		}
	}

	return c.JSON(utils.SuccessResponse(order))
}

// DeleteOrder removes an order and its line items
func (oc *OrderController) DeleteOrder(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order ID",
		})
	}

	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, orderID).Error
	})
	if err != nil {
		oc.Logger.Printf("Failed to delete order %d: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete order",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Order deleted successfully",
	})
}
