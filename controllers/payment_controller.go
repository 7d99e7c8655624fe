package controller

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"gorm.io/gorm"

	"ecomadmin/config"
	"ecomadmin/models"
	"ecomadmin/utils"
)

type PaymentController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewPaymentController(db *gorm.DB, logger *log.Logger) *PaymentController {
	stripe.Key = config.AppConfig.StripeSecretKey
	return &PaymentController{DB: db, Logger: logger}
}

// CreateOrderPaymentIntent creates a Stripe PaymentIntent for a pending order
// and stores its id on the order.
func (pc *PaymentController) CreateOrderPaymentIntent(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order ID",
		})
	}

	var order models.Order
	if err := pc.DB.Preload("User").First(&order, orderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}
	if order.Status != models.OrderStatusPending {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Only pending orders can be paid",
		})
	}
	if order.TotalCents <= 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Order total must be positive",
		})
	}

	customerID, err := pc.getOrCreateStripeCustomer(&order.User)
	if err != nil {
		pc.Logger.Printf("Failed to get Stripe customer for user %d: %v", order.UserID, err)
		sentry.CaptureException(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create payment",
		})
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(order.TotalCents)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		Customer: stripe.String(customerID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_id", strconv.FormatUint(uint64(order.ID), 10))

	intent, err := paymentintent.New(params)
	if err != nil {
		pc.Logger.Printf("Failed to create payment intent for order %d: %v", order.ID, err)
		sentry.CaptureException(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create payment",
		})
	}

	order.StripePaymentIntentID = &intent.ID
	if err := pc.DB.Save(&order).Error; err != nil {
		pc.Logger.Printf("Failed to store payment intent on order %d: %v", order.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create payment",
		})
	}

	return c.JSON(fiber.Map{
		"client_secret":     intent.ClientSecret,
		"payment_intent_id": intent.ID,
	})
}

// RefundOrder refunds a paid order through Stripe and cancels it
func (pc *PaymentController) RefundOrder(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order ID",
		})
	}

	var order models.Order
	if err := pc.DB.First(&order, orderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}
	if order.Status != models.OrderStatusPaid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Only paid orders can be refunded",
		})
	}
	if order.StripePaymentIntentID == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Order has no payment to refund",
		})
	}

	_, err = refund.New(&stripe.RefundParams{
		PaymentIntent: order.StripePaymentIntentID,
	})
	if err != nil {
		pc.Logger.Printf("Failed to refund order %d: %v", order.ID, err)
		sentry.CaptureException(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to refund order",
		})
	}

	now := time.Now()
	order.Status = models.OrderStatusCancelled
	order.CancelledAt = &now
	if err := pc.DB.Save(&order).Error; err != nil {
		pc.Logger.Printf("Failed to mark order %d cancelled after refund: %v", order.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Refund succeeded but the order could not be updated",
		})
	}

	return c.JSON(utils.SuccessResponse(order))
}

// HandleStripeWebhook reacts to payment events from Stripe. Only
// payment_intent.succeeded is acted on; everything else is acknowledged.
func (pc *PaymentController) HandleStripeWebhook(c *fiber.Ctx) error {
	event, err := utils.ConstructStripeEvent(c)
	if err != nil {
		return err
	}

	if event.Type == "payment_intent.succeeded" {
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			pc.Logger.Printf("Failed to decode payment intent from webhook: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Malformed event payload",
			})
		}
		if err := pc.markOrderPaid(intent.ID); err != nil {
			pc.Logger.Printf("Failed to mark order paid for intent %s: %v", intent.ID, err)
			sentry.CaptureException(err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to process event",
			})
		}
	}

	return c.JSON(fiber.Map{"received": true})
}

func (pc *PaymentController) markOrderPaid(paymentIntentID string) error {
	var order models.Order
	err := pc.DB.Where("stripe_payment_intent_id = ?", paymentIntentID).First(&order).Error
	if err == gorm.ErrRecordNotFound {
		// Not one of ours, nothing to do
		return nil
	}
	if err != nil {
		return err
	}
	if !models.ValidOrderTransition(order.Status, models.OrderStatusPaid) {
		// Webhook retries can arrive after the order already moved on
		return nil
	}

	now := time.Now()
	order.Status = models.OrderStatusPaid
	order.PaidAt = &now
	return pc.DB.Save(&order).Error
}

func (pc *PaymentController) getOrCreateStripeCustomer(user *models.User) (string, error) {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return *user.StripeCustomerID, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(user.Email),
	}
	if user.Name != nil {
		params.Name = user.Name
	}

	cust, err := customer.New(params)
	if err != nil {
		return "", err
	}

	user.StripeCustomerID = &cust.ID
	if err := pc.DB.Save(user).Error; err != nil {
		return "", err
	}
	return cust.ID, nil
}
