package models

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order represents a customer purchase
type Order struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"user_id"`

	Status     string `gorm:"default:'pending'" json:"status"` // pending, paid, shipped, delivered, cancelled
	TotalCents int    `gorm:"not null" json:"total_cents"`

	ShippingAddress string `json:"shipping_address"`

	// Stripe integration
	StripePaymentIntentID *string `gorm:"index" json:"stripe_payment_intent_id,omitempty"`

	PaidAt      *time.Time `json:"paid_at"`
	ShippedAt   *time.Time `json:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	// Relations
	User  User        `json:"-"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// OrderItem is one line of an order, with the variant the customer picked
type OrderItem struct {
	gorm.Model
	OrderID   uint `gorm:"not null;index" json:"order_id"`
	ProductID uint `gorm:"not null;index" json:"product_id"`

	Quantity       int    `gorm:"default:1" json:"quantity"`
	UnitPriceCents int    `gorm:"not null" json:"unit_price_cents"`
	Flavor         string `json:"flavor"`
	Size           string `json:"size"`

	Product Product `json:"product,omitempty"`
}

// ValidOrderTransition reports whether an order may move from one status to
// another. Delivered and cancelled orders are terminal.
func ValidOrderTransition(from, to string) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusPaid || to == OrderStatusCancelled
	case OrderStatusPaid:
		return to == OrderStatusShipped || to == OrderStatusCancelled
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	default:
		return false
	}
}
