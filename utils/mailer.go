package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"ecomadmin/config"
	"ecomadmin/models"
)

// Embedded email template for order status notifications
var orderStatusTemplate = template.Must(template.New("order_status").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Order Update</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .status { font-size: 20px; font-weight: bold; color: #3498db; margin: 20px 0; text-align: center; text-transform: capitalize; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>Order #{{.OrderID}} Update</h2>
    </div>

    <div class="content">
        <p>Hello,</p>
        <p>The status of your order has changed to:</p>

        <div class="status">{{.Status}}</div>

        <p>Order total: {{.Total}}</p>
    </div>

    <div class="footer">
        <p>If you have any questions, reply to this email.</p>
        <p>© {{.Year}} All rights reserved.</p>
    </div>
</body>
</html>`))

// OrderMailer sends transactional order emails to customers
type OrderMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewOrderMailer() *OrderMailer {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		return &OrderMailer{from: cfg.FromEmail}
	}
	return &OrderMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.FromEmail,
	}
}

// Enabled reports whether SMTP is configured
func (m *OrderMailer) Enabled() bool {
	return m.dialer != nil
}

// SendStatusUpdate emails the customer that their order moved to a new status
func (m *OrderMailer) SendStatusUpdate(order *models.Order, toEmail string) error {
	if !m.Enabled() {
		return fmt.Errorf("SMTP is not configured")
	}

	var body bytes.Buffer
	err := orderStatusTemplate.Execute(&body, map[string]interface{}{
		"OrderID": order.ID,
		"Status":  order.Status,
		"Total":   fmt.Sprintf("$%.2f", float64(order.TotalCents)/100),
		"Year":    time.Now().Year(),
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Your order #%d is now %s", order.ID, order.Status))
	msg.SetBody("text/html", body.String())

	return m.dialer.DialAndSend(msg)
}
