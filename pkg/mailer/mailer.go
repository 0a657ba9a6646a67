// Package mailer delivers low-stock alert emails over SMTP.
package mailer

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// LowStockAlert carries everything the alert email renders.
type LowStockAlert struct {
	ProductName   string `json:"product_name"`
	SKU           string `json:"sku"`
	CurrentStock  int    `json:"current_stock"`
	MinStockLevel int    `json:"min_stock_level"`
	SupplierName  string `json:"supplier_name"`
	SupplierEmail string `json:"supplier_email"`
}

// Mailer is the notification delivery collaborator. Failures are reported,
// never panicked; callers decide whether to continue.
type Mailer interface {
	SendLowStockAlert(alert LowStockAlert) error
}

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
}

// NewSMTPMailerFromEnv configures delivery from SMTP_* and ALERT_EMAIL_* vars.
func NewSMTPMailerFromEnv() *SMTPMailer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}

	from := os.Getenv("ALERT_EMAIL_FROM")
	if from == "" {
		from = "alerts@inventory-erp.com"
	}
	to := os.Getenv("ALERT_EMAIL_TO")
	if to == "" {
		to = "admin@inventory-erp.com"
	}

	return &SMTPMailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     from,
		to:       to,
	}
}

func (m *SMTPMailer) SendLowStockAlert(alert LowStockAlert) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", fmt.Sprintf("Low Stock Alert: %s (%s)", alert.ProductName, alert.SKU))
	msg.SetBody("text/html", renderLowStockBody(alert))

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send low stock alert for %s: %w", alert.SKU, err)
	}
	return nil
}

func renderLowStockBody(alert LowStockAlert) string {
	return fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px;">
  <h2 style="color: #dc2626;">Low Stock Alert</h2>
  <table style="width: 100%%; border-collapse: collapse;">
    <tr><td style="padding: 8px 0; color: #64748b;">Product</td><td style="font-weight: 600;">%s</td></tr>
    <tr><td style="padding: 8px 0; color: #64748b;">SKU</td><td style="font-weight: 600;">%s</td></tr>
    <tr><td style="padding: 8px 0; color: #64748b;">Current Stock</td><td style="font-weight: 600; color: #dc2626;">%d units</td></tr>
    <tr><td style="padding: 8px 0; color: #64748b;">Min. Level</td><td style="font-weight: 600;">%d units</td></tr>
    <tr><td style="padding: 8px 0; color: #64748b;">Supplier</td><td style="font-weight: 600;">%s</td></tr>
    <tr><td style="padding: 8px 0; color: #64748b;">Supplier Email</td><td style="font-weight: 600;">%s</td></tr>
  </table>
  <p style="margin-top: 16px; color: #64748b;">Action Required: Please create a purchase order to restock this item.</p>
</div>`,
		alert.ProductName, alert.SKU, alert.CurrentStock, alert.MinStockLevel,
		alert.SupplierName, alert.SupplierEmail)
}
