package services

import (
	"dairyflow/config"
	"dairyflow/models"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// AlertService sends low-stock notification mails after approvals drain a
// feed item. Disabled when SMTP_HOST or ALERT_EMAILS is not configured.
type AlertService struct{}

func NewAlertService() *AlertService {
	return &AlertService{}
}

// NotifyLowStock checks the feed against the configured threshold and sends
// the alert in the background. A mail failure is logged, never propagated:
// the approval has already committed.
func (s *AlertService) NotifyLowStock(feed *models.StockItem) {
	if config.SMTPHost == "" || len(config.AlertEmails) == 0 {
		return
	}
	if config.LowStockThreshold <= 0 || feed.QuantityBags > config.LowStockThreshold {
		return
	}

	item := *feed
	go func() {
		if err := s.sendLowStockMail(&item); err != nil {
			log.Println("Failed to send low stock alert:", err)
		}
	}()
}

func (s *AlertService) sendLowStockMail(feed *models.StockItem) error {
	subject := "Low stock: " + feed.Name
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Feed stock is running low</h3>
				<p>Feed: <strong>%s</strong> (%s)</p>
				<p>Remaining: <strong>%d bags</strong> (threshold %d)</p>
				<p>This is an auto-generated email. Please do not reply to this email or its recipients.</p>
			</body>
		</html>
	`, feed.Name, feed.Type, feed.QuantityBags, config.LowStockThreshold)

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", config.AlertEmails...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	return dialer.DialAndSend(msg)
}
