package services

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/dediosardie/dns-maynilad-vmms/config"
	"github.com/dediosardie/dns-maynilad-vmms/models"
)

// EmailService sends operational notifications (expiring documents, licenses)
// to fleet staff.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendDocumentExpiryReminder emails a reminder about a compliance document
// entering its reminder window.
func (es *EmailService) SendDocumentExpiryReminder(to string, doc *models.ComplianceDocument, plateNumber string) error {
	if doc.ExpiryDate == nil {
		return nil
	}

	daysLeft := int(time.Until(*doc.ExpiryDate).Hours() / 24)
	subject := fmt.Sprintf("Document expiring: %s for %s", doc.DocumentType, plateNumber)
	body := fmt.Sprintf(`
		<h2>Compliance Document Expiry Reminder</h2>
		<p>The <strong>%s</strong> document for vehicle <strong>%s</strong> expires on <strong>%s</strong> (%d days from now).</p>
		<p>Document number: %s</p>
		<p>Please renew it before the expiry date to keep the vehicle compliant.</p>
	`, doc.DocumentType, plateNumber, doc.ExpiryDate.Format("2006-01-02"), daysLeft, doc.DocumentNumber)

	return es.send(to, subject, body)
}

// SendLicenseExpiryReminder emails a reminder about a driver's license
// nearing expiry.
func (es *EmailService) SendLicenseExpiryReminder(to string, driver *models.Driver) error {
	subject := fmt.Sprintf("Driver license expiring: %s", driver.FullName)
	body := fmt.Sprintf(`
		<h2>Driver License Expiry Reminder</h2>
		<p>The license of <strong>%s</strong> (no. %s) expires on <strong>%s</strong>.</p>
		<p>Please arrange renewal before the expiry date.</p>
	`, driver.FullName, driver.LicenseNumber, driver.LicenseExpiry.Format("2006-01-02"))

	return es.send(to, subject, body)
}

func (es *EmailService) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
