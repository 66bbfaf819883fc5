// File: /jobs/expiry_reminder_job.go
package jobs

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dediosardie/dns-maynilad-vmms/models"
	"github.com/dediosardie/dns-maynilad-vmms/services"
)

// ExpiryReminderJob periodically rescans compliance documents and driver
// licenses, refreshes derived expiry statuses, and alerts fleet staff when
// something enters the reminder window.
type ExpiryReminderJob struct {
	db            *gorm.DB
	notifications *services.NotificationService
	email         *services.EmailService
	ticker        *time.Ticker
	done          chan bool
}

func NewExpiryReminderJob(db *gorm.DB, notifications *services.NotificationService, email *services.EmailService, interval time.Duration) *ExpiryReminderJob {
	return &ExpiryReminderJob{
		db:            db,
		notifications: notifications,
		email:         email,
		ticker:        time.NewTicker(interval),
		done:          make(chan bool),
	}
}

// Start begins the reminder job
func (j *ExpiryReminderJob) Start() {
	fmt.Println("Expiry reminder job started")

	go func() {
		// Run immediately on start
		j.run()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.run()
			case <-j.done:
				fmt.Println("Expiry reminder job stopped")
				return
			}
		}
	}()
}

// Stop stops the reminder job
func (j *ExpiryReminderJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *ExpiryReminderJob) run() {
	now := time.Now()
	j.checkDocuments(now)
	j.checkLicenses(now)
}

// checkDocuments re-derives each document's status and alerts on the first
// transition out of valid. The stored status doubles as the dedupe marker:
// reminders fire only when the derived status differs from the stored one.
func (j *ExpiryReminderJob) checkDocuments(now time.Time) {
	var documents []models.ComplianceDocument
	if err := j.db.Preload("Vehicle").Where("expiry_date IS NOT NULL").Find(&documents).Error; err != nil {
		fmt.Printf("Error scanning compliance documents: %v\n", err)
		return
	}

	managers := j.fleetManagers()

	for i := range documents {
		doc := &documents[i]
		derived := models.ExpiryStatus(doc.ExpiryDate, doc.ReminderDays, now)
		if derived == doc.Status {
			continue
		}

		if err := j.db.Model(doc).Update("status", derived).Error; err != nil {
			fmt.Printf("Error updating document %s status: %v\n", doc.ID, err)
			continue
		}
		doc.Status = derived

		if derived == models.DocumentStatusValid {
			continue
		}

		title := "Document expiring soon"
		if derived == models.DocumentStatusExpired {
			title = "Document expired"
		}
		message := fmt.Sprintf("%s %s for vehicle %s expires on %s",
			doc.DocumentType, doc.DocumentNumber, doc.Vehicle.PlateNumber,
			doc.ExpiryDate.Format("2006-01-02"))

		if err := j.notifications.NotifyRole(models.NotificationDocumentExpiring, title, message, doc.ID,
			models.RoleAdmin, models.RoleFleetManager); err != nil {
			fmt.Printf("Error creating document expiry notification: %v\n", err)
		}

		for _, manager := range managers {
			if err := j.email.SendDocumentExpiryReminder(manager.Email, doc, doc.Vehicle.PlateNumber); err != nil {
				fmt.Printf("Error emailing document reminder to %s: %v\n", manager.Email, err)
			}
		}
	}
}

// checkLicenses alerts on driver licenses entering the reminder window. An
// existing notification for the driver suppresses repeats.
func (j *ExpiryReminderJob) checkLicenses(now time.Time) {
	var drivers []models.Driver
	if err := j.db.Where("status = ?", models.DriverStatusActive).Find(&drivers).Error; err != nil {
		fmt.Printf("Error scanning drivers: %v\n", err)
		return
	}

	managers := j.fleetManagers()

	for i := range drivers {
		driver := &drivers[i]
		if !driver.LicenseExpiresWithin(models.DefaultReminderDays, now) {
			continue
		}

		var existing int64
		j.db.Model(&models.Notification{}).
			Where("type = ? AND entity_id = ?", models.NotificationLicenseExpiring, driver.ID).
			Count(&existing)
		if existing > 0 {
			continue
		}

		message := fmt.Sprintf("License %s of %s expires on %s",
			driver.LicenseNumber, driver.FullName, driver.LicenseExpiry.Format("2006-01-02"))

		if err := j.notifications.NotifyRole(models.NotificationLicenseExpiring, "Driver license expiring", message, driver.ID,
			models.RoleAdmin, models.RoleFleetManager); err != nil {
			fmt.Printf("Error creating license expiry notification: %v\n", err)
		}

		for _, manager := range managers {
			if err := j.email.SendLicenseExpiryReminder(manager.Email, driver); err != nil {
				fmt.Printf("Error emailing license reminder to %s: %v\n", manager.Email, err)
			}
		}
	}
}

func (j *ExpiryReminderJob) fleetManagers() []models.User {
	var users []models.User
	if err := j.db.Where("role IN ?", []models.UserRole{models.RoleAdmin, models.RoleFleetManager}).
		Find(&users).Error; err != nil {
		fmt.Printf("Error resolving reminder recipients: %v\n", err)
	}
	return users
}
