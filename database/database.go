package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dediosardie/dns-maynilad-vmms/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Driver{},
		&models.Maintenance{},
		&models.Trip{},
		&models.FuelTransaction{},
		&models.Incident{},
		&models.InsuranceClaim{},
		&models.ComplianceDocument{},
		&models.DisposalRequest{},
		&models.DisposalAuction{},
		&models.Bid{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Bid log is always read newest-highest-first per auction
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_bids_auction_amount ON bids(auction_id, bid_amount DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for bids: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_fuel_vehicle_date ON fuel_transactions(vehicle_id, transaction_date DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for fuel_transactions: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_compliance_expiry ON compliance_documents(expiry_date)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for compliance_documents: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_user_read ON notifications(target_user_id, is_read)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for notifications: %v\n", err)
	}

	return nil
}

func addDatabaseConstraints(db *gorm.DB) error {
	// Timestamp-derived disposal numbers rely on this constraint, not on
	// millisecond granularity
	if err := db.Exec("ALTER TABLE disposal_requests ADD CONSTRAINT uk_disposal_number UNIQUE (disposal_number)").Error; err != nil {
		fmt.Printf("Warning: Could not add unique constraint for disposal_requests: %v\n", err)
	}

	if err := db.Exec("ALTER TABLE bids ADD CONSTRAINT ck_bids_positive_amount CHECK (bid_amount > 0)").Error; err != nil {
		fmt.Printf("Warning: Could not add check constraint for bids: %v\n", err)
	}

	if err := db.Exec("ALTER TABLE disposal_auctions ADD CONSTRAINT ck_auctions_positive_start CHECK (starting_price > 0)").Error; err != nil {
		fmt.Printf("Warning: Could not add check constraint for disposal_auctions: %v\n", err)
	}

	return nil
}

// SeedData populates the database with a default administrator for
// development environments.
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	admin := models.User{
		ID:       "user-admin",
		FullName: "Fleet Administrator",
		Email:    "admin@vmms.local",
		Password: "$2a$10$dummy", // replaced on first real registration
		Role:     models.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	fmt.Println("Seeded default administrator account")
	return nil
}
