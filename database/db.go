package database

import (
	"fmt"
	"os"

	"hostel-booking/logger"
	"hostel-booking/models/booking"
	"hostel-booking/models/hostel"
	"hostel-booking/models/issue"
	"hostel-booking/models/log"
	"hostel-booking/models/notice"
	"hostel-booking/models/payment"
	"hostel-booking/models/room"
	"hostel-booking/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB opens the database connection, migrates the schema and creates
// secondary indexes.
func InitDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	dbUser := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, dbUser, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := Migrate(DB); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createIndexes(DB); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// Migrate runs auto migration for all models, parents before children.
func Migrate(db *gorm.DB) error {
	stages := [][]interface{}{
		{
			&user.User{},
		},
		{
			&hostel.Hostel{},
			&hostel.HostelImage{},
			&room.Room{},
		},
		{
			&booking.Booking{},
			&booking.BookingStatusEvent{},
			&issue.Issue{},
			&notice.Notice{},
			&payment.Payment{},
		},
		{
			&log.Log{},
		},
	}

	for _, stage := range stages {
		for _, model := range stage {
			if err := db.AutoMigrate(model); err != nil {
				return fmt.Errorf("failed to migrate %T: %w", model, err)
			}
		}
	}
	return nil
}

// createIndexes creates additional composite indexes the model tags cannot
// express.
func createIndexes(db *gorm.DB) error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email_username ON users(email, username)",
		"CREATE INDEX IF NOT EXISTS idx_hostels_owner_active ON hostels(owner_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_rooms_hostel_number ON rooms(hostel_id, room_number)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_user_hostel ON bookings(user_id, hostel_id)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_booking_date ON bookings(booking_date)",
		"CREATE INDEX IF NOT EXISTS idx_notices_hostel_active ON notices(hostel_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_payments_transaction ON payments(transaction_id)",
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return DB
}
