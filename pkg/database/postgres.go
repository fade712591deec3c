package database

import (
	"fmt"
	"time"

	"github.com/gollllden/Done/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

// Migrate creates the tables plus the partial index used by the slot
// capacity count.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Booking{}, &models.StatusCheck{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booking_slot_active
		ON bookings (date, time)
		WHERE status <> 'cancelled'
	`).Error; err != nil {
		return fmt.Errorf("create slot index: %w", err)
	}
	return nil
}
