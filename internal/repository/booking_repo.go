package repository

import (
	"context"

	"github.com/gollllden/Done/internal/models"
	"github.com/gollllden/Done/internal/slots"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByBookingID(ctx context.Context, bookingID string) (*models.Booking, error)
	FindByBookingIDForUpdate(ctx context.Context, tx *gorm.DB, bookingID string) (*models.Booking, error)
	FindAll(ctx context.Context) ([]models.Booking, error)
	FindByDate(ctx context.Context, date string) ([]models.Booking, error)
	FindByMonth(ctx context.Context, month string) ([]models.Booking, error)
	FindWithEmail(ctx context.Context) ([]models.Booking, error)
	LockSlot(ctx context.Context, tx *gorm.DB, date, time string) error
	CountActiveInSlot(ctx context.Context, tx *gorm.DB, date, time string) (int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID string, status models.BookingStatus) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByBookingIDForUpdate row-locks the booking within the given transaction.
func (r *bookingRepository) FindByBookingIDForUpdate(ctx context.Context, tx *gorm.DB, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("booking_id = ?", bookingID).
		First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByDate(ctx context.Context, date string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).Where("date = ?", date).Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindByMonth matches on the YYYY-MM prefix of the service date.
func (r *bookingRepository) FindByMonth(ctx context.Context, month string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("date LIKE ?", month+"-%").
		Order("date ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindWithEmail returns bookings that carry a customer email, oldest first.
func (r *bookingRepository) FindWithEmail(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("email IS NOT NULL AND email <> ''").
		Order("created_at ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// LockSlot takes a transaction-scoped advisory lock on the (date, time)
// bucket. Concurrent creators for the same slot queue behind it until commit.
func (r *bookingRepository) LockSlot(ctx context.Context, tx *gorm.DB, date, time string) error {
	return tx.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", slots.Key(date, time)).
		Error
}

func (r *bookingRepository) CountActiveInSlot(ctx context.Context, tx *gorm.DB, date, time string) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("date = ? AND time = ? AND status <> ?", date, time, models.StatusCancelled).
		Count(&count).Error
	return count, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID string, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booking_id = ?", bookingID).
		Update("status", status).Error
}
