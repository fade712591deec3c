package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gollllden/Done/internal/clock"
	"github.com/gollllden/Done/internal/models"
	"github.com/gollllden/Done/internal/notify"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func testClock() clock.Clock { return clock.NewFixed(testNow) }

// newMockDB backs the repository's GetDB so service transactions can begin
// and commit against sqlmock.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	db *gorm.DB

	createFn            func(ctx context.Context, tx *gorm.DB, b *models.Booking) error
	findByBookingIDFn   func(ctx context.Context, id string) (*models.Booking, error)
	findForUpdateFn     func(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error)
	findAllFn           func(ctx context.Context) ([]models.Booking, error)
	findByDateFn        func(ctx context.Context, date string) ([]models.Booking, error)
	findByMonthFn       func(ctx context.Context, month string) ([]models.Booking, error)
	findWithEmailFn     func(ctx context.Context) ([]models.Booking, error)
	lockSlotFn          func(ctx context.Context, tx *gorm.DB, date, t string) error
	countActiveInSlotFn func(ctx context.Context, tx *gorm.DB, date, t string) (int64, error)
	updateStatusFn      func(ctx context.Context, tx *gorm.DB, id string, status models.BookingStatus) error
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, tx, b)
}
func (m *mockBookingRepo) FindByBookingID(ctx context.Context, id string) (*models.Booking, error) {
	return m.findByBookingIDFn(ctx, id)
}
func (m *mockBookingRepo) FindByBookingIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error) {
	return m.findForUpdateFn(ctx, tx, id)
}
func (m *mockBookingRepo) FindAll(ctx context.Context) ([]models.Booking, error) {
	return m.findAllFn(ctx)
}
func (m *mockBookingRepo) FindByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return m.findByDateFn(ctx, date)
}
func (m *mockBookingRepo) FindByMonth(ctx context.Context, month string) ([]models.Booking, error) {
	return m.findByMonthFn(ctx, month)
}
func (m *mockBookingRepo) FindWithEmail(ctx context.Context) ([]models.Booking, error) {
	return m.findWithEmailFn(ctx)
}
func (m *mockBookingRepo) LockSlot(ctx context.Context, tx *gorm.DB, date, t string) error {
	if m.lockSlotFn == nil {
		return nil
	}
	return m.lockSlotFn(ctx, tx, date, t)
}
func (m *mockBookingRepo) CountActiveInSlot(ctx context.Context, tx *gorm.DB, date, t string) (int64, error) {
	if m.countActiveInSlotFn == nil {
		return 0, nil
	}
	return m.countActiveInSlotFn(ctx, tx, date, t)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.BookingStatus) error {
	if m.updateStatusFn == nil {
		return nil
	}
	return m.updateStatusFn(ctx, tx, id, status)
}
func (m *mockBookingRepo) GetDB() *gorm.DB { return m.db }

// --- Mock StatusCheckRepository ---

type mockStatusRepo struct {
	createFn     func(ctx context.Context, c *models.StatusCheck) error
	findRecentFn func(ctx context.Context, limit int) ([]models.StatusCheck, error)
}

func (m *mockStatusRepo) Create(ctx context.Context, c *models.StatusCheck) error {
	return m.createFn(ctx, c)
}
func (m *mockStatusRepo) FindRecent(ctx context.Context, limit int) ([]models.StatusCheck, error) {
	return m.findRecentFn(ctx, limit)
}

// --- Mock Publisher ---

type published struct {
	key     string
	payload any
}

type mockPublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (m *mockPublisher) Publish(_ context.Context, key string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, published{key: key, payload: payload})
	return m.err
}

// --- Mock EmailSender ---

type mockSender struct {
	mu   sync.Mutex
	sent []notify.EmailMessage
	err  error
}

func (m *mockSender) Send(_ context.Context, msg notify.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *mockSender) messages() []notify.EmailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.EmailMessage(nil), m.sent...)
}
