package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gollllden/Done/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

var bookingColumns = []string{"id", "booking_id", "customer_id", "name", "email", "phone", "address", "service", "service_name", "date", "time", "discount", "status", "created_at", "updated_at"}

func TestBookingRepo_FindByBookingID(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "bookings" WHERE booking_id = $1`)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(1, "b-1", "GT-ABC123", "Ama", "ama@example.com", "4035550101", "12 Main St", "2", "Interior Detailing", "2026-03-02", "8:00 AM", 30, "pending", now, now))

	repo := NewBookingRepository(db)
	b, err := repo.FindByBookingID(context.Background(), "b-1")

	require.NoError(t, err)
	assert.Equal(t, "GT-ABC123", b.CustomerID)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.Equal(t, 30, b.Discount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_FindByBookingID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "bookings" WHERE booking_id = $1`)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := NewBookingRepository(db).FindByBookingID(context.Background(), "missing")

	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestBookingRepo_FindByBookingIDForUpdate_LocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE booking_id = \$1 .*FOR UPDATE`).
		WithArgs("b-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(1, "b-1", "GT-ABC123", "Ama", "", "4035550101", "12 Main St", "2", "Interior Detailing", "2026-03-02", "8:00 AM", 0, "confirmed", now, now))
	mock.ExpectCommit()

	repo := NewBookingRepository(db)
	var got *models.Booking
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		got, err = repo.FindByBookingIDForUpdate(context.Background(), tx, "b-1")
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_FindAll_NewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "bookings" ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id"}).AddRow(2, "b-2").AddRow(1, "b-1"))

	bookings, err := NewBookingRepository(db).FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "b-2", bookings[0].BookingID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_FindByMonth(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "bookings" WHERE date LIKE $1 ORDER BY date ASC`)).
		WithArgs("2026-03-%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date"}).AddRow(1, "2026-03-04"))

	bookings, err := NewBookingRepository(db).FindByMonth(context.Background(), "2026-03")

	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_LockAndCountSlot(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock(hashtext($1))`)).
		WithArgs("2026-03-02-8:00 AM").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "bookings"`)).
		WithArgs("2026-03-02", "8:00 AM", "cancelled").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

	repo := NewBookingRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.LockSlot(ctx, db, "2026-03-02", "8:00 AM"))
	n, err := repo.CountActiveInSlot(ctx, db, "2026-03-02", "8:00 AM")

	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "bookings"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	b := &models.Booking{BookingID: "b-7", CustomerID: "GT-XYZ789", Name: "Kofi", Phone: "4035550101",
		Address: "1 Elm", Service: "1", ServiceName: "Exterior Wash & Wax", Date: "2026-03-02", Time: "8:00 AM",
		Status: models.StatusPending}
	err := NewBookingRepository(db).Create(context.Background(), db, b)

	require.NoError(t, err)
	assert.Equal(t, uint(7), b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_UpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "bookings" SET "status"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewBookingRepository(db).UpdateStatus(context.Background(), db, "b-1", models.StatusConfirmed)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
