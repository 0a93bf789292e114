package bookings

import (
	"context"
	"errors"
	"testing"

	"ctoc/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("could not create sqlmock: %s", err.Error())
	}
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("could not open gorm: %s", err.Error())
	}
	return gdb, mock
}

func propertyRow(id uint, name string, amount float64, booked bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "location", "amount", "is_booked"}).
		AddRow(id, name, "Karachi", amount, booked)
}

func TestReservePropertySuccess(t *testing.T) {
	db, mock := newMockDB(t)
	coordinator := NewCoordinator(db, NewTxIDGenerator())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "properties" WHERE .+ FOR UPDATE`).
		WillReturnRows(propertyRow(1, "Sunrise Villa", 250000, false))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "properties" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := coordinator.Reserve(context.Background(), ReserveParams{
		BuyerEmail:    "buyer@example.com",
		BuyerName:     "Buyer",
		ItemID:        1,
		ItemType:      types.ITEM_PROPERTY,
		Amount:        250000,
		PaymentMethod: "card",
	})
	assert.Nil(t, err)
	assert.NotNil(t, booking)
	assert.Contains(t, booking.TransactionID, "TXN-")
	assert.Equal(t, "Sunrise Villa", booking.ItemName)
	assert.Equal(t, float64(250000), booking.Amount)
	assert.Equal(t, types.BOOKING_CONFIRMED, booking.Status)
	assert.Equal(t, types.PAYMENT_COMPLETED, booking.PaymentStatus)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestReserveVehicleSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	coordinator := NewCoordinator(db, NewTxIDGenerator())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "vehicles" WHERE .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "brand", "model", "location", "price", "is_booked"}).
			AddRow(9, "Toyota", "Corolla", "Lahore", 45000, false))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectExec(`UPDATE "vehicles" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := coordinator.Reserve(context.Background(), ReserveParams{
		BuyerEmail:    "buyer@example.com",
		ItemID:        9,
		ItemType:      types.ITEM_VEHICLE,
		Amount:        45000,
		PaymentMethod: "cash",
	})
	assert.Nil(t, err)
	assert.NotNil(t, booking)
	assert.Equal(t, "Toyota Corolla", booking.ItemName)
	assert.Equal(t, float64(45000), booking.Amount)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestReserveItemNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	coordinator := NewCoordinator(db, NewTxIDGenerator())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "properties" WHERE .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	booking, err := coordinator.Reserve(context.Background(), ReserveParams{
		BuyerEmail: "buyer@example.com",
		ItemID:     404,
		ItemType:   types.ITEM_PROPERTY,
	})
	assert.Nil(t, booking)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestReserveAlreadyBookedFlag(t *testing.T) {
	db, mock := newMockDB(t)
	coordinator := NewCoordinator(db, NewTxIDGenerator())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "properties" WHERE .+ FOR UPDATE`).
		WillReturnRows(propertyRow(1, "Sunrise Villa", 250000, true))
	mock.ExpectRollback()

	booking, err := coordinator.Reserve(context.Background(), ReserveParams{
		BuyerEmail: "late@example.com",
		ItemID:     1,
		ItemType:   types.ITEM_PROPERTY,
	})
	assert.Nil(t, booking)
	assert.ErrorIs(t, err, ErrAlreadyBooked)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestReserveExistingBookingRow(t *testing.T) {
	db, mock := newMockDB(t)
	coordinator := NewCoordinator(db, NewTxIDGenerator())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "properties" WHERE .+ FOR UPDATE`).
		WillReturnRows(propertyRow(1, "Sunrise Villa", 250000, false))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	booking, err := coordinator.Reserve(context.Background(), ReserveParams{
		BuyerEmail: "late@example.com",
		ItemID:     1,
		ItemType:   types.ITEM_PROPERTY,
	})
	assert.Nil(t, booking)
	assert.ErrorIs(t, err, ErrAlreadyBooked)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestReserveGuardedUpdateLost(t *testing.T) {
	db, mock := newMockDB(t)
	coordinator := NewCoordinator(db, NewTxIDGenerator())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "properties" WHERE .+ FOR UPDATE`).
		WillReturnRows(propertyRow(1, "Sunrise Villa", 250000, false))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "properties" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	booking, err := coordinator.Reserve(context.Background(), ReserveParams{
		BuyerEmail: "late@example.com",
		ItemID:     1,
		ItemType:   types.ITEM_PROPERTY,
	})
	assert.Nil(t, booking)
	assert.ErrorIs(t, err, ErrAlreadyBooked)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestReserveDuplicateBookingResolvesToAlreadyBooked(t *testing.T) {
	db, mock := newMockDB(t)
	coordinator := NewCoordinator(db, NewTxIDGenerator())

	// first attempt loses a concurrent insert on the
	// (item_id, item_type) unique index
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "properties" WHERE .+ FOR UPDATE`).
		WillReturnRows(propertyRow(1, "Sunrise Villa", 250000, false))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	// the retry re-reads the item and sees the winner's flip
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "properties" WHERE .+ FOR UPDATE`).
		WillReturnRows(propertyRow(1, "Sunrise Villa", 250000, true))
	mock.ExpectRollback()

	booking, err := coordinator.Reserve(context.Background(), ReserveParams{
		BuyerEmail: "late@example.com",
		ItemID:     1,
		ItemType:   types.ITEM_PROPERTY,
	})
	assert.Nil(t, booking)
	assert.ErrorIs(t, err, ErrAlreadyBooked)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestReserveTransientErrorsExhaustRetries(t *testing.T) {
	db, mock := newMockDB(t)
	coordinator := NewCoordinator(db, NewTxIDGenerator())

	for i := 0; i < reserveAttempts; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "properties" WHERE .+ FOR UPDATE`).
			WillReturnError(errors.New("connection reset by peer"))
		mock.ExpectRollback()
	}

	booking, err := coordinator.Reserve(context.Background(), ReserveParams{
		BuyerEmail: "buyer@example.com",
		ItemID:     1,
		ItemType:   types.ITEM_PROPERTY,
	})
	assert.Nil(t, booking)
	assert.ErrorIs(t, err, ErrTransientStore)
	assert.Nil(t, mock.ExpectationsWereMet())
}
