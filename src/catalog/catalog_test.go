package catalog

import (
	"context"
	"testing"
	"time"

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

func TestListPropertiesExcludesBookedByDefault(t *testing.T) {
	db, mock := newMockDB(t)
	cat := NewCatalog(db)

	mock.ExpectQuery(`SELECT \* FROM "properties" WHERE is_booked = \$1 .+ ORDER BY created_at DESC, id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "location", "amount", "is_booked"}).
			AddRow(2, "Hilltop Flat", "Islamabad", 180000, false).
			AddRow(1, "Sunrise Villa", "Karachi", 250000, false))

	properties, err := cat.ListProperties(context.Background(), types.PropertyQueryFilters{})
	assert.Nil(t, err)
	assert.Len(t, properties, 2)
	assert.Equal(t, "Hilltop Flat", properties[0].Name)
	assert.Equal(t, "Sunrise Villa", properties[1].Name)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestListPropertiesByLocation(t *testing.T) {
	db, mock := newMockDB(t)
	cat := NewCatalog(db)

	mock.ExpectQuery(`SELECT \* FROM "properties" WHERE "properties"\."location" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "location"}).
			AddRow(1, "Sunrise Villa", "Karachi"))

	properties, err := cat.ListProperties(context.Background(), types.PropertyQueryFilters{Location: "Karachi"})
	assert.Nil(t, err)
	assert.Len(t, properties, 1)
	assert.Equal(t, "Karachi", properties[0].Location)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestListVehiclesIncludeBooked(t *testing.T) {
	db, mock := newMockDB(t)
	cat := NewCatalog(db)

	mock.ExpectQuery(`SELECT \* FROM "vehicles" .* ORDER BY created_at DESC, id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "brand", "model", "is_booked"}).
			AddRow(9, "Toyota", "Corolla", true).
			AddRow(3, "Honda", "Civic", false))

	vehicles, err := cat.ListVehicles(context.Background(), types.VehicleQueryFilters{IncludeBooked: true})
	assert.Nil(t, err)
	assert.Len(t, vehicles, 2)
	assert.True(t, vehicles[0].IsBooked)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCreateProperty(t *testing.T) {
	db, mock := newMockDB(t)
	cat := NewCatalog(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	property, err := cat.CreateProperty(context.Background(), &types.CreatePropertyRequestBody{
		Name:     "Sunrise Villa",
		Location: "Karachi",
		Amount:   250000,
	}, nil)
	assert.Nil(t, err)
	assert.Equal(t, uint(7), property.ID)
	assert.False(t, property.IsBooked)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestResolveUnknownItemType(t *testing.T) {
	db, _ := newMockDB(t)
	cat := NewCatalog(db)

	item, err := cat.Resolve(context.Background(), types.ItemType("boat"), 1)
	assert.Nil(t, item)
	assert.ErrorIs(t, err, ErrUnknownItemType)
}

func TestMarkBookedGuardsOnCurrentValue(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "vehicles" SET .+ WHERE \(id = \$\d+ AND is_booked = \$\d+\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	affected, err := MarkBooked(db, types.ITEM_VEHICLE, 9, "buyer@example.com", time.Now())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestMarkBookedAlreadyFlipped(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "properties" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	affected, err := MarkBooked(db, types.ITEM_PROPERTY, 1, "buyer@example.com", time.Now())
	assert.Nil(t, err)
	assert.Equal(t, int64(0), affected)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestMarkBookedUnknownItemType(t *testing.T) {
	db, _ := newMockDB(t)

	affected, err := MarkBooked(db, types.ItemType("boat"), 1, "buyer@example.com", time.Now())
	assert.Equal(t, int64(0), affected)
	assert.ErrorIs(t, err, ErrUnknownItemType)
}
