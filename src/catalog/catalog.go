package catalog

import (
	"context"
	"ctoc/src/models"
	"ctoc/src/types"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUnknownItemType = errors.New("unknown item type")

// Catalog is the store for the two listing categories. Listing order is
// newest first; ties on created_at keep insertion order.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

func (c *Catalog) CreateProperty(ctx context.Context, body *types.CreatePropertyRequestBody, imageURLs types.JSONBArray) (*models.Property, error) {
	property := models.Property{
		Name:            body.Name,
		Location:        body.Location,
		Amount:          body.Amount,
		ContractorName:  body.ContractorName,
		ContractorPhone: body.ContractorPhone,
		Vacancies:       body.Vacancies,
		Discount:        body.Discount,
		ImageURLs:       imageURLs,
	}
	if err := c.db.WithContext(ctx).Create(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *Catalog) CreateVehicle(ctx context.Context, body *types.CreateVehicleRequestBody, imageURLs types.JSONBArray) (*models.Vehicle, error) {
	vehicle := models.Vehicle{
		Brand:     body.Brand,
		Model:     body.Model,
		Showroom:  body.Showroom,
		Location:  body.Location,
		Price:     body.Price,
		ImageURLs: imageURLs,
	}
	if err := c.db.WithContext(ctx).Create(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (c *Catalog) ListProperties(ctx context.Context, filters types.PropertyQueryFilters) ([]models.Property, error) {
	var properties []models.Property
	q := c.db.WithContext(ctx).
		Model(&models.Property{}).
		Where(&models.Property{Name: filters.Name, Location: filters.Location})
	if !filters.IncludeBooked {
		q = q.Where("is_booked = ?", false)
	}
	err := q.
		Order("created_at DESC, id ASC").
		Find(&properties).
		Error
	return properties, err
}

func (c *Catalog) ListVehicles(ctx context.Context, filters types.VehicleQueryFilters) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	q := c.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where(&models.Vehicle{Model: filters.Model, Location: filters.Location})
	if !filters.IncludeBooked {
		q = q.Where("is_booked = ?", false)
	}
	err := q.
		Order("created_at DESC, id ASC").
		Find(&vehicles).
		Error
	return vehicles, err
}

// Resolve looks an item up outside any transaction. Used by the read paths.
func (c *Catalog) Resolve(ctx context.Context, itemType types.ItemType, id uint) (models.Item, error) {
	return resolve(c.db.WithContext(ctx), itemType, id)
}

// ResolveForUpdate locks the item row for the duration of the surrounding
// transaction.
func ResolveForUpdate(tx *gorm.DB, itemType types.ItemType, id uint) (models.Item, error) {
	return resolve(tx.Clauses(clause.Locking{
		Strength: "UPDATE",
		Table:    clause.Table{Name: clause.CurrentTable},
	}), itemType, id)
}

func resolve(tx *gorm.DB, itemType types.ItemType, id uint) (models.Item, error) {
	switch itemType {
	case types.ITEM_PROPERTY:
		var property models.Property
		if err := tx.Where(&models.Property{ID: id}).First(&property).Error; err != nil {
			return nil, err
		}
		return &property, nil
	case types.ITEM_VEHICLE:
		var vehicle models.Vehicle
		if err := tx.Where(&models.Vehicle{ID: id}).First(&vehicle).Error; err != nil {
			return nil, err
		}
		return &vehicle, nil
	default:
		return nil, ErrUnknownItemType
	}
}

// MarkBooked flips the availability flag, guarded on the current value so a
// concurrent writer cannot flip it twice. Returns the number of rows changed;
// zero means the item was already booked.
func MarkBooked(tx *gorm.DB, itemType types.ItemType, id uint, buyer string, at time.Time) (int64, error) {
	values := map[string]any{
		"is_booked": true,
		"booked_by": buyer,
		"booked_at": at,
	}
	var res *gorm.DB
	switch itemType {
	case types.ITEM_PROPERTY:
		res = tx.Model(&models.Property{}).
			Where("id = ? AND is_booked = ?", id, false).
			Updates(values)
	case types.ITEM_VEHICLE:
		res = tx.Model(&models.Vehicle{}).
			Where("id = ? AND is_booked = ?", id, false).
			Updates(values)
	default:
		return 0, ErrUnknownItemType
	}
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
