package bookings

import (
	"context"
	"ctoc/src/catalog"
	"ctoc/src/models"
	"ctoc/src/types"
	"errors"

	"gorm.io/gorm"
)

// Ledger is the read side of the booking store.
type Ledger struct {
	db      *gorm.DB
	catalog *catalog.Catalog
}

func NewLedger(db *gorm.DB, cat *catalog.Catalog) *Ledger {
	return &Ledger{db: db, catalog: cat}
}

// ResolvedItem carries the listing's current display fields. It can differ
// from the snapshot columns on the booking; the snapshot is the record of
// what the buyer agreed to.
type ResolvedItem struct {
	Name      string           `json:"name"`
	Location  string           `json:"location,omitempty"`
	Amount    float64          `json:"amount"`
	ImageURLs types.JSONBArray `json:"image_urls,omitempty"`
	IsBooked  bool             `json:"is_booked"`
}

type BookingView struct {
	models.Booking
	Item *ResolvedItem `json:"item,omitempty"`
}

// ListForBuyer returns the buyer's bookings newest first, each joined against
// the listing's current state. A booking whose listing no longer resolves is
// still returned with its snapshot columns only.
func (l *Ledger) ListForBuyer(ctx context.Context, email string) ([]BookingView, error) {
	var records []models.Booking
	err := l.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(&models.Booking{BuyerEmail: email}).
		Order("booking_date DESC").
		Find(&records).
		Error
	if err != nil {
		return nil, err
	}
	views := make([]BookingView, 0, len(records))
	for _, record := range records {
		view := BookingView{Booking: record}
		item, err := l.catalog.Resolve(ctx, record.ItemType, record.ItemID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil {
			snap := item.Snapshot()
			view.Item = &ResolvedItem{
				Name:      snap.Name,
				Location:  snap.Location,
				Amount:    snap.Amount,
				ImageURLs: snap.ImageURLs,
				IsBooked:  item.Booked(),
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// Find resolves a booking by its external transaction id.
func (l *Ledger) Find(ctx context.Context, transactionID string) (*models.Booking, error) {
	var booking models.Booking
	err := l.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(&models.Booking{TransactionID: transactionID}).
		First(&booking).
		Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
