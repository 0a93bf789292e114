package bookings

import (
	"context"
	"ctoc/src/catalog"
	"ctoc/src/models"
	"ctoc/src/types"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

const reserveAttempts = 3

// Coordinator owns the booking transition. Everything between "does a booking
// exist" and "flip the item" runs in one transaction with the item row locked,
// so two concurrent reserves on the same key cannot both pass the check.
type Coordinator struct {
	db    *gorm.DB
	txids *TxIDGenerator
}

func NewCoordinator(db *gorm.DB, txids *TxIDGenerator) *Coordinator {
	return &Coordinator{db: db, txids: txids}
}

type ReserveParams struct {
	BuyerEmail    string
	BuyerName     string
	ItemID        uint
	ItemType      types.ItemType
	Amount        float64
	PaymentMethod string
}

// Reserve books an item for a buyer, or fails without changing anything.
// A duplicate-key conflict is retried a bounded number of times; the retry
// re-reads the item, so a genuine double-book resolves to ErrAlreadyBooked.
func (c *Coordinator) Reserve(ctx context.Context, params ReserveParams) (*models.Booking, error) {
	var lastErr error
	for attempt := 1; attempt <= reserveAttempts; attempt++ {
		booking, err := c.reserveOnce(ctx, params)
		if err == nil {
			return booking, nil
		}
		if errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrAlreadyBooked) {
			return nil, err
		}
		lastErr = err
		log.Printf("Reserve attempt %d/%d for %s[%d] failed: %s\n",
			attempt, reserveAttempts, params.ItemType, params.ItemID, err.Error())
	}
	return nil, fmt.Errorf("%w: %s", ErrTransientStore, lastErr.Error())
}

func (c *Coordinator) reserveOnce(ctx context.Context, params ReserveParams) (*models.Booking, error) {
	var booking models.Booking
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := catalog.ResolveForUpdate(tx, params.ItemType, params.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}
		if item.Booked() {
			return ErrAlreadyBooked
		}
		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ItemID: params.ItemID, ItemType: params.ItemType}).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyBooked
		}

		snap := item.Snapshot()
		now := time.Now()
		booking = models.Booking{
			TransactionID: c.txids.Next(),
			BuyerEmail:    params.BuyerEmail,
			BuyerName:     params.BuyerName,
			ItemID:        params.ItemID,
			ItemType:      params.ItemType,
			ItemName:      snap.Name,
			ItemLocation:  snap.Location,
			Amount:        snap.Amount,
			ImageURLs:     snap.ImageURLs,
			PaymentMethod: params.PaymentMethod,
			PaymentStatus: types.PAYMENT_COMPLETED,
			Status:        types.BOOKING_CONFIRMED,
			BookingDate:   now,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		affected, err := catalog.MarkBooked(tx, params.ItemType, params.ItemID, params.BuyerEmail, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrAlreadyBooked
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
