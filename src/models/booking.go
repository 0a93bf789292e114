package models

import (
	"ctoc/src/types"
	"time"
)

// Booking is append-only. The item_id/item_type composite unique index is the
// store-level enforcement of one booking per listing; the item columns are a
// snapshot taken at booking time, not a live join.
type Booking struct {
	ID            uint                `gorm:"primarykey" json:"id"`
	TransactionID string              `gorm:"uniqueIndex" json:"transaction_id"`
	BuyerEmail    string              `gorm:"index" json:"buyer_email"`
	BuyerName     string              `json:"buyer_name,omitempty"`
	ItemID        uint                `gorm:"uniqueIndex:idx_bookings_item" json:"item_id"`
	ItemType      types.ItemType      `gorm:"uniqueIndex:idx_bookings_item" json:"item_type"`
	ItemName      string              `json:"item_name"`
	ItemLocation  string              `json:"item_location,omitempty"`
	Amount        float64             `json:"amount"`
	ImageURLs     types.JSONBArray    `gorm:"type:jsonb" json:"image_urls,omitempty"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	PaymentStatus types.PaymentStatus `json:"payment_status,omitempty"`
	Status        types.BookingStatus `json:"status,omitempty"`
	BookingDate   time.Time           `json:"booking_date"`

	types.Timestamps
}
