package models

import (
	"ctoc/src/types"
	"time"
)

// ItemSnapshot is the category-independent view of a listing that the booking
// path records. Whatever else a Property or Vehicle carries, this is the part
// a Booking snapshots.
type ItemSnapshot struct {
	Name      string
	Location  string
	Amount    float64
	ImageURLs types.JSONBArray
}

// Item is the common surface of the two listing categories. Reservation and
// availability logic goes through this; the category-specific columns stay on
// the concrete models.
type Item interface {
	ItemKey() (uint, types.ItemType)
	Snapshot() ItemSnapshot
	Booked() bool
	BookedInfo() (*string, *time.Time)
}
