package models

import (
	"ctoc/src/types"
	"fmt"
	"time"
)

type Vehicle struct {
	ID        uint             `gorm:"primarykey" json:"id"`
	Brand     string           `json:"brand"`
	Model     string           `json:"model"`
	Showroom  string           `json:"showroom,omitempty"`
	Location  string           `json:"location"`
	Price     float64          `json:"price"`
	ImageURLs types.JSONBArray `gorm:"type:jsonb" json:"image_urls,omitempty"`
	IsBooked  bool             `gorm:"default:false" json:"is_booked"`
	BookedBy  *string          `json:"booked_by,omitempty"`
	BookedAt  *time.Time       `json:"booked_at,omitempty"`

	types.Timestamps
}

func (v *Vehicle) ItemKey() (uint, types.ItemType) {
	return v.ID, types.ITEM_VEHICLE
}

func (v *Vehicle) Snapshot() ItemSnapshot {
	return ItemSnapshot{
		Name:      fmt.Sprintf("%s %s", v.Brand, v.Model),
		Location:  v.Location,
		Amount:    v.Price,
		ImageURLs: v.ImageURLs,
	}
}

func (v *Vehicle) Booked() bool { return v.IsBooked }

func (v *Vehicle) BookedInfo() (*string, *time.Time) { return v.BookedBy, v.BookedAt }
