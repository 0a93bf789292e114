package models

import (
	"ctoc/src/types"
	"time"
)

type Property struct {
	ID              uint             `gorm:"primarykey" json:"id"`
	Name            string           `json:"name"`
	Location        string           `json:"location"`
	Amount          float64          `json:"amount"`
	ContractorName  string           `json:"contractor_name,omitempty"`
	ContractorPhone string           `json:"contractor_phone,omitempty"`
	Vacancies       uint             `json:"vacancies,omitempty"`
	Discount        string           `json:"discount,omitempty"`
	ImageURLs       types.JSONBArray `gorm:"type:jsonb" json:"image_urls,omitempty"`
	IsBooked        bool             `gorm:"default:false" json:"is_booked"`
	BookedBy        *string          `json:"booked_by,omitempty"`
	BookedAt        *time.Time       `json:"booked_at,omitempty"`

	types.Timestamps
}

func (p *Property) ItemKey() (uint, types.ItemType) {
	return p.ID, types.ITEM_PROPERTY
}

func (p *Property) Snapshot() ItemSnapshot {
	return ItemSnapshot{
		Name:      p.Name,
		Location:  p.Location,
		Amount:    p.Amount,
		ImageURLs: p.ImageURLs,
	}
}

func (p *Property) Booked() bool { return p.IsBooked }

func (p *Property) BookedInfo() (*string, *time.Time) { return p.BookedBy, p.BookedAt }
