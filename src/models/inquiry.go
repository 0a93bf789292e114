package models

import "ctoc/src/types"

type Inquiry struct {
	ID           uint                  `gorm:"primarykey" json:"id"`
	Contact      string                `json:"contact"`
	City         string                `gorm:"index" json:"city"`
	Category     types.InquiryCategory `gorm:"index" json:"category"`
	PropertyType string                `json:"property_type,omitempty"`
	CarBrand     string                `json:"car_brand,omitempty"`
	UserType     string                `json:"user_type,omitempty"`
	ContactType  string                `json:"contact_type,omitempty"`

	types.Timestamps
}
