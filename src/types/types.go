package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any
type JSONBArray []any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

// ItemType tags the two listing categories. Category-specific fields live on
// the models; everything the booking path touches is common to both.
type ItemType string

const (
	ITEM_PROPERTY ItemType = "property"
	ITEM_VEHICLE  ItemType = "vehicle"
)

func (t ItemType) Valid() bool {
	return t == ITEM_PROPERTY || t == ITEM_VEHICLE
}

type BookingStatus string

const (
	BOOKING_CONFIRMED BookingStatus = "confirmed"
)

type PaymentStatus string

const (
	PAYMENT_COMPLETED PaymentStatus = "completed"
)

type NotifyChannel string

const (
	CHANNEL_SMS      NotifyChannel = "sms"
	CHANNEL_WHATSAPP NotifyChannel = "whatsapp"
	CHANNEL_EMAIL    NotifyChannel = "email"
)

type InquiryCategory string

const (
	INQUIRY_PROPERTIES InquiryCategory = "Properties"
	INQUIRY_CARS       InquiryCategory = "Cars"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateReservationRequestBody struct {
	BuyerEmail    string   `json:"buyerEmail" binding:"required,email"`
	BuyerName     string   `json:"buyerName,omitempty"`
	ItemID        uint     `json:"itemId" binding:"required"`
	ItemType      ItemType `json:"itemType" binding:"required,itemtype"`
	Amount        float64  `json:"amount" binding:"required,gt=0"`
	PaymentMethod string   `json:"paymentMethod" binding:"required"`
}

type CreatePropertyRequestBody struct {
	Name            string  `form:"name" binding:"required"`
	Location        string  `form:"location" binding:"required"`
	Amount          float64 `form:"amount" binding:"required,gt=0"`
	ContractorName  string  `form:"contractorName,omitempty"`
	ContractorPhone string  `form:"contractorPhone,omitempty"`
	Vacancies       uint    `form:"vacancies,omitempty"`
	Discount        string  `form:"discount,omitempty"`
}

type CreateVehicleRequestBody struct {
	Brand    string  `form:"brand" binding:"required"`
	Model    string  `form:"model" binding:"required"`
	Showroom string  `form:"showroom,omitempty"`
	Location string  `form:"location" binding:"required"`
	Price    float64 `form:"price" binding:"required,gt=0"`
}

type PropertyQueryFilters struct {
	Location      string `form:"location"`
	Name          string `form:"name"`
	IncludeBooked bool   `form:"includeBooked"`
}

type VehicleQueryFilters struct {
	Location      string `form:"location"`
	Model         string `form:"model"`
	IncludeBooked bool   `form:"includeBooked"`
}

type NotifyRequestBody struct {
	To      string        `json:"to" binding:"required"`
	Text    string        `json:"text" binding:"required"`
	Channel NotifyChannel `json:"channel" binding:"required,channel"`
}

type RegisterUserRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type CreateInquiryRequestBody struct {
	Contact      string          `json:"contact" binding:"required"`
	City         string          `json:"city" binding:"required"`
	Category     InquiryCategory `json:"category" binding:"required"`
	PropertyType string          `json:"propertyType,omitempty"`
	CarBrand     string          `json:"carBrand,omitempty"`
	UserType     string          `json:"userType,omitempty"`
	ContactType  string          `json:"contactType,omitempty"`
}

// BookingConfirmedEvent is the payload published to the BookingsConfirmed
// topic after a reservation commits.
type BookingConfirmedEvent struct {
	BookingID     uint     `json:"id"`
	TransactionID string   `json:"transaction_id"`
	BuyerEmail    string   `json:"buyer_email"`
	BuyerName     string   `json:"buyer_name,omitempty"`
	ItemID        uint     `json:"item_id"`
	ItemType      ItemType `json:"item_type"`
	ItemName      string   `json:"item_name"`
	ItemLocation  string   `json:"item_location,omitempty"`
	Amount        float64  `json:"amount"`
}

type InquiryStats struct {
	TotalInquiries   int                     `json:"totalInquiries"`
	CategoryStats    map[InquiryCategory]int `json:"categoryStats"`
	CityStats        map[string]int          `json:"cityStats"`
	ContactTypeStats map[string]int          `json:"contactTypeStats"`
}
