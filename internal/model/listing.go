package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListingStatus represents the moderation status of a listing.
type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
)

// Valid reports whether s is one of the known listing statuses.
func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusPending, ListingStatusApproved, ListingStatusRejected:
		return true
	}
	return false
}

// Listing represents a bookable property owned by a host. HostID is immutable
// after creation; status transitions are admin-only.
type Listing struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	HostID        uint            `json:"host_id" gorm:"not null;index;<-:create"`
	Title         string          `json:"title" gorm:"size:255;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Address       string          `json:"address" gorm:"size:255"`
	City          string          `json:"city" gorm:"size:100;index"`
	PricePerNight decimal.Decimal `json:"price_per_night" gorm:"type:decimal(10,2);not null"`
	MaxGuests     int             `json:"max_guests" gorm:"not null;default:1"`
	Beds          int             `json:"beds" gorm:"not null;default:1"`
	Bathrooms     int             `json:"bathrooms" gorm:"not null;default:1"`
	Status        ListingStatus   `json:"status" gorm:"size:20;not null;default:'pending';index"`
	Images        []ListingImage  `json:"images" gorm:"foreignKey:ListingID"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ListingImage is one image URL attached to a listing. Images are owned
// exclusively by their listing and deleted with it.
type ListingImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ListingID uint      `json:"listing_id" gorm:"not null;index"`
	URL       string    `json:"url" gorm:"size:512;not null"`
	Position  int       `json:"position" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
}
