package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus represents the lifecycle status of a reservation.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Valid reports whether s is one of the known reservation statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled:
		return true
	}
	return false
}

// Blocks reports whether a reservation in this status holds the calendar:
// pending and confirmed reservations block new bookings, cancelled never do.
func (s ReservationStatus) Blocks() bool {
	return s == ReservationStatusPending || s == ReservationStatusConfirmed
}

// CanTransitionTo reports whether the status machine permits moving from s to
// next: pending -> {confirmed, cancelled}, confirmed -> {cancelled},
// cancelled is terminal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case ReservationStatusPending:
		return next == ReservationStatusConfirmed || next == ReservationStatusCancelled
	case ReservationStatusConfirmed:
		return next == ReservationStatusCancelled
	}
	return false
}

// Reservation is a guest's claim on a listing for a date range. CheckOut is
// an exclusive upper bound, so back-to-back stays share a boundary date
// without conflicting.
type Reservation struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	ListingID  uint              `json:"listing_id" gorm:"not null;index"`
	GuestID    uint              `json:"guest_id" gorm:"not null;index"`
	CheckIn    time.Time         `json:"check_in" gorm:"type:date;not null"`
	CheckOut   time.Time         `json:"check_out" gorm:"type:date;not null"`
	TotalPrice decimal.Decimal   `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Status     ReservationStatus `json:"status" gorm:"size:20;not null;default:'pending';index"`
	GuestPhone string            `json:"guest_phone,omitempty" gorm:"size:50"`
	GuestNotes string            `json:"guest_notes,omitempty" gorm:"type:text"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	// Relations
	Listing Listing `json:"-" gorm:"foreignKey:ListingID"`
}

// Overlaps reports whether the reservation's [CheckIn, CheckOut) interval
// shares at least one night with [checkIn, checkOut).
func (r *Reservation) Overlaps(checkIn, checkOut time.Time) bool {
	return r.CheckIn.Before(checkOut) && r.CheckOut.After(checkIn)
}

// Nights returns the number of nights covered by the reservation.
func (r *Reservation) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}
