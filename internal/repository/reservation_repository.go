package repository

import (
	"context"

	"gorm.io/gorm"

	"stayhub/internal/model"
)

// ReservationRepository defines reservation persistence operations.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id uint) (*model.Reservation, error)
	FindByListingID(ctx context.Context, listingID uint) ([]model.Reservation, error)
	FindByGuestID(ctx context.Context, guestID uint) ([]model.Reservation, error)
	FindByHostID(ctx context.Context, hostID uint) ([]model.Reservation, error)
	FindAll(ctx context.Context) ([]model.Reservation, error)
	FindBlockingByListingID(ctx context.Context, listingID uint) ([]model.Reservation, error)
	CountBlockingByListingID(ctx context.Context, listingID uint) (int64, error)
	ListingOwnerID(ctx context.Context, reservationID uint) (uint, error)
	UpdateStatus(ctx context.Context, id uint, status model.ReservationStatus) (int64, error)
	UpdateDates(ctx context.Context, reservation *model.Reservation) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	DeleteByGuestID(ctx context.Context, guestID uint) error
	DeleteCancelledByListingID(ctx context.Context, listingID uint) error
}

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository.
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// Create creates a new reservation record.
func (r *reservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// FindByID finds a reservation by ID.
func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := r.db.WithContext(ctx).First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindByListingID finds all reservations on a listing, latest check-in first.
func (r *reservationRepository) FindByListingID(ctx context.Context, listingID uint) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("check_in DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindByGuestID finds all reservations made by a guest.
func (r *reservationRepository) FindByGuestID(ctx context.Context, guestID uint) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("check_in DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindByHostID finds all reservations against listings owned by a host.
func (r *reservationRepository) FindByHostID(ctx context.Context, hostID uint) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Joins("JOIN listings ON listings.id = reservations.listing_id").
		Where("listings.host_id = ?", hostID).
		Order("reservations.check_in DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindAll finds all reservations (admin).
func (r *reservationRepository) FindAll(ctx context.Context) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindBlockingByListingID finds the reservations that hold the calendar for
// a listing: pending and confirmed. Cancelled reservations never block.
func (r *reservationRepository) FindBlockingByListingID(ctx context.Context, listingID uint) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Where("listing_id = ? AND status IN ?", listingID,
			[]model.ReservationStatus{model.ReservationStatusPending, model.ReservationStatusConfirmed}).
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// CountBlockingByListingID counts pending and confirmed reservations on a listing.
func (r *reservationRepository) CountBlockingByListingID(ctx context.Context, listingID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Reservation{}).
		Where("listing_id = ? AND status IN ?", listingID,
			[]model.ReservationStatus{model.ReservationStatusPending, model.ReservationStatusConfirmed}).
		Count(&count).Error
	return count, err
}

// ListingOwnerID resolves the host who owns the listing a reservation refers to.
func (r *reservationRepository) ListingOwnerID(ctx context.Context, reservationID uint) (uint, error) {
	var ownerID uint
	err := r.db.WithContext(ctx).Model(&model.Reservation{}).
		Select("listings.host_id").
		Joins("JOIN listings ON listings.id = reservations.listing_id").
		Where("reservations.id = ?", reservationID).
		Take(&ownerID).Error
	if err != nil {
		return 0, err
	}
	return ownerID, nil
}

// UpdateStatus sets the lifecycle status of a reservation.
func (r *reservationRepository) UpdateStatus(ctx context.Context, id uint, status model.ReservationStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Reservation{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

// UpdateDates rewrites a reservation's date range and recomputed price.
func (r *reservationRepository) UpdateDates(ctx context.Context, reservation *model.Reservation) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Reservation{}).
		Where("id = ?", reservation.ID).
		Updates(map[string]interface{}{
			"check_in":    reservation.CheckIn,
			"check_out":   reservation.CheckOut,
			"total_price": reservation.TotalPrice,
		})
	return res.RowsAffected, res.Error
}

// Delete hard-deletes a reservation.
func (r *reservationRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Reservation{})
	return res.RowsAffected, res.Error
}

// DeleteByGuestID hard-deletes every reservation a guest has made,
// regardless of status. Used only by the ban cascade.
func (r *reservationRepository) DeleteByGuestID(ctx context.Context, guestID uint) error {
	return r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Delete(&model.Reservation{}).Error
}

// DeleteCancelledByListingID removes the terminal cancelled rows that would
// otherwise block a listing delete through referential constraints.
func (r *reservationRepository) DeleteCancelledByListingID(ctx context.Context, listingID uint) error {
	return r.db.WithContext(ctx).
		Where("listing_id = ? AND status = ?", listingID, model.ReservationStatusCancelled).
		Delete(&model.Reservation{}).Error
}
