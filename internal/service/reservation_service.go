package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/repository"
)

// ReservationService handles reservation lifecycle operations.
type ReservationService interface {
	CreateReservation(ctx context.Context, candidate *model.Reservation, p model.Principal) (*model.Reservation, error)
	UpdateReservationDates(ctx context.Context, reservationID uint, checkIn, checkOut time.Time, p model.Principal) (*model.Reservation, error)
	UpdateReservationStatus(ctx context.Context, reservationID uint, status model.ReservationStatus, p model.Principal) error
	CancelGuestReservation(ctx context.Context, reservationID uint, p model.Principal) error
	CancelHostReservation(ctx context.Context, reservationID uint, p model.Principal) error
	DeleteReservation(ctx context.Context, reservationID uint, p model.Principal) error
	GetReservation(ctx context.Context, reservationID uint) (*model.Reservation, error)
	GetReservationsByGuest(ctx context.Context, guestID uint) ([]model.Reservation, error)
	GetReservationsByHost(ctx context.Context, hostID uint) ([]model.Reservation, error)
	GetReservationsByListing(ctx context.Context, listingID uint, p model.Principal) ([]model.Reservation, error)
	GetAllReservations(ctx context.Context, p model.Principal) ([]model.Reservation, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	listingRepo     repository.ListingRepository
}

// NewReservationService creates a new reservation service.
func NewReservationService(reservationRepo repository.ReservationRepository, listingRepo repository.ListingRepository) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		listingRepo:     listingRepo,
	}
}

// hasConflict reports whether the half-open [checkIn, checkOut) range
// overlaps any pending or confirmed reservation on the listing. A checkout
// equal to another's check-in is not a conflict: back-to-back stays are
// permitted. excludeID removes a reservation's own prior interval from the
// scan when its dates are being edited.
func (s *reservationService) hasConflict(ctx context.Context, listingID uint, checkIn, checkOut time.Time, excludeID uint) (bool, error) {
	blocking, err := s.reservationRepo.FindBlockingByListingID(ctx, listingID)
	if err != nil {
		return false, fmt.Errorf("load blocking reservations: %w", err)
	}
	for i := range blocking {
		if blocking[i].ID == excludeID {
			continue
		}
		if blocking[i].Overlaps(checkIn, checkOut) {
			return true, nil
		}
	}
	return false, nil
}

// priceFor computes the stay total from the listing's nightly price.
func priceFor(listing *model.Listing, checkIn, checkOut time.Time) decimal.Decimal {
	nights := int64(checkOut.Sub(checkIn).Hours() / 24)
	return listing.PricePerNight.Mul(decimal.NewFromInt(nights))
}

// CreateReservation books a date range on a listing for the acting guest.
// Both pending and confirmed reservations block the calendar; a pending
// reservation holds a provisional lock until the host acts.
func (s *reservationService) CreateReservation(ctx context.Context, candidate *model.Reservation, p model.Principal) (*model.Reservation, error) {
	if !candidate.CheckIn.Before(candidate.CheckOut) {
		return nil, errors.ErrInvalidDateRange
	}

	listing, err := s.listingRepo.FindByID(ctx, candidate.ListingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrListingNotFound
		}
		return nil, fmt.Errorf("load listing: %w", err)
	}

	conflict, err := s.hasConflict(ctx, candidate.ListingID, candidate.CheckIn, candidate.CheckOut, 0)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, errors.ErrDateConflict
	}

	candidate.ID = 0
	candidate.GuestID = p.ID
	candidate.Status = model.ReservationStatusPending
	candidate.TotalPrice = priceFor(listing, candidate.CheckIn, candidate.CheckOut)

	if err := s.reservationRepo.Create(ctx, candidate); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	return candidate, nil
}

// UpdateReservationDates moves a reservation to a new date range. The
// conflict scan excludes the reservation's own prior interval, otherwise
// every date edit would collide with itself.
func (s *reservationService) UpdateReservationDates(ctx context.Context, reservationID uint, checkIn, checkOut time.Time, p model.Principal) (*model.Reservation, error) {
	if !checkIn.Before(checkOut) {
		return nil, errors.ErrInvalidDateRange
	}

	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, fmt.Errorf("load reservation: %w", err)
	}

	if denied := requireSelf(p, reservation.GuestID); denied != nil {
		return nil, denied
	}
	if reservation.Status == model.ReservationStatusCancelled {
		return nil, errors.ErrInvalidTransition
	}

	conflict, err := s.hasConflict(ctx, reservation.ListingID, checkIn, checkOut, reservation.ID)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, errors.ErrDateConflict
	}

	listing, err := s.listingRepo.FindByID(ctx, reservation.ListingID)
	if err != nil {
		return nil, fmt.Errorf("load listing: %w", err)
	}

	reservation.CheckIn = checkIn
	reservation.CheckOut = checkOut
	reservation.TotalPrice = priceFor(listing, checkIn, checkOut)

	rows, err := s.reservationRepo.UpdateDates(ctx, reservation)
	if err != nil {
		return nil, fmt.Errorf("update reservation dates: %w", err)
	}
	if rows == 0 {
		return nil, errors.ErrReservationNotFound
	}
	return reservation, nil
}

// UpdateReservationStatus is the host/admin path through the status machine:
// pending -> {confirmed, cancelled}, confirmed -> {cancelled}, cancelled is
// terminal.
func (s *reservationService) UpdateReservationStatus(ctx context.Context, reservationID uint, status model.ReservationStatus, p model.Principal) error {
	if !status.Valid() {
		return errors.ErrInvalidStatus
	}

	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrReservationNotFound
		}
		return fmt.Errorf("load reservation: %w", err)
	}

	ownerID, err := s.reservationRepo.ListingOwnerID(ctx, reservationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrListingNotFound
		}
		return fmt.Errorf("resolve listing owner: %w", err)
	}

	if denied := requireOwner(p, ownerID); denied != nil {
		return denied
	}

	if !reservation.Status.CanTransitionTo(status) {
		return errors.ErrInvalidTransition
	}

	rows, err := s.reservationRepo.UpdateStatus(ctx, reservationID, status)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	if rows == 0 {
		return errors.ErrReservationNotFound
	}
	return nil
}

// CancelGuestReservation lets a guest cancel their own reservation. Guest
// cancellations are soft: the row stays, with status cancelled, so it no
// longer blocks the calendar but remains visible. Cancelling an already
// cancelled reservation fails instead of silently repeating side effects.
func (s *reservationService) CancelGuestReservation(ctx context.Context, reservationID uint, p model.Principal) error {
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrReservationNotFound
		}
		return fmt.Errorf("load reservation: %w", err)
	}

	if denied := requireSelf(p, reservation.GuestID); denied != nil {
		return denied
	}

	if !reservation.Status.CanTransitionTo(model.ReservationStatusCancelled) {
		return errors.ErrInvalidTransition
	}

	rows, err := s.reservationRepo.UpdateStatus(ctx, reservationID, model.ReservationStatusCancelled)
	if err != nil {
		return fmt.Errorf("cancel reservation: %w", err)
	}
	if rows == 0 {
		return errors.ErrReservationNotFound
	}
	return nil
}

// CancelHostReservation lets the listing's host remove a reservation on
// their property. The host path is a hard delete.
func (s *reservationService) CancelHostReservation(ctx context.Context, reservationID uint, p model.Principal) error {
	if _, err := s.reservationRepo.FindByID(ctx, reservationID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrReservationNotFound
		}
		return fmt.Errorf("load reservation: %w", err)
	}

	ownerID, err := s.reservationRepo.ListingOwnerID(ctx, reservationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrListingNotFound
		}
		return fmt.Errorf("resolve listing owner: %w", err)
	}

	if denied := requireOwner(p, ownerID); denied != nil {
		return denied
	}

	rows, err := s.reservationRepo.Delete(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if rows == 0 {
		return errors.ErrReservationNotFound
	}
	return nil
}

// DeleteReservation is the unconditional admin hard delete.
func (s *reservationService) DeleteReservation(ctx context.Context, reservationID uint, p model.Principal) error {
	if denied := requireRole(p, model.RoleAdmin); denied != nil {
		return denied
	}

	rows, err := s.reservationRepo.Delete(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if rows == 0 {
		return errors.ErrReservationNotFound
	}
	return nil
}

// GetReservation returns a reservation by id.
func (s *reservationService) GetReservation(ctx context.Context, reservationID uint) (*model.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, err
	}
	return reservation, nil
}

// GetReservationsByGuest returns a guest's reservations.
func (s *reservationService) GetReservationsByGuest(ctx context.Context, guestID uint) ([]model.Reservation, error) {
	return s.reservationRepo.FindByGuestID(ctx, guestID)
}

// GetReservationsByHost returns every reservation against the host's listings.
func (s *reservationService) GetReservationsByHost(ctx context.Context, hostID uint) ([]model.Reservation, error) {
	return s.reservationRepo.FindByHostID(ctx, hostID)
}

// GetReservationsByListing returns the reservations on a listing. Only its
// owner or an admin may see them.
func (s *reservationService) GetReservationsByListing(ctx context.Context, listingID uint, p model.Principal) ([]model.Reservation, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrListingNotFound
		}
		return nil, fmt.Errorf("load listing: %w", err)
	}

	if denied := requireOwner(p, listing.HostID); denied != nil {
		return nil, denied
	}
	return s.reservationRepo.FindByListingID(ctx, listingID)
}

// GetAllReservations returns every reservation in the system. Admin only.
func (s *reservationService) GetAllReservations(ctx context.Context, p model.Principal) ([]model.Reservation, error) {
	if denied := requireRole(p, model.RoleAdmin); denied != nil {
		return nil, denied
	}
	return s.reservationRepo.FindAll(ctx)
}
