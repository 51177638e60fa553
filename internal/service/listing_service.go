package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"stayhub/internal/cache"
	"stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/repository"
)

const listingCacheTTL = 5 * time.Minute

// ListingService handles listing lifecycle operations.
type ListingService interface {
	CreateListing(ctx context.Context, listing *model.Listing, p model.Principal) (*model.Listing, error)
	UpdateListing(ctx context.Context, listing *model.Listing, p model.Principal) (*model.Listing, error)
	DeleteListing(ctx context.Context, listingID uint, p model.Principal) error
	UpdateListingStatus(ctx context.Context, listingID uint, status model.ListingStatus, p model.Principal) error
	AddListingImage(ctx context.Context, listingID uint, url string, p model.Principal) error
	GetListing(ctx context.Context, listingID uint) (*model.Listing, error)
	GetListingsByHost(ctx context.Context, hostID uint) ([]model.Listing, error)
	GetApprovedListings(ctx context.Context) ([]model.Listing, error)
	GetAllListings(ctx context.Context, p model.Principal) ([]model.Listing, error)
}

type listingService struct {
	listingRepo repository.ListingRepository
	tx          repository.TxManager
	cache       *cache.Client
}

// NewListingService creates a new listing service.
func NewListingService(listingRepo repository.ListingRepository, tx repository.TxManager, cache *cache.Client) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		tx:          tx,
		cache:       cache,
	}
}

func (s *listingService) cacheKey(id uint) string {
	return fmt.Sprintf("listing:%d", id)
}

// CreateListing creates a listing for the acting host. New listings always
// start pending; only an admin action moves them out of it.
func (s *listingService) CreateListing(ctx context.Context, listing *model.Listing, p model.Principal) (*model.Listing, error) {
	if denied := requireRole(p, model.RoleHost, model.RoleAdmin); denied != nil {
		return nil, denied
	}

	listing.ID = 0
	listing.HostID = p.ID
	listing.Status = model.ListingStatusPending

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return listing, nil
}

// UpdateListing updates a listing's mutable fields. The update statement is
// conditioned on the owner as well, so the ownership check holds even if the
// row changed hands between the read and the write.
func (s *listingService) UpdateListing(ctx context.Context, listing *model.Listing, p model.Principal) (*model.Listing, error) {
	existing, err := s.listingRepo.FindByID(ctx, listing.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrListingNotFound
		}
		return nil, fmt.Errorf("load listing: %w", err)
	}

	if denied := requireOwner(p, existing.HostID); denied != nil {
		return nil, denied
	}

	var rows int64
	if p.IsAdmin() {
		rows, err = s.listingRepo.Update(ctx, listing)
	} else {
		rows, err = s.listingRepo.UpdateOwned(ctx, listing, p.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	if rows == 0 {
		return nil, errors.ErrNotFoundOrNotOwner
	}

	_ = s.cache.Delete(ctx, s.cacheKey(listing.ID))
	return s.listingRepo.FindByID(ctx, listing.ID)
}

// DeleteListing removes a listing and everything that references it as one
// atomic unit. Deletion is categorically refused while any pending or
// confirmed reservation exists; cancelled reservations and images are swept
// first so referential constraints cannot block the final delete.
func (s *listingService) DeleteListing(ctx context.Context, listingID uint, p model.Principal) error {
	existing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrListingNotFound
		}
		return fmt.Errorf("load listing: %w", err)
	}

	if denied := requireOwner(p, existing.HostID); denied != nil {
		return denied
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, repos *repository.Repos) error {
		active, err := repos.Reservations.CountBlockingByListingID(ctx, listingID)
		if err != nil {
			return fmt.Errorf("count active reservations: %w", err)
		}
		if active > 0 {
			return errors.ErrActiveReservations
		}

		if err := repos.Reservations.DeleteCancelledByListingID(ctx, listingID); err != nil {
			return fmt.Errorf("delete cancelled reservations: %w", err)
		}

		if err := repos.Listings.DeleteImages(ctx, listingID); err != nil {
			return fmt.Errorf("delete listing images: %w", err)
		}

		// Ownership re-checked at the statement level, not just above.
		var rows int64
		if p.IsAdmin() {
			rows, err = repos.Listings.Delete(ctx, listingID)
		} else {
			rows, err = repos.Listings.DeleteOwned(ctx, listingID, p.ID)
		}
		if err != nil {
			return fmt.Errorf("delete listing: %w", err)
		}
		if rows == 0 {
			return errors.ErrNotFoundOrNotOwner
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(listingID))
	return nil
}

// UpdateListingStatus moves a listing through moderation. Admin only.
func (s *listingService) UpdateListingStatus(ctx context.Context, listingID uint, status model.ListingStatus, p model.Principal) error {
	if denied := requireRole(p, model.RoleAdmin); denied != nil {
		return denied
	}
	if !status.Valid() {
		return errors.ErrInvalidStatus
	}

	rows, err := s.listingRepo.UpdateStatus(ctx, listingID, status)
	if err != nil {
		return fmt.Errorf("update listing status: %w", err)
	}
	if rows == 0 {
		return errors.ErrListingNotFound
	}

	_ = s.cache.Delete(ctx, s.cacheKey(listingID))
	return nil
}

// AddListingImage attaches an image URL to a listing the principal owns.
func (s *listingService) AddListingImage(ctx context.Context, listingID uint, url string, p model.Principal) error {
	existing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrListingNotFound
		}
		return fmt.Errorf("load listing: %w", err)
	}

	if denied := requireOwner(p, existing.HostID); denied != nil {
		return denied
	}

	image := &model.ListingImage{
		ListingID: listingID,
		URL:       url,
		Position:  len(existing.Images),
	}
	if err := s.listingRepo.AddImage(ctx, image); err != nil {
		return fmt.Errorf("add listing image: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(listingID))
	return nil
}

// GetListing returns a listing with its images, served from cache when warm.
func (s *listingService) GetListing(ctx context.Context, listingID uint) (*model.Listing, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(listingID)); data != nil {
		var cached model.Listing
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrListingNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(listing); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(listingID), payload, listingCacheTTL)
	}
	return listing, nil
}

// GetListingsByHost returns all listings owned by a host.
func (s *listingService) GetListingsByHost(ctx context.Context, hostID uint) ([]model.Listing, error) {
	return s.listingRepo.FindByHostID(ctx, hostID)
}

// GetApprovedListings returns the public catalog.
func (s *listingService) GetApprovedListings(ctx context.Context) ([]model.Listing, error) {
	return s.listingRepo.FindByStatus(ctx, model.ListingStatusApproved)
}

// GetAllListings returns every listing regardless of status. Admin only.
func (s *listingService) GetAllListings(ctx context.Context, p model.Principal) ([]model.Listing, error) {
	if denied := requireRole(p, model.RoleAdmin); denied != nil {
		return nil, denied
	}
	return s.listingRepo.FindAll(ctx)
}
