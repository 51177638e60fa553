package repository

import (
	"context"

	"gorm.io/gorm"

	"stayhub/internal/model"
)

// ListingRepository defines listing persistence operations. Mutations that
// are owner-conditioned return the affected-row count: zero means the listing
// is absent or owned by someone else, and the caller decides which error that
// becomes.
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	FindByID(ctx context.Context, id uint) (*model.Listing, error)
	FindByHostID(ctx context.Context, hostID uint) ([]model.Listing, error)
	FindAll(ctx context.Context) ([]model.Listing, error)
	FindByStatus(ctx context.Context, status model.ListingStatus) ([]model.Listing, error)
	UpdateOwned(ctx context.Context, listing *model.Listing, ownerID uint) (int64, error)
	Update(ctx context.Context, listing *model.Listing) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status model.ListingStatus) (int64, error)
	DeleteOwned(ctx context.Context, id, ownerID uint) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	AddImage(ctx context.Context, image *model.ListingImage) error
	DeleteImages(ctx context.Context, listingID uint) error
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository.
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

// Create creates a new listing together with any attached images.
func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

// FindByID finds a listing by ID with its images.
func (r *listingRepository) FindByID(ctx context.Context, id uint) (*model.Listing, error) {
	var listing model.Listing
	if err := r.db.WithContext(ctx).Preload("Images").First(&listing, id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// FindByHostID finds all listings owned by a host, newest first.
func (r *listingRepository) FindByHostID(ctx context.Context, hostID uint) ([]model.Listing, error) {
	var listings []model.Listing
	if err := r.db.WithContext(ctx).Preload("Images").
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// FindAll finds all listings, newest first.
func (r *listingRepository) FindAll(ctx context.Context) ([]model.Listing, error) {
	var listings []model.Listing
	if err := r.db.WithContext(ctx).Preload("Images").
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// FindByStatus finds all listings with the given moderation status.
func (r *listingRepository) FindByStatus(ctx context.Context, status model.ListingStatus) ([]model.Listing, error) {
	var listings []model.Listing
	if err := r.db.WithContext(ctx).Preload("Images").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// mutableColumns holds the listing fields an owner may edit. HostID and
// Status are deliberately absent: the owner is immutable and status moves
// only through the admin path.
func mutableColumns(listing *model.Listing) map[string]interface{} {
	return map[string]interface{}{
		"title":           listing.Title,
		"description":     listing.Description,
		"address":         listing.Address,
		"city":            listing.City,
		"price_per_night": listing.PricePerNight,
		"max_guests":      listing.MaxGuests,
		"beds":            listing.Beds,
		"bathrooms":       listing.Bathrooms,
	}
}

// UpdateOwned updates a listing conditioned on id and owner.
func (r *listingRepository) UpdateOwned(ctx context.Context, listing *model.Listing, ownerID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("id = ? AND host_id = ?", listing.ID, ownerID).
		Updates(mutableColumns(listing))
	return res.RowsAffected, res.Error
}

// Update updates a listing conditioned on id only (admin path).
func (r *listingRepository) Update(ctx context.Context, listing *model.Listing) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("id = ?", listing.ID).
		Updates(mutableColumns(listing))
	return res.RowsAffected, res.Error
}

// UpdateStatus sets the moderation status of a listing.
func (r *listingRepository) UpdateStatus(ctx context.Context, id uint, status model.ListingStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

// DeleteOwned deletes a listing conditioned on id and owner.
func (r *listingRepository) DeleteOwned(ctx context.Context, id, ownerID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND host_id = ?", id, ownerID).
		Delete(&model.Listing{})
	return res.RowsAffected, res.Error
}

// Delete deletes a listing conditioned on id only (admin path).
func (r *listingRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Listing{})
	return res.RowsAffected, res.Error
}

// AddImage attaches an image to a listing.
func (r *listingRepository) AddImage(ctx context.Context, image *model.ListingImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// DeleteImages removes all images for a listing.
func (r *listingRepository) DeleteImages(ctx context.Context, listingID uint) error {
	return r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Delete(&model.ListingImage{}).Error
}
