package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stayhub/internal/model"
	"stayhub/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uint, role model.Role) (int64, error) {
	args := m.Called(ctx, id, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uint, name, email string) (int64, error) {
	args := m.Called(ctx, id, name, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) (int64, error) {
	args := m.Called(ctx, id, passwordHash)
	return args.Get(0).(int64), args.Error(1)
}

// MockListingRepository is a mock implementation of ListingRepository.
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *model.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uint) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByHostID(ctx context.Context, hostID uint) ([]model.Listing, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MockListingRepository) FindAll(ctx context.Context) ([]model.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByStatus(ctx context.Context, status model.ListingStatus) ([]model.Listing, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MockListingRepository) UpdateOwned(ctx context.Context, listing *model.Listing, ownerID uint) (int64, error) {
	args := m.Called(ctx, listing, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) Update(ctx context.Context, listing *model.Listing) (int64, error) {
	args := m.Called(ctx, listing)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) UpdateStatus(ctx context.Context, id uint, status model.ListingStatus) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) DeleteOwned(ctx context.Context, id, ownerID uint) (int64, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) AddImage(ctx context.Context, image *model.ListingImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockListingRepository) DeleteImages(ctx context.Context, listingID uint) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

// MockReservationRepository is a mock implementation of ReservationRepository.
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) FindByID(ctx context.Context, id uint) (*model.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindByListingID(ctx context.Context, listingID uint) ([]model.Reservation, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindByGuestID(ctx context.Context, guestID uint) ([]model.Reservation, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindByHostID(ctx context.Context, hostID uint) ([]model.Reservation, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindAll(ctx context.Context) ([]model.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindBlockingByListingID(ctx context.Context, listingID uint) ([]model.Reservation, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) CountBlockingByListingID(ctx context.Context, listingID uint) (int64, error) {
	args := m.Called(ctx, listingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationRepository) ListingOwnerID(ctx context.Context, reservationID uint) (uint, error) {
	args := m.Called(ctx, reservationID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, id uint, status model.ReservationStatus) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationRepository) UpdateDates(ctx context.Context, reservation *model.Reservation) (int64, error) {
	args := m.Called(ctx, reservation)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationRepository) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationRepository) DeleteByGuestID(ctx context.Context, guestID uint) error {
	args := m.Called(ctx, guestID)
	return args.Error(0)
}

func (m *MockReservationRepository) DeleteCancelledByListingID(ctx context.Context, listingID uint) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

// MockHostApplicationRepository is a mock implementation of HostApplicationRepository.
type MockHostApplicationRepository struct {
	mock.Mock
}

func (m *MockHostApplicationRepository) Create(ctx context.Context, application *model.HostApplication) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

func (m *MockHostApplicationRepository) FindByID(ctx context.Context, id uint) (*model.HostApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HostApplication), args.Error(1)
}

func (m *MockHostApplicationRepository) FindByUserID(ctx context.Context, userID uint) (*model.HostApplication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HostApplication), args.Error(1)
}

func (m *MockHostApplicationRepository) FindAll(ctx context.Context) ([]model.HostApplication, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HostApplication), args.Error(1)
}

func (m *MockHostApplicationRepository) FindByStatus(ctx context.Context, status model.ApplicationStatus) ([]model.HostApplication, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HostApplication), args.Error(1)
}

func (m *MockHostApplicationRepository) UpdateStatus(ctx context.Context, id uint, status model.ApplicationStatus, notes string) (int64, error) {
	args := m.Called(ctx, id, status, notes)
	return args.Get(0).(int64), args.Error(1)
}

// fakeTxManager runs the transaction body directly over a fixed repo bundle.
// An error from the body surfaces unchanged, which is what the real manager
// does after rolling back, so atomicity tests assert on which repo calls
// happened before the failure.
type fakeTxManager struct {
	repos *repository.Repos
}

func (f *fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos *repository.Repos) error) error {
	return fn(ctx, f.repos)
}
