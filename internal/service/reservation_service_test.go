package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"stayhub/internal/errors"
	"stayhub/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReservationService_CreateReservation(t *testing.T) {
	guest := model.Principal{ID: 10, Role: model.RoleGuest}
	listing := &model.Listing{
		ID:            1,
		HostID:        2,
		PricePerNight: decimal.NewFromInt(100),
		Status:        model.ListingStatusApproved,
	}
	// Confirmed stay over March 10-15; checkout day is exclusive.
	existing := []model.Reservation{
		{
			ID:        5,
			ListingID: 1,
			GuestID:   11,
			CheckIn:   date(2025, time.March, 10),
			CheckOut:  date(2025, time.March, 15),
			Status:    model.ReservationStatusConfirmed,
		},
	}

	tests := []struct {
		name          string
		checkIn       time.Time
		checkOut      time.Time
		setupMock     func(*MockReservationRepository, *MockListingRepository)
		expectedError error
		expectedPrice decimal.Decimal
	}{
		{
			name:     "free range books",
			checkIn:  date(2025, time.April, 1),
			checkOut: date(2025, time.April, 5),
			setupMock: func(mRes *MockReservationRepository, mList *MockListingRepository) {
				mList.On("FindByID", mock.Anything, uint(1)).Return(listing, nil)
				mRes.On("FindBlockingByListingID", mock.Anything, uint(1)).Return(existing, nil)
				mRes.On("Create", mock.Anything, mock.AnythingOfType("*model.Reservation")).Return(nil)
			},
			expectedPrice: decimal.NewFromInt(400),
		},
		{
			name:     "overlapping range conflicts",
			checkIn:  date(2025, time.March, 14),
			checkOut: date(2025, time.March, 20),
			setupMock: func(mRes *MockReservationRepository, mList *MockListingRepository) {
				mList.On("FindByID", mock.Anything, uint(1)).Return(listing, nil)
				mRes.On("FindBlockingByListingID", mock.Anything, uint(1)).Return(existing, nil)
			},
			expectedError: errors.ErrDateConflict,
		},
		{
			name:     "back-to-back stay on the checkout day books",
			checkIn:  date(2025, time.March, 15),
			checkOut: date(2025, time.March, 18),
			setupMock: func(mRes *MockReservationRepository, mList *MockListingRepository) {
				mList.On("FindByID", mock.Anything, uint(1)).Return(listing, nil)
				mRes.On("FindBlockingByListingID", mock.Anything, uint(1)).Return(existing, nil)
				mRes.On("Create", mock.Anything, mock.AnythingOfType("*model.Reservation")).Return(nil)
			},
			expectedPrice: decimal.NewFromInt(300),
		},
		{
			name:          "check-in after check-out rejected",
			checkIn:       date(2025, time.March, 20),
			checkOut:      date(2025, time.March, 18),
			setupMock:     func(mRes *MockReservationRepository, mList *MockListingRepository) {},
			expectedError: errors.ErrInvalidDateRange,
		},
		{
			name:          "zero-night stay rejected",
			checkIn:       date(2025, time.March, 20),
			checkOut:      date(2025, time.March, 20),
			setupMock:     func(mRes *MockReservationRepository, mList *MockListingRepository) {},
			expectedError: errors.ErrInvalidDateRange,
		},
		{
			name:     "unknown listing",
			checkIn:  date(2025, time.April, 1),
			checkOut: date(2025, time.April, 3),
			setupMock: func(mRes *MockReservationRepository, mList *MockListingRepository) {
				mList.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrListingNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRes := new(MockReservationRepository)
			mockList := new(MockListingRepository)
			tt.setupMock(mockRes, mockList)

			svc := NewReservationService(mockRes, mockList)
			created, err := svc.CreateReservation(context.Background(), &model.Reservation{
				ListingID: 1,
				CheckIn:   tt.checkIn,
				CheckOut:  tt.checkOut,
			}, guest)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, created)
				assert.Equal(t, guest.ID, created.GuestID)
				assert.Equal(t, model.ReservationStatusPending, created.Status)
				assert.True(t, tt.expectedPrice.Equal(created.TotalPrice),
					"want total %s, got %s", tt.expectedPrice, created.TotalPrice)
			}

			mockRes.AssertExpectations(t)
			mockList.AssertExpectations(t)
		})
	}
}

func TestReservationService_UpdateReservationDates(t *testing.T) {
	guest := model.Principal{ID: 10, Role: model.RoleGuest}
	listing := &model.Listing{ID: 1, HostID: 2, PricePerNight: decimal.NewFromInt(50)}

	own := func() *model.Reservation {
		return &model.Reservation{
			ID:        5,
			ListingID: 1,
			GuestID:   10,
			CheckIn:   date(2025, time.March, 10),
			CheckOut:  date(2025, time.March, 15),
			Status:    model.ReservationStatusConfirmed,
		}
	}

	t.Run("own interval does not conflict with itself", func(t *testing.T) {
		mockRes := new(MockReservationRepository)
		mockList := new(MockListingRepository)

		reservation := own()
		mockRes.On("FindByID", mock.Anything, uint(5)).Return(reservation, nil)
		// The only blocking reservation is the one being moved.
		mockRes.On("FindBlockingByListingID", mock.Anything, uint(1)).Return([]model.Reservation{*reservation}, nil)
		mockList.On("FindByID", mock.Anything, uint(1)).Return(listing, nil)
		mockRes.On("UpdateDates", mock.Anything, mock.AnythingOfType("*model.Reservation")).Return(int64(1), nil)

		svc := NewReservationService(mockRes, mockList)
		updated, err := svc.UpdateReservationDates(context.Background(), 5,
			date(2025, time.March, 12), date(2025, time.March, 16), guest)

		assert.NoError(t, err)
		assert.NotNil(t, updated)
		assert.Equal(t, date(2025, time.March, 12), updated.CheckIn)
		assert.True(t, decimal.NewFromInt(200).Equal(updated.TotalPrice))
		mockRes.AssertExpectations(t)
	})

	t.Run("another reservation still conflicts", func(t *testing.T) {
		mockRes := new(MockReservationRepository)
		mockList := new(MockListingRepository)

		reservation := own()
		other := model.Reservation{
			ID:        6,
			ListingID: 1,
			GuestID:   11,
			CheckIn:   date(2025, time.March, 18),
			CheckOut:  date(2025, time.March, 22),
			Status:    model.ReservationStatusPending,
		}
		mockRes.On("FindByID", mock.Anything, uint(5)).Return(reservation, nil)
		mockRes.On("FindBlockingByListingID", mock.Anything, uint(1)).Return([]model.Reservation{*reservation, other}, nil)

		svc := NewReservationService(mockRes, mockList)
		updated, err := svc.UpdateReservationDates(context.Background(), 5,
			date(2025, time.March, 16), date(2025, time.March, 19), guest)

		assert.Equal(t, errors.ErrDateConflict, err)
		assert.Nil(t, updated)
		mockRes.AssertExpectations(t)
	})

	t.Run("only the booking guest may move dates", func(t *testing.T) {
		mockRes := new(MockReservationRepository)
		mockList := new(MockListingRepository)

		mockRes.On("FindByID", mock.Anything, uint(5)).Return(own(), nil)

		svc := NewReservationService(mockRes, mockList)
		stranger := model.Principal{ID: 77, Role: model.RoleGuest}
		_, err := svc.UpdateReservationDates(context.Background(), 5,
			date(2025, time.April, 1), date(2025, time.April, 3), stranger)

		var denied *errors.DeniedError
		assert.ErrorAs(t, err, &denied)
		assert.Equal(t, errors.DenialNotSelf, denied.Reason)
	})

	t.Run("cancelled reservation cannot be moved", func(t *testing.T) {
		mockRes := new(MockReservationRepository)
		mockList := new(MockListingRepository)

		cancelled := own()
		cancelled.Status = model.ReservationStatusCancelled
		mockRes.On("FindByID", mock.Anything, uint(5)).Return(cancelled, nil)

		svc := NewReservationService(mockRes, mockList)
		_, err := svc.UpdateReservationDates(context.Background(), 5,
			date(2025, time.April, 1), date(2025, time.April, 3), guest)

		assert.Equal(t, errors.ErrInvalidTransition, err)
	})
}

func TestReservationService_UpdateReservationStatus(t *testing.T) {
	host := model.Principal{ID: 2, Role: model.RoleHost}
	admin := model.Principal{ID: 99, Role: model.RoleAdmin}

	reservation := func(status model.ReservationStatus) *model.Reservation {
		return &model.Reservation{ID: 5, ListingID: 1, GuestID: 10, Status: status}
	}

	tests := []struct {
		name          string
		principal     model.Principal
		from          model.ReservationStatus
		to            model.ReservationStatus
		ownerID       uint
		expectUpdate  bool
		expectedError error
		expectedDeny  errors.DenialReason
	}{
		{
			name:         "host confirms pending",
			principal:    host,
			from:         model.ReservationStatusPending,
			to:           model.ReservationStatusConfirmed,
			ownerID:      2,
			expectUpdate: true,
		},
		{
			name:         "host cancels confirmed",
			principal:    host,
			from:         model.ReservationStatusConfirmed,
			to:           model.ReservationStatusCancelled,
			ownerID:      2,
			expectUpdate: true,
		},
		{
			name:          "confirmed cannot go back to pending",
			principal:     host,
			from:          model.ReservationStatusConfirmed,
			to:            model.ReservationStatusPending,
			ownerID:       2,
			expectedError: errors.ErrInvalidTransition,
		},
		{
			name:          "cancelled is terminal",
			principal:     host,
			from:          model.ReservationStatusCancelled,
			to:            model.ReservationStatusConfirmed,
			ownerID:       2,
			expectedError: errors.ErrInvalidTransition,
		},
		{
			name:         "non-owner host denied",
			principal:    host,
			from:         model.ReservationStatusPending,
			to:           model.ReservationStatusConfirmed,
			ownerID:      3,
			expectedDeny: errors.DenialNotOwner,
		},
		{
			name:         "admin bypasses ownership",
			principal:    admin,
			from:         model.ReservationStatusPending,
			to:           model.ReservationStatusConfirmed,
			ownerID:      2,
			expectUpdate: true,
		},
		{
			name:          "unknown status rejected before any read",
			principal:     host,
			from:          model.ReservationStatusPending,
			to:            model.ReservationStatus("archived"),
			ownerID:       2,
			expectedError: errors.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRes := new(MockReservationRepository)
			mockList := new(MockListingRepository)

			if tt.to.Valid() {
				mockRes.On("FindByID", mock.Anything, uint(5)).Return(reservation(tt.from), nil)
				mockRes.On("ListingOwnerID", mock.Anything, uint(5)).Return(tt.ownerID, nil)
			}
			if tt.expectUpdate {
				mockRes.On("UpdateStatus", mock.Anything, uint(5), tt.to).Return(int64(1), nil)
			}

			svc := NewReservationService(mockRes, mockList)
			err := svc.UpdateReservationStatus(context.Background(), 5, tt.to, tt.principal)

			switch {
			case tt.expectedDeny != "":
				var denied *errors.DeniedError
				assert.ErrorAs(t, err, &denied)
				assert.Equal(t, tt.expectedDeny, denied.Reason)
			case tt.expectedError != nil:
				assert.Equal(t, tt.expectedError, err)
			default:
				assert.NoError(t, err)
			}
			mockRes.AssertExpectations(t)
		})
	}
}

func TestReservationService_CancelGuestReservation(t *testing.T) {
	guest := model.Principal{ID: 10, Role: model.RoleGuest}

	t.Run("guest soft-cancels own reservation", func(t *testing.T) {
		mockRes := new(MockReservationRepository)
		mockRes.On("FindByID", mock.Anything, uint(5)).Return(&model.Reservation{
			ID: 5, ListingID: 1, GuestID: 10, Status: model.ReservationStatusConfirmed,
		}, nil)
		mockRes.On("UpdateStatus", mock.Anything, uint(5), model.ReservationStatusCancelled).Return(int64(1), nil)

		svc := NewReservationService(mockRes, new(MockListingRepository))
		err := svc.CancelGuestReservation(context.Background(), 5, guest)

		assert.NoError(t, err)
		mockRes.AssertExpectations(t)
	})

	t.Run("second cancel fails", func(t *testing.T) {
		mockRes := new(MockReservationRepository)
		mockRes.On("FindByID", mock.Anything, uint(5)).Return(&model.Reservation{
			ID: 5, ListingID: 1, GuestID: 10, Status: model.ReservationStatusCancelled,
		}, nil)

		svc := NewReservationService(mockRes, new(MockListingRepository))
		err := svc.CancelGuestReservation(context.Background(), 5, guest)

		assert.Equal(t, errors.ErrInvalidTransition, err)
		mockRes.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin has no self bypass", func(t *testing.T) {
		mockRes := new(MockReservationRepository)
		mockRes.On("FindByID", mock.Anything, uint(5)).Return(&model.Reservation{
			ID: 5, ListingID: 1, GuestID: 10, Status: model.ReservationStatusPending,
		}, nil)

		svc := NewReservationService(mockRes, new(MockListingRepository))
		admin := model.Principal{ID: 99, Role: model.RoleAdmin}
		err := svc.CancelGuestReservation(context.Background(), 5, admin)

		var denied *errors.DeniedError
		assert.ErrorAs(t, err, &denied)
		assert.Equal(t, errors.DenialNotSelf, denied.Reason)
	})
}

func TestReservationService_CancelHostReservation(t *testing.T) {
	t.Run("listing owner hard-deletes", func(t *testing.T) {
		mockRes := new(MockReservationRepository)
		mockRes.On("FindByID", mock.Anything, uint(5)).Return(&model.Reservation{
			ID: 5, ListingID: 1, GuestID: 10, Status: model.ReservationStatusPending,
		}, nil)
		mockRes.On("ListingOwnerID", mock.Anything, uint(5)).Return(uint(2), nil)
		mockRes.On("Delete", mock.Anything, uint(5)).Return(int64(1), nil)

		svc := NewReservationService(mockRes, new(MockListingRepository))
		host := model.Principal{ID: 2, Role: model.RoleHost}
		err := svc.CancelHostReservation(context.Background(), 5, host)

		assert.NoError(t, err)
		mockRes.AssertExpectations(t)
	})

	t.Run("other host denied", func(t *testing.T) {
		mockRes := new(MockReservationRepository)
		mockRes.On("FindByID", mock.Anything, uint(5)).Return(&model.Reservation{
			ID: 5, ListingID: 1, GuestID: 10, Status: model.ReservationStatusPending,
		}, nil)
		mockRes.On("ListingOwnerID", mock.Anything, uint(5)).Return(uint(2), nil)

		svc := NewReservationService(mockRes, new(MockListingRepository))
		other := model.Principal{ID: 3, Role: model.RoleHost}
		err := svc.CancelHostReservation(context.Background(), 5, other)

		var denied *errors.DeniedError
		assert.ErrorAs(t, err, &denied)
		assert.Equal(t, errors.DenialNotOwner, denied.Reason)
		mockRes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestReservationService_DeleteReservation(t *testing.T) {
	t.Run("admin deletes", func(t *testing.T) {
		mockRes := new(MockReservationRepository)
		mockRes.On("Delete", mock.Anything, uint(5)).Return(int64(1), nil)

		svc := NewReservationService(mockRes, new(MockListingRepository))
		admin := model.Principal{ID: 99, Role: model.RoleAdmin}
		assert.NoError(t, svc.DeleteReservation(context.Background(), 5, admin))
		mockRes.AssertExpectations(t)
	})

	t.Run("host denied", func(t *testing.T) {
		mockRes := new(MockReservationRepository)

		svc := NewReservationService(mockRes, new(MockListingRepository))
		host := model.Principal{ID: 2, Role: model.RoleHost}
		err := svc.DeleteReservation(context.Background(), 5, host)

		var denied *errors.DeniedError
		assert.ErrorAs(t, err, &denied)
		assert.Equal(t, errors.DenialWrongRole, denied.Reason)
		mockRes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing reservation", func(t *testing.T) {
		mockRes := new(MockReservationRepository)
		mockRes.On("Delete", mock.Anything, uint(5)).Return(int64(0), nil)

		svc := NewReservationService(mockRes, new(MockListingRepository))
		admin := model.Principal{ID: 99, Role: model.RoleAdmin}
		err := svc.DeleteReservation(context.Background(), 5, admin)

		assert.Equal(t, errors.ErrReservationNotFound, err)
	})
}
