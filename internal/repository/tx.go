package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repos bundles transaction-bound repositories. Every repository in the
// bundle shares the same underlying connection, so the multi-table cascades
// keep their atomicity across steps.
type Repos struct {
	Users        UserRepository
	Listings     ListingRepository
	Reservations ReservationRepository
	Applications HostApplicationRepository
}

// TxManager runs a function inside a single database transaction. The
// transaction commits only if fn returns nil; any error rolls back every
// step, and the connection's autocommit state is restored on every exit path.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos *Repos) error) error
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over the given DB handle.
func NewTxManager(db *gorm.DB) TxManager {
	return &txManager{db: db}
}

// WithTransaction executes fn within a database transaction, handing it
// repositories bound to that transaction.
func (m *txManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos *Repos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &Repos{
			Users:        NewUserRepository(tx),
			Listings:     NewListingRepository(tx),
			Reservations: NewReservationRepository(tx),
			Applications: NewHostApplicationRepository(tx),
		}
		return fn(ctx, repos)
	})
}
