package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stayhub/internal/cache"
	"stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes user profile and administration operations.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context, p model.Principal) ([]model.User, error)
	UpdateProfile(ctx context.Context, userID uint, name, email string, p model.Principal) (*model.User, error)
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string, p model.Principal) error
	UpdateRole(ctx context.Context, userID uint, role model.Role, p model.Principal) (*model.User, error)
	BanUser(ctx context.Context, userID uint, p model.Principal) error
}

type userService struct {
	userRepo repository.UserRepository
	tx       repository.TxManager
	cache    *cache.Client
}

// NewUserService builds a UserService with repositories and cache.
func NewUserService(userRepo repository.UserRepository, tx repository.TxManager, cache *cache.Client) UserService {
	return &userService{userRepo: userRepo, tx: tx, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// ListUsers returns every user. Admin only.
func (s *userService) ListUsers(ctx context.Context, p model.Principal) ([]model.User, error) {
	if denied := requireRole(p, model.RoleAdmin); denied != nil {
		return nil, denied
	}
	return s.userRepo.List(ctx)
}

// UpdateProfile changes a user's name and email. Self-scoped: no admin bypass.
func (s *userService) UpdateProfile(ctx context.Context, userID uint, name, email string, p model.Principal) (*model.User, error) {
	if denied := requireSelf(p, userID); denied != nil {
		return nil, denied
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil && existing.ID != userID {
		return nil, errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	rows, err := s.userRepo.UpdateProfile(ctx, userID, name, email)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if rows == 0 {
		return nil, errors.ErrUserNotFound
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return s.userRepo.FindByID(ctx, userID)
}

// ChangePassword verifies the current password before storing the new hash.
// Self-scoped: no admin bypass.
func (s *userService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string, p model.Principal) error {
	if denied := requireSelf(p, userID); denied != nil {
		return denied
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.userRepo.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// UpdateRole sets a user's role. Admin only; the role must come from the
// closed enumeration and banned is not assignable here (use BanUser).
func (s *userService) UpdateRole(ctx context.Context, userID uint, role model.Role, p model.Principal) (*model.User, error) {
	if denied := requireRole(p, model.RoleAdmin); denied != nil {
		return nil, denied
	}
	if !role.Valid() || role == model.RoleBanned {
		return nil, errors.ErrInvalidRole
	}

	rows, err := s.userRepo.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	if rows == 0 {
		return nil, errors.ErrUserNotFound
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return s.userRepo.FindByID(ctx, userID)
}

// BanUser removes everything a user has touched and locks the account, as
// one atomic unit: their reservations as a guest go unconditionally, each
// listing they own is cascaded (cancelled reservations, images, listing),
// and the role moves to the terminal banned value. A partially-cleaned user
// is worse than refusing the ban, so any failure rolls the whole thing back.
func (s *userService) BanUser(ctx context.Context, userID uint, p model.Principal) error {
	if denied := requireRole(p, model.RoleAdmin); denied != nil {
		return denied
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context, repos *repository.Repos) error {
		if err := repos.Reservations.DeleteByGuestID(ctx, userID); err != nil {
			return fmt.Errorf("delete guest reservations: %w", err)
		}

		listings, err := repos.Listings.FindByHostID(ctx, userID)
		if err != nil {
			return fmt.Errorf("load owned listings: %w", err)
		}
		for i := range listings {
			if err := repos.Reservations.DeleteCancelledByListingID(ctx, listings[i].ID); err != nil {
				return fmt.Errorf("delete cancelled reservations: %w", err)
			}
			if err := repos.Listings.DeleteImages(ctx, listings[i].ID); err != nil {
				return fmt.Errorf("delete listing images: %w", err)
			}
			if _, err := repos.Listings.Delete(ctx, listings[i].ID); err != nil {
				return fmt.Errorf("delete listing: %w", err)
			}
		}

		rows, err := repos.Users.UpdateRole(ctx, userID, model.RoleBanned)
		if err != nil {
			return fmt.Errorf("set banned role: %w", err)
		}
		if rows == 0 {
			return errors.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return nil
}
