package repository

import (
	"context"

	"gorm.io/gorm"

	"stayhub/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, id uint, role model.Role) (int64, error)
	UpdateProfile(ctx context.Context, id uint, name, email string) (int64, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateRole sets the role for a user, returning the affected-row count so
// callers can detect a missing user without a separate lookup.
func (r *userRepository) UpdateRole(ctx context.Context, id uint, role model.Role) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("role", role)
	return res.RowsAffected, res.Error
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uint, name, email string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "email": email})
	return res.RowsAffected, res.Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	return res.RowsAffected, res.Error
}
