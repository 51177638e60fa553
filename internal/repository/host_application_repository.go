package repository

import (
	"context"

	"gorm.io/gorm"

	"stayhub/internal/model"
)

// HostApplicationRepository defines host application persistence operations.
type HostApplicationRepository interface {
	Create(ctx context.Context, application *model.HostApplication) error
	FindByID(ctx context.Context, id uint) (*model.HostApplication, error)
	FindByUserID(ctx context.Context, userID uint) (*model.HostApplication, error)
	FindAll(ctx context.Context) ([]model.HostApplication, error)
	FindByStatus(ctx context.Context, status model.ApplicationStatus) ([]model.HostApplication, error)
	UpdateStatus(ctx context.Context, id uint, status model.ApplicationStatus, notes string) (int64, error)
}

type hostApplicationRepository struct {
	db *gorm.DB
}

// NewHostApplicationRepository creates a new host application repository.
func NewHostApplicationRepository(db *gorm.DB) HostApplicationRepository {
	return &hostApplicationRepository{db: db}
}

func (r *hostApplicationRepository) Create(ctx context.Context, application *model.HostApplication) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *hostApplicationRepository) FindByID(ctx context.Context, id uint) (*model.HostApplication, error) {
	var application model.HostApplication
	if err := r.db.WithContext(ctx).First(&application, id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *hostApplicationRepository) FindByUserID(ctx context.Context, userID uint) (*model.HostApplication, error) {
	var application model.HostApplication
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *hostApplicationRepository) FindAll(ctx context.Context) ([]model.HostApplication, error) {
	var applications []model.HostApplication
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *hostApplicationRepository) FindByStatus(ctx context.Context, status model.ApplicationStatus) ([]model.HostApplication, error) {
	var applications []model.HostApplication
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *hostApplicationRepository) UpdateStatus(ctx context.Context, id uint, status model.ApplicationStatus, notes string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.HostApplication{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "admin_notes": notes})
	return res.RowsAffected, res.Error
}
