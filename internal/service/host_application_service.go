package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/repository"
)

// HostApplicationService handles the become-a-host workflow.
type HostApplicationService interface {
	SubmitApplication(ctx context.Context, about string, p model.Principal) (*model.HostApplication, error)
	GetApplication(ctx context.Context, id uint, p model.Principal) (*model.HostApplication, error)
	GetOwnApplication(ctx context.Context, p model.Principal) (*model.HostApplication, error)
	ListApplications(ctx context.Context, status model.ApplicationStatus, p model.Principal) ([]model.HostApplication, error)
	ApproveApplication(ctx context.Context, id uint, notes string, p model.Principal) error
	RejectApplication(ctx context.Context, id uint, notes string, p model.Principal) error
}

type hostApplicationService struct {
	applicationRepo repository.HostApplicationRepository
	userRepo        repository.UserRepository
	tx              repository.TxManager
}

// NewHostApplicationService creates a new host application service.
func NewHostApplicationService(applicationRepo repository.HostApplicationRepository, userRepo repository.UserRepository, tx repository.TxManager) HostApplicationService {
	return &hostApplicationService{
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		tx:              tx,
	}
}

// SubmitApplication files a host application for the acting user. One
// application per user; hosts cannot re-apply.
func (s *hostApplicationService) SubmitApplication(ctx context.Context, about string, p model.Principal) (*model.HostApplication, error) {
	if p.Role == model.RoleHost {
		return nil, errors.ErrAlreadyHost
	}

	existing, err := s.applicationRepo.FindByUserID(ctx, p.ID)
	if err == nil && existing != nil {
		return nil, errors.ErrApplicationExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check existing application: %w", err)
	}

	application := &model.HostApplication{
		UserID: p.ID,
		About:  about,
		Status: model.ApplicationStatusPending,
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return application, nil
}

// GetApplication returns an application by id. The applicant sees their own;
// admins see any.
func (s *hostApplicationService) GetApplication(ctx context.Context, id uint, p model.Principal) (*model.HostApplication, error) {
	application, err := s.applicationRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("load application: %w", err)
	}

	if denied := requireOwner(p, application.UserID); denied != nil {
		return nil, denied
	}
	return application, nil
}

// GetOwnApplication returns the acting user's application, if any.
func (s *hostApplicationService) GetOwnApplication(ctx context.Context, p model.Principal) (*model.HostApplication, error) {
	application, err := s.applicationRepo.FindByUserID(ctx, p.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("load application: %w", err)
	}
	return application, nil
}

// ListApplications returns applications, optionally filtered by status. Admin only.
func (s *hostApplicationService) ListApplications(ctx context.Context, status model.ApplicationStatus, p model.Principal) ([]model.HostApplication, error) {
	if denied := requireRole(p, model.RoleAdmin); denied != nil {
		return nil, denied
	}
	if status == "" {
		return s.applicationRepo.FindAll(ctx)
	}
	if !status.Valid() {
		return nil, errors.ErrInvalidStatus
	}
	return s.applicationRepo.FindByStatus(ctx, status)
}

// ApproveApplication marks the application approved and promotes the
// applicant to host in one transaction. An approval is never considered
// successful unless the role change lands too; if either write fails, both
// roll back.
func (s *hostApplicationService) ApproveApplication(ctx context.Context, id uint, notes string, p model.Principal) error {
	if denied := requireRole(p, model.RoleAdmin); denied != nil {
		return denied
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context, repos *repository.Repos) error {
		application, err := repos.Applications.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrApplicationNotFound
			}
			return fmt.Errorf("load application: %w", err)
		}

		if application.Status != model.ApplicationStatusPending {
			return errors.ErrInvalidTransition
		}

		rows, err := repos.Applications.UpdateStatus(ctx, id, model.ApplicationStatusApproved, notes)
		if err != nil {
			return fmt.Errorf("update application status: %w", err)
		}
		if rows == 0 {
			return errors.ErrApplicationNotFound
		}

		rows, err = repos.Users.UpdateRole(ctx, application.UserID, model.RoleHost)
		if err != nil {
			return fmt.Errorf("promote user to host: %w", err)
		}
		if rows == 0 {
			return errors.ErrUserNotFound
		}
		return nil
	})
}

// RejectApplication marks the application rejected. Admin only.
func (s *hostApplicationService) RejectApplication(ctx context.Context, id uint, notes string, p model.Principal) error {
	if denied := requireRole(p, model.RoleAdmin); denied != nil {
		return denied
	}

	application, err := s.applicationRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrApplicationNotFound
		}
		return fmt.Errorf("load application: %w", err)
	}
	if application.Status != model.ApplicationStatusPending {
		return errors.ErrInvalidTransition
	}

	rows, err := s.applicationRepo.UpdateStatus(ctx, id, model.ApplicationStatusRejected, notes)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if rows == 0 {
		return errors.ErrApplicationNotFound
	}
	return nil
}
