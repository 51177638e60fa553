package model

import "time"

// ApplicationStatus represents the review status of a host application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the known application statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// HostApplication is a guest's request to become a host. Approval promotes
// the referenced user to the host role in the same transaction that marks the
// application approved; neither change is visible without the other.
type HostApplication struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	UserID     uint              `json:"user_id" gorm:"not null;uniqueIndex"`
	About      string            `json:"about" gorm:"type:text"`
	Status     ApplicationStatus `json:"status" gorm:"size:20;not null;default:'pending';index"`
	AdminNotes string            `json:"admin_notes,omitempty" gorm:"type:text"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
