package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stayhub/internal/errors"
	"stayhub/internal/model"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name      string
		principal model.Principal
		roles     []model.Role
		wantDeny  bool
	}{
		{
			name:      "role listed",
			principal: model.Principal{ID: 1, Role: model.RoleHost},
			roles:     []model.Role{model.RoleHost, model.RoleAdmin},
			wantDeny:  false,
		},
		{
			name:      "role not listed",
			principal: model.Principal{ID: 1, Role: model.RoleGuest},
			roles:     []model.Role{model.RoleHost},
			wantDeny:  true,
		},
		{
			name:      "admin does not bypass an unlisted role gate",
			principal: model.Principal{ID: 1, Role: model.RoleAdmin},
			roles:     []model.Role{model.RoleHost},
			wantDeny:  true,
		},
		{
			name:      "banned holds no role",
			principal: model.Principal{ID: 1, Role: model.RoleBanned},
			roles:     []model.Role{model.RoleGuest, model.RoleHost},
			wantDeny:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			denied := requireRole(tt.principal, tt.roles...)
			if tt.wantDeny {
				assert.NotNil(t, denied)
				assert.Equal(t, errors.DenialWrongRole, denied.Reason)
			} else {
				assert.Nil(t, denied)
			}
		})
	}
}

func TestRequireOwner(t *testing.T) {
	tests := []struct {
		name      string
		principal model.Principal
		ownerID   uint
		wantDeny  bool
	}{
		{
			name:      "owner allowed",
			principal: model.Principal{ID: 7, Role: model.RoleHost},
			ownerID:   7,
			wantDeny:  false,
		},
		{
			name:      "non-owner denied",
			principal: model.Principal{ID: 8, Role: model.RoleHost},
			ownerID:   7,
			wantDeny:  true,
		},
		{
			name:      "admin bypasses ownership",
			principal: model.Principal{ID: 99, Role: model.RoleAdmin},
			ownerID:   7,
			wantDeny:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			denied := requireOwner(tt.principal, tt.ownerID)
			if tt.wantDeny {
				assert.NotNil(t, denied)
				assert.Equal(t, errors.DenialNotOwner, denied.Reason)
			} else {
				assert.Nil(t, denied)
			}
		})
	}
}

func TestRequireSelf(t *testing.T) {
	tests := []struct {
		name      string
		principal model.Principal
		userID    uint
		wantDeny  bool
	}{
		{
			name:      "self allowed",
			principal: model.Principal{ID: 3, Role: model.RoleGuest},
			userID:    3,
			wantDeny:  false,
		},
		{
			name:      "other user denied",
			principal: model.Principal{ID: 3, Role: model.RoleGuest},
			userID:    4,
			wantDeny:  true,
		},
		{
			name:      "admin gets no bypass on self-scoped checks",
			principal: model.Principal{ID: 99, Role: model.RoleAdmin},
			userID:    3,
			wantDeny:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			denied := requireSelf(tt.principal, tt.userID)
			if tt.wantDeny {
				assert.NotNil(t, denied)
				assert.Equal(t, errors.DenialNotSelf, denied.Reason)
			} else {
				assert.Nil(t, denied)
			}
		})
	}
}
