package service

import (
	"stayhub/internal/errors"
	"stayhub/internal/model"
)

// The authorization guard is a family of pure checks over already-fetched
// ownership data. Guards never perform I/O; callers load whatever the check
// needs first. A nil return means allowed.

// requireRole denies unless the principal holds one of the given roles.
// Admin does not bypass a role gate it is not listed in.
func requireRole(p model.Principal, roles ...model.Role) *errors.DeniedError {
	for _, role := range roles {
		if p.Role == role {
			return nil
		}
	}
	return errors.Denied(errors.DenialWrongRole)
}

// requireOwner denies unless the principal owns the resource. Admin bypasses
// ownership on this path.
func requireOwner(p model.Principal, ownerID uint) *errors.DeniedError {
	if p.IsAdmin() {
		return nil
	}
	if p.ID == ownerID {
		return nil
	}
	return errors.Denied(errors.DenialNotOwner)
}

// requireSelf denies unless the principal is the referenced user. Self-scoped
// checks carry no admin bypass; admin operations go through their own paths.
func requireSelf(p model.Principal, userID uint) *errors.DeniedError {
	if p.ID == userID {
		return nil
	}
	return errors.Denied(errors.DenialNotSelf)
}
