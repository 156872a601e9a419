package services

import (
	"errors"
	"fmt"

	"github.com/groupshare/backend/internal/models"
)

// ErrUnknownRole means a stored role fell outside the closed set. The
// derivation fails closed: an unrecognized role never grants anything.
var ErrUnknownRole = errors.New("unknown membership role")

type PermissionSet struct {
	CanInvite      bool `json:"canInvite"`
	CanLeave       bool `json:"canLeave"`
	CanDeleteGroup bool `json:"canDeleteGroup"`
}

// DerivePermissions maps a role to its capability set. Pure, no I/O.
// Leaving is a universal right of every known role.
func DerivePermissions(role models.MembershipRole) (PermissionSet, error) {
	switch role {
	case models.RoleCreator:
		return PermissionSet{CanInvite: true, CanLeave: true, CanDeleteGroup: true}, nil
	case models.RoleMember:
		return PermissionSet{CanInvite: false, CanLeave: true, CanDeleteGroup: false}, nil
	default:
		return PermissionSet{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
}
