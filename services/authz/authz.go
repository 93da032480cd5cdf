// Package authz holds the single authorization predicate every operation
// goes through instead of re-deriving role and ownership checks inline.
package authz

import (
	"hostel-booking/errs"
	"hostel-booking/models/user"
	"hostel-booking/types"
)

// Owned is any resource that knows its owning user.
type Owned interface {
	OwnedBy() uint
}

// RequireRole fails with an AuthorizationError carrying msg unless the
// caller holds the given role.
func RequireRole(caller types.Identity, role user.Role, msg string) error {
	if caller.Role != role {
		return errs.Authorization(msg)
	}
	return nil
}

// RequireOwner fails unless the caller is the owner of the resource. Admins
// get no bypass: ownership is checked literally, matching the rest of the
// system.
func RequireOwner(caller types.Identity, res Owned) error {
	if caller.UserID != res.OwnedBy() {
		return errs.Authorization("Unauthorized")
	}
	return nil
}

// CanManage reports whether the caller owns the resource.
func CanManage(caller types.Identity, res Owned) bool {
	return caller.UserID == res.OwnedBy()
}
