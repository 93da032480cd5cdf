package types

import (
	"hostel-booking/models/user"
)

// Identity is the already-resolved caller passed explicitly into every
// operation: no handler or service reaches back into request context for
// the current user.
type Identity struct {
	UserID uint      `json:"user_id"`
	Role   user.Role `json:"role"`
	Email  string    `json:"email"`
}

func (i Identity) IsStudent() bool {
	return i.Role == user.RoleStudent
}

func (i Identity) IsOwner() bool {
	return i.Role == user.RoleOwner
}
