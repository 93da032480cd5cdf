package authz

import (
	"testing"

	"hostel-booking/errs"
	"hostel-booking/models/hostel"
	"hostel-booking/models/user"
	"hostel-booking/types"

	"github.com/stretchr/testify/assert"
)

func TestRequireRole(t *testing.T) {
	student := types.Identity{UserID: 1, Role: user.RoleStudent}

	assert.NoError(t, RequireRole(student, user.RoleStudent, "students only"))

	err := RequireRole(student, user.RoleOwner, "owners only")
	assert.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))
	assert.Equal(t, "owners only", err.Error())
}

func TestRequireOwner(t *testing.T) {
	h := &hostel.Hostel{OwnerID: 7}

	assert.NoError(t, RequireOwner(types.Identity{UserID: 7, Role: user.RoleOwner}, h))

	err := RequireOwner(types.Identity{UserID: 8, Role: user.RoleOwner}, h)
	assert.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))
	assert.Equal(t, "Unauthorized", err.Error())

	// There is no admin bypass: ownership is the only key.
	err = RequireOwner(types.Identity{UserID: 9, Role: user.RoleAdmin}, h)
	assert.Error(t, err)
}

func TestCanManage(t *testing.T) {
	h := &hostel.Hostel{OwnerID: 7}

	assert.True(t, CanManage(types.Identity{UserID: 7, Role: user.RoleOwner}, h))
	assert.False(t, CanManage(types.Identity{UserID: 3, Role: user.RoleOwner}, h))
}
