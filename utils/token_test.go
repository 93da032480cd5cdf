package utils

import (
	"testing"

	"hostel-booking/models/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	u := &user.User{
		ID:    42,
		Email: "student@example.com",
		Role:  user.RoleStudent,
	}
	token, err := GenerateToken(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "student@example.com", claims.Email)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	u := &user.User{ID: 1, Email: "a@example.com", Role: user.RoleOwner}
	token, err := GenerateToken(u)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}
