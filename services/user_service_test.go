package services

import (
	"testing"

	"waterzone/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInIdempotentByPhone(t *testing.T) {
	db := newTestDB(t)

	first, err := SignIn(db, "Asha", "+254700000001", models.RoleCustomer)
	require.NoError(t, err)

	// Second sign-in with the same phone returns the existing account
	// unchanged, even if a different role is requested
	second, err := SignIn(db, "Asha Again", "+254700000001", models.RoleDriver)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.RoleCustomer, second.Role)
	assert.Equal(t, "Asha", second.FullName)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSignInRejectsUnknownRole(t *testing.T) {
	db := newTestDB(t)
	_, err := SignIn(db, "Nobody", "+254700000002", models.UserRole("restaurant"))
	require.Error(t, err)
	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestRequireRole(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, models.RoleCustomer, "+254700000003")

	t.Run("matching role passes", func(t *testing.T) {
		user, err := RequireRole(db, customer.ID, models.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, customer.ID, user.ID)
	})

	t.Run("any of several roles passes", func(t *testing.T) {
		_, err := RequireRole(db, customer.ID, models.RoleCustomer, models.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		_, err := RequireRole(db, customer.ID, models.RoleDriver)
		require.Error(t, err)
		assert.Equal(t, CodeForbidden, CodeOf(err))
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := RequireRole(db, 9999, models.RoleCustomer)
		require.Error(t, err)
		assert.Equal(t, CodeNotFound, CodeOf(err))
	})
}

func TestGetUserByPhone(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, models.RoleCustomer, "+254700000004")

	user, err := GetUserByPhone(db, "+254700000004")
	require.NoError(t, err)
	assert.Equal(t, "+254700000004", user.PhoneE164)

	_, err = GetUserByPhone(db, "+254799999999")
	assert.Equal(t, CodeNotFound, CodeOf(err))
}
