package services

import (
	"testing"

	"waterzone/config"
	"waterzone/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role models.UserRole, phone string) *models.User {
	t.Helper()
	user, err := SignIn(db, "Test "+string(role), phone, role)
	require.NoError(t, err)
	return user
}

// seedOnlineDriver registers a driver for a fresh user and brings it online
func seedOnlineDriver(t *testing.T, db *gorm.DB, phone string) (*models.User, *models.Driver) {
	t.Helper()
	user := seedUser(t, db, models.RoleDriver, phone)
	driver, err := RegisterDriver(db, user.ID, "KAA 123X", "truck", "{}")
	require.NoError(t, err)
	_, err = UpdatePresence(db, user.ID, true, nil, nil)
	require.NoError(t, err)
	return user, driver
}
