package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tfl_backend/internal/config"
	"tfl_backend/internal/models"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	cfg := config.Defaults()
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")

	db, err := Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	for _, table := range []interface{}{&models.User{}, &models.Event{}, &models.Signup{}, &models.Notice{}, &models.NoticeDismissal{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}

	// migrating twice is harmless
	require.NoError(t, AutoMigrate(db))

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestSQLitePath(t *testing.T) {
	cfg := config.Defaults()
	cfg.Database.Path = "/var/lib/tfl.db"
	p, err := SQLitePath(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/tfl.db", p)

	cfg.Database.Path = ""
	cfg.Server.Env = "production"
	p, err = SQLitePath(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/reservation.db", p)
}

func TestConnectUnsupportedDriver(t *testing.T) {
	cfg := config.Defaults()
	cfg.Database.Driver = "oracle"
	_, err := Connect(cfg)
	assert.Error(t, err)
}

func TestDeletingRowsCascades(t *testing.T) {
	cfg := config.Defaults()
	cfg.Database.Path = filepath.Join(t.TempDir(), "cascade.db")

	db, err := Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	user := &models.User{Username: "kenny", UsernameKey: "kenny", Email: "kenny@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	event := &models.Event{EventDate: "2025-03-18"}
	require.NoError(t, db.Create(event).Error)
	require.NoError(t, db.Create(&models.Signup{EventID: event.ID, UserID: user.ID, GuestCount: 2}).Error)
	notice := &models.Notice{EventID: event.ID, Message: "Bring bibs", CreatedBy: &user.ID}
	require.NoError(t, db.Create(notice).Error)
	require.NoError(t, db.Create(&models.NoticeDismissal{UserID: user.ID, NoticeID: notice.ID}).Error)

	require.NoError(t, db.Delete(&models.Event{}, event.ID).Error)

	var count int64
	require.NoError(t, db.Model(&models.Signup{}).Where("event_id = ?", event.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Notice{}).Where("event_id = ?", event.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.NoticeDismissal{}).Where("notice_id = ?", notice.ID).Count(&count).Error)
	assert.Zero(t, count)

	// removing a user drops their sign-ups and keeps their notices
	other := &models.Event{EventDate: "2025-03-22"}
	require.NoError(t, db.Create(other).Error)
	require.NoError(t, db.Create(&models.Signup{EventID: other.ID, UserID: user.ID}).Error)
	kept := &models.Notice{EventID: other.ID, Message: "Pitch 2", CreatedBy: &user.ID}
	require.NoError(t, db.Create(kept).Error)

	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)
	require.NoError(t, db.Model(&models.Signup{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)

	var reloaded models.Notice
	require.NoError(t, db.First(&reloaded, kept.ID).Error)
	assert.Nil(t, reloaded.CreatedBy)
}
