package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tfl_backend/database"
	"tfl_backend/internal/auth"
	"tfl_backend/internal/calendar"
	"tfl_backend/internal/config"
	"tfl_backend/internal/email"
	"tfl_backend/internal/models"
	"tfl_backend/internal/repositories"
)

const testOrigin = "http://portal.test"

// fakeClock is a movable "now" shared by the services under test
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testEnv struct {
	ctx     context.Context
	db      *gorm.DB
	clock   *fakeClock
	mailer  *email.LogProvider
	auth    AuthService
	users   UserService
	events  EventService
	notices NoticeService
}

func london(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	return loc
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.Defaults()
	cfg.Database.Path = filepath.Join(t.TempDir(), "services.db")

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// newTestEnv wires every service against a fresh database. now is a Wednesday
// morning in London unless the test moves the clock.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	loc := london(t)
	clock := &fakeClock{t: time.Date(2025, time.March, 12, 9, 0, 0, 0, loc)}

	userRepo := repositories.NewUserRepository()
	mailer := email.NewLogProvider()
	links := NewLinks(testOrigin)

	schedule := EventSchedule{
		Weekday:            time.Saturday,
		UpcomingCount:      4,
		DefaultTitle:       "Terrible Football Liverpool",
		DefaultDescription: "Saturday football session",
		DefaultLocation:    "Wavertree Botanic Gardens",
	}

	return &testEnv{
		ctx:    context.Background(),
		db:     openTestDB(t),
		clock:  clock,
		mailer: mailer,
		auth:   NewAuthService(userRepo, mailer, links, false, clock.Now),
		users:  NewUserService(userRepo, mailer, links, false, clock.Now),
		events: NewEventService(
			repositories.NewEventRepository(),
			repositories.NewSignupRepository(),
			calendar.New(loc, clock.Now),
			schedule,
		),
		notices: NewNoticeService(repositories.NewNoticeRepository(), repositories.NewEventRepository(), schedule.DefaultTitle),
	}
}

// createUser inserts a user directly; verified users skip the email round trip
func (e *testEnv) createUser(t *testing.T, username, password string, verified, admin bool) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	first, last := "Test", username
	user := &models.User{
		Username:      username,
		UsernameKey:   models.NormalizeUsername(username),
		Email:         models.NormalizeEmail(username + "@example.com"),
		PasswordHash:  hash,
		EmailVerified: verified,
		IsAdmin:       admin,
		FirstName:     &first,
		LastName:      &last,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createEvent(t *testing.T, date string) *models.Event {
	t.Helper()
	event := &models.Event{EventDate: date}
	require.NoError(t, e.db.Create(event).Error)
	return event
}

func (e *testEnv) reload(t *testing.T, id uint) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, e.db.First(&user, id).Error)
	return &user
}
