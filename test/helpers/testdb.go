package helpers

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tfl_backend/internal/auth"
	"tfl_backend/internal/calendar"
	"tfl_backend/internal/email"
	"tfl_backend/internal/models"
)

const DefaultPassword = "password123"

// UserOpts controls CreateUser; the zero value is a verified non-admin
type UserOpts struct {
	Unverified bool
	Admin      bool
}

// CreateUser inserts a user with DefaultPassword straight into the database
func CreateUser(t *testing.T, ts *TestServer, username string, opts UserOpts) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)

	first, last, emoji := "Test", username, models.DefaultProfileEmoji
	user := &models.User{
		Username:      username,
		UsernameKey:   models.NormalizeUsername(username),
		Email:         models.NormalizeEmail(username + "@example.com"),
		PasswordHash:  hash,
		EmailVerified: !opts.Unverified,
		IsAdmin:       opts.Admin,
		FirstName:     &first,
		LastName:      &last,
		ProfileEmoji:  &emoji,
	}
	require.NoError(t, ts.DB.Create(user).Error, "create user %s", username)
	return user
}

// Login signs in through POST /login and returns the client holding the cookie
func Login(t *testing.T, ts *TestServer, username, password string) *Client {
	t.Helper()
	client := ts.NewClient(t)
	res, body := client.PostForm(t, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusSeeOther, res.StatusCode, "login %s: %s", username, body)
	require.Equal(t, "/events", Location(res))
	return client
}

// CreateAndLogin is CreateUser followed by Login
func CreateAndLogin(t *testing.T, ts *TestServer, username string, opts UserOpts) (*Client, *models.User) {
	t.Helper()
	user := CreateUser(t, ts, username, opts)
	return Login(t, ts, username, DefaultPassword), user
}

// CreateEvent inserts an event on date ("YYYY-MM-DD")
func CreateEvent(t *testing.T, ts *TestServer, date string) *models.Event {
	t.Helper()
	event := &models.Event{EventDate: date}
	require.NoError(t, ts.DB.Create(event).Error, "create event %s", date)
	return event
}

// Saturday returns the date of the session weeksAhead weeks from the next
// one. weeksAhead >= 1 is always in the future, whatever the time today.
func Saturday(t *testing.T, ts *TestServer, weeksAhead int) string {
	t.Helper()
	cal := calendar.New(ts.Config.Location(), time.Now)
	dates := cal.NextWeekdays(time.Saturday, weeksAhead+1)
	return dates[weeksAhead]
}

// PastSaturday is a session that has certainly ended
func PastSaturday(t *testing.T, ts *TestServer) string {
	t.Helper()
	cal := calendar.New(ts.Config.Location(), time.Now)
	next, err := cal.ParseDate(cal.NextWeekdays(time.Saturday, 1)[0])
	require.NoError(t, err)
	return next.AddDate(0, 0, -14).Format(calendar.DateLayout)
}

// LastToken pulls the token out of the newest email of kind sent to addr
func LastToken(t *testing.T, ts *TestServer, kind email.Kind, addr string) string {
	t.Helper()
	sent, ok := ts.Mailer.Last(kind, addr)
	require.True(t, ok, "no %s email to %s", kind, addr)
	u, err := url.Parse(sent.URL)
	require.NoError(t, err)
	token := u.Query().Get("token")
	require.NotEmpty(t, token)
	return token
}
