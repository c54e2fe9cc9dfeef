package integration_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tfl_backend/internal/email"
	"tfl_backend/internal/models"
	"tfl_backend/test/helpers"
)

func signupForm(username, addr string) url.Values {
	return url.Values{
		"username":        {username},
		"firstName":       {"Kenny"},
		"lastName":        {"Dalglish"},
		"email":           {addr},
		"password":        {"password123"},
		"confirmPassword": {"password123"},
		"profileEmoji":    {"🐸"},
	}
}

func TestSignupVerifyLogin(t *testing.T) {
	ts := helpers.NewTestServer(t)
	client := ts.NewClient(t)

	res, body := client.PostForm(t, "/signup", signupForm("Kenny", "kenny@example.com"))
	require.Equal(t, http.StatusSeeOther, res.StatusCode, body)
	assert.Equal(t, "/verify-email?sent=1", helpers.Location(res))

	// no session until the user signs in
	res, _ = client.Get(t, "/events")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login", helpers.Location(res))

	client = helpers.Login(t, ts, "KENNY", "password123")

	// signed in but unverified
	res, _ = client.Get(t, "/events")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/verify-email", helpers.Location(res))

	token := helpers.LastToken(t, ts, email.KindVerification, "kenny@example.com")
	res, _ = client.Get(t, "/verify-email?token="+url.QueryEscape(token))
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login?verified=1", helpers.Location(res))

	res, body = client.Get(t, "/events")
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"months"`)

	var user models.User
	require.NoError(t, ts.DB.Where("username_key = ?", "kenny").First(&user).Error)
	assert.True(t, user.EmailVerified)
	assert.Equal(t, "🐸", user.Emoji())
}

func TestSignupErrorsAreInline(t *testing.T) {
	ts := helpers.NewTestServer(t)
	helpers.CreateUser(t, ts, "ian", helpers.UserOpts{})
	client := ts.NewClient(t)

	cases := []struct {
		name string
		form url.Values
		want string
	}{
		{"taken username", signupForm("IAN", "new@example.com"), "Username is already taken."},
		{"taken email", signupForm("newbie", "ian@example.com"), "An account with this email already exists."},
		{"short username", signupForm("k", "k@example.com"), "Username must be at least 2 characters."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, body := client.PostForm(t, "/signup", tc.form)
			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.Equal(t, tc.want, helpers.FormError(t, body))
		})
	}

	form := signupForm("newbie", "newbie@example.com")
	form.Set("confirmPassword", "password124")
	res, body := client.PostForm(t, "/signup", form)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Passwords do not match.", helpers.FormError(t, body))
}

func TestLoginFailures(t *testing.T) {
	ts := helpers.NewTestServer(t)
	helpers.CreateUser(t, ts, "kenny", helpers.UserOpts{})
	client := ts.NewClient(t)

	res, body := client.PostForm(t, "/login", url.Values{"username": {"kenny"}, "password": {"nope-nope"}})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Invalid username or password", helpers.FormError(t, body))

	res, body = client.PostForm(t, "/login", url.Values{"username": {"kenny"}})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Username and password are required.", helpers.FormError(t, body))
}

func TestLogout(t *testing.T) {
	ts := helpers.NewTestServer(t)
	client, _ := helpers.CreateAndLogin(t, ts, "kenny", helpers.UserOpts{})

	res, _ := client.Get(t, "/")
	assert.Equal(t, "/events", helpers.Location(res))
	res, _ = client.Get(t, "/login")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)

	res, _ = client.PostForm(t, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login", helpers.Location(res))

	res, _ = client.Get(t, "/events")
	assert.Equal(t, "/login", helpers.Location(res))
}

func TestPasswordReset(t *testing.T) {
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts, "kenny", helpers.UserOpts{})
	client := ts.NewClient(t)

	res, body := client.Get(t, "/forgot-password")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"linkExpiryMinutes": 60}`, body)

	// same answer for unknown addresses
	res, body = client.PostForm(t, "/forgot-password", url.Values{"email": {"nobody@example.com"}})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"success": true}`, body)

	res, _ = client.PostForm(t, "/forgot-password", url.Values{"email": {user.Email}})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	token := helpers.LastToken(t, ts, email.KindPasswordReset, user.Email)

	res, body = client.Get(t, "/reset-password?token="+url.QueryEscape(token))
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, token)

	form := url.Values{"token": {token}, "password": {"brand-new-pass"}, "confirm": {"brand-new-pass"}}
	res, _ = client.PostForm(t, "/reset-password", form)
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login?reset=1", helpers.Location(res))

	// single use
	res, body = client.PostForm(t, "/reset-password", form)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Invalid or expired reset link. Please request a new one.", helpers.FormError(t, body))

	helpers.Login(t, ts, "kenny", "brand-new-pass")
}

func TestResendVerification(t *testing.T) {
	ts := helpers.NewTestServer(t)
	client := ts.NewClient(t)
	res, _ := client.PostForm(t, "/signup", signupForm("kenny", "kenny@example.com"))
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	client = helpers.Login(t, ts, "kenny", "password123")

	res, body := client.Get(t, "/verify-email")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"sent": false, "hasUserId": true, "devVerify": true}`, body)

	// the signup email was just sent
	res, body = client.PostForm(t, "/verify-email/resend", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Please wait a minute before requesting another verification email.", helpers.FormError(t, body))

	// anonymous callers are sent to log in
	res, _ = ts.NewClient(t).PostForm(t, "/verify-email/resend", nil)
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login", helpers.Location(res))
}

func TestDevVerify(t *testing.T) {
	ts := helpers.NewTestServer(t)
	client, user := helpers.CreateAndLogin(t, ts, "kenny", helpers.UserOpts{Unverified: true})

	res, _ := client.PostForm(t, "/verify-email", nil)
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/events", helpers.Location(res))

	var reloaded models.User
	require.NoError(t, ts.DB.First(&reloaded, user.ID).Error)
	assert.True(t, reloaded.EmailVerified)

	res, _ = client.Get(t, "/verify-email")
	assert.Equal(t, "/events", helpers.Location(res))
}
