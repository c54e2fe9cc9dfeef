package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tfl_backend/internal/auth"
	"tfl_backend/internal/config"
	"tfl_backend/internal/email"
	"tfl_backend/internal/models"
	"tfl_backend/internal/services/dto"
	"tfl_backend/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func TestUserService_ResolveViewer(t *testing.T) {
	env := newTestEnv(t)
	unverified := env.createUser(t, "new", "password123", false, false)
	player := env.createUser(t, "player", "password123", true, false)
	admin := env.createUser(t, "boss", "password123", true, true)

	cases := []struct {
		id   uint
		want auth.Capability
	}{
		{unverified.ID, auth.Authenticated},
		{player.ID, auth.Verified},
		{admin.ID, auth.Admin},
		{9999, auth.Anonymous},
	}
	for _, tc := range cases {
		v, err := env.users.ResolveViewer(env.ctx, env.db, tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.want, v.Capability, "user %d", tc.id)
	}
}

func TestUserService_UpdateProfileNeedsCurrentPassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "kenny", "password123", true, false)

	// the guard runs first, so the name change must not land either
	err := env.users.UpdateProfile(env.ctx, env.db, user.ID, &dto.UpdateProfileRequest{
		FirstName: strPtr("Changed"),
		Email:     strPtr("new@example.com"),
	})
	assert.ErrorIs(t, err, apperrors.ErrCurrentPasswordRequired)

	err = env.users.UpdateProfile(env.ctx, env.db, user.ID, &dto.UpdateProfileRequest{
		FirstName:       strPtr("Changed"),
		NewPassword:     "new-password",
		CurrentPassword: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrCurrentPasswordIncorrect)

	reloaded := env.reload(t, user.ID)
	assert.Equal(t, "Test", *reloaded.FirstName)
	assert.Equal(t, user.Email, reloaded.Email)
	assert.True(t, auth.CheckPasswordHash("password123", reloaded.PasswordHash))
}

func TestUserService_UpdateProfileAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "kenny", "password123", true, false)
	env.createUser(t, "ian", "password123", true, false)

	err := env.users.UpdateProfile(env.ctx, env.db, user.ID, &dto.UpdateProfileRequest{
		FirstName: strPtr("Changed"),
		Username:  strPtr("IAN"),
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)

	err = env.users.UpdateProfile(env.ctx, env.db, user.ID, &dto.UpdateProfileRequest{
		FirstName:       strPtr("Changed"),
		NewPassword:     "short",
		CurrentPassword: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrNewPasswordTooShort)

	err = env.users.UpdateProfile(env.ctx, env.db, user.ID, &dto.UpdateProfileRequest{
		ProfileEmoji: strPtr("🍕"),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidProfileEmoji)

	assert.Equal(t, "Test", *env.reload(t, user.ID).FirstName)
}

func TestUserService_UpdateProfileEmailResetsVerification(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "kenny", "password123", true, false)
	other := env.createUser(t, "ian", "password123", true, false)

	err := env.users.UpdateProfile(env.ctx, env.db, user.ID, &dto.UpdateProfileRequest{
		Email:           strPtr(other.Email),
		CurrentPassword: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	err = env.users.UpdateProfile(env.ctx, env.db, user.ID, &dto.UpdateProfileRequest{
		Email:           strPtr(" Kenny.New@Example.com "),
		CurrentPassword: "password123",
		FirstName:       strPtr("Kenneth"),
		LastName:        strPtr(""),
	})
	require.NoError(t, err)

	reloaded := env.reload(t, user.ID)
	assert.Equal(t, "kenny.new@example.com", reloaded.Email)
	assert.False(t, reloaded.EmailVerified)
	assert.Equal(t, "Kenneth", *reloaded.FirstName)
	assert.Nil(t, reloaded.LastName)

	// an unchanged email needs no password
	err = env.users.UpdateProfile(env.ctx, env.db, user.ID, &dto.UpdateProfileRequest{
		Email: strPtr("KENNY.NEW@example.com"),
	})
	assert.NoError(t, err)
}

func TestUserService_UpdateSettings(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "kenny", "password123", true, false)

	_, err := env.users.UpdateSettings(env.ctx, env.db, user, &dto.SettingsForm{Intent: "profile", FirstName: "Kenny"})
	assert.ErrorIs(t, err, apperrors.ErrLastNameRequired)

	updated, err := env.users.UpdateSettings(env.ctx, env.db, user, &dto.SettingsForm{
		Intent: "profile", FirstName: "Kenny", LastName: "Dalglish", ProfileEmoji: "🐸",
	})
	require.NoError(t, err)
	assert.Equal(t, "profile", updated)
	assert.Equal(t, "🐸", env.reload(t, user.ID).Emoji())

	_, err = env.users.UpdateSettings(env.ctx, env.db, user, &dto.SettingsForm{Intent: "email", Email: "kd@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrCurrentPasswordForEmail)

	_, err = env.users.UpdateSettings(env.ctx, env.db, user, &dto.SettingsForm{Intent: "password"})
	assert.ErrorIs(t, err, apperrors.ErrPasswordFormEmpty)

	_, err = env.users.UpdateSettings(env.ctx, env.db, user, &dto.SettingsForm{
		Intent: "password", CurrentPassword: "password123", NewPassword: "new-password", ConfirmPassword: "new-passw0rd",
	})
	assert.ErrorIs(t, err, apperrors.ErrNewPasswordMismatch)

	_, err = env.users.UpdateSettings(env.ctx, env.db, user, &dto.SettingsForm{
		Intent: "password", NewPassword: "new-password", ConfirmPassword: "new-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrCurrentPasswordForPassword)

	updated, err = env.users.UpdateSettings(env.ctx, env.db, user, &dto.SettingsForm{
		Intent: "password", CurrentPassword: "password123", NewPassword: "new-password", ConfirmPassword: "new-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "password", updated)
	assert.True(t, auth.CheckPasswordHash("new-password", env.reload(t, user.ID).PasswordHash))
}

func TestUserService_ListUsers(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alpha", "password123", true, true)
	env.createUser(t, "bravo", "password123", false, false)
	env.createUser(t, "charlie", "password123", true, false)

	page, err := env.users.ListUsers(env.ctx, env.db, dto.UserFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	require.Len(t, page.Users, 3)
	assert.Equal(t, "charlie", page.Users[0].Username, "newest first")

	page, err = env.users.ListUsers(env.ctx, env.db, dto.UserFilter{Verified: "no"})
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "bravo", page.Users[0].Username)

	page, err = env.users.ListUsers(env.ctx, env.db, dto.UserFilter{Admin: "yes"})
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.True(t, page.Users[0].IsAdmin)

	page, err = env.users.ListUsers(env.ctx, env.db, dto.UserFilter{Search: "CHAR"})
	require.NoError(t, err)
	require.Len(t, page.Users, 1)

	page, err = env.users.ListUsers(env.ctx, env.db, dto.UserFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "alpha", page.Users[0].Username)
}

func TestUserService_SetAdminSkipsSelfDemotion(t *testing.T) {
	env := newTestEnv(t)
	boss := env.createUser(t, "boss", "password123", true, true)
	deputy := env.createUser(t, "deputy", "password123", true, false)

	n, err := env.users.SetAdmin(env.ctx, env.db, boss.ID, []uint{deputy.ID}, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.True(t, env.reload(t, deputy.ID).IsAdmin)

	n, err = env.users.SetAdmin(env.ctx, env.db, boss.ID, []uint{boss.ID, deputy.ID}, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.True(t, env.reload(t, boss.ID).IsAdmin)
	assert.False(t, env.reload(t, deputy.ID).IsAdmin)
}

func TestUserService_ResendVerificationBulk(t *testing.T) {
	env := newTestEnv(t)
	a := env.createUser(t, "alpha", "password123", false, false)
	b := env.createUser(t, "bravo", "password123", false, false)

	result, err := env.users.ResendVerificationBulk(env.ctx, env.db, []uint{a.ID, b.ID, 4242})
	require.NoError(t, err)
	assert.True(t, result.ResendOK)
	assert.Equal(t, 2, result.ResendCount)
	assert.NotEmpty(t, result.VerificationLink)

	_, ok := env.mailer.Last(email.KindVerification, a.Email)
	assert.True(t, ok)
	assert.NotNil(t, env.reload(t, b.ID).VerificationToken)

	// admins are not rate limited
	result, err = env.users.ResendVerificationBulk(env.ctx, env.db, []uint{a.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ResendCount)

	result, err = env.users.ResendVerificationBulk(env.ctx, env.db, nil)
	require.NoError(t, err)
	assert.False(t, result.ResendOK)
}

func TestUserService_SeedFirstAdmin(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.users.SeedFirstAdmin(env.ctx, env.db, "", "", ""))

	err := env.users.SeedFirstAdmin(env.ctx, env.db, "admin", "admin@example.com", "short")
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)

	cfg := config.Defaults()
	cfg.Admin.Username = "Admin"
	cfg.Admin.Email = "Admin@Example.com"
	cfg.Admin.Password = "password123"
	require.NoError(t, SeedFromConfig(env.ctx, env.db, env.users, cfg))
	// a second start leaves the account alone
	require.NoError(t, SeedFromConfig(env.ctx, env.db, env.users, cfg))

	var admins []models.User
	require.NoError(t, env.db.Where("email = ?", "admin@example.com").Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].IsAdmin)
	assert.True(t, admins[0].EmailVerified)
	assert.Equal(t, "admin", admins[0].UsernameKey)
}
