package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestUser_DisplayName(t *testing.T) {
	u := &User{Username: "kev"}
	assert.Equal(t, "kev", u.DisplayName())

	u.FirstName = strPtr("Kevin")
	assert.Equal(t, "kev", u.DisplayName(), "needs both names")

	u.LastName = strPtr("Keegan")
	assert.Equal(t, "Kevin Keegan", u.DisplayName())
}

func TestUser_Emoji(t *testing.T) {
	u := &User{}
	assert.Equal(t, DefaultProfileEmoji, u.Emoji())

	u.ProfileEmoji = strPtr("🐸")
	assert.Equal(t, "🐸", u.Emoji())

	u.ProfileEmoji = strPtr("🍕")
	assert.Equal(t, DefaultProfileEmoji, u.Emoji())
}

func TestClampGuests(t *testing.T) {
	assert.Equal(t, 0, ClampGuests(-3))
	assert.Equal(t, 3, ClampGuests(3))
	assert.Equal(t, MaxGuests, ClampGuests(99))
}

func TestProfileEmojis(t *testing.T) {
	assert.Equal(t, DefaultProfileEmoji, ProfileEmojis[0])
	assert.True(t, IsAllowedProfileEmoji("🐊"))
	assert.False(t, IsAllowedProfileEmoji(""))
}
