package models

import (
	"strings"
)

type User struct {
	BaseModel
	Username            string  `gorm:"size:64;not null"`
	UsernameKey         string  `gorm:"size:64;not null;uniqueIndex:idx_users_username_key"` // lowercased, case-insensitive uniqueness
	Email               string  `gorm:"size:255;not null;uniqueIndex:idx_users_email"`
	PasswordHash        string  `gorm:"not null"`
	EmailVerified       bool    `gorm:"not null;default:false"`
	VerificationToken   *string `gorm:"size:64;index"`
	VerificationExpires *int64  // unix seconds
	ResetToken          *string `gorm:"size:64;index"`
	ResetTokenExpires   *int64  // unix seconds
	IsAdmin             bool    `gorm:"not null;default:false"`
	FirstName           *string `gorm:"size:100"`
	LastName            *string `gorm:"size:100"`
	ProfileEmoji        *string `gorm:"size:16"`
}

// DisplayName is "First Last" when both names are set, otherwise the username
func (u *User) DisplayName() string {
	first := strings.TrimSpace(deref(u.FirstName))
	last := strings.TrimSpace(deref(u.LastName))
	if first != "" && last != "" {
		return first + " " + last
	}
	return u.Username
}

// Emoji returns the stored profile emoji or the default
func (u *User) Emoji() string {
	if u.ProfileEmoji != nil && IsAllowedProfileEmoji(*u.ProfileEmoji) {
		return *u.ProfileEmoji
	}
	return DefaultProfileEmoji
}

// NormalizeUsername normalises a username for uniqueness checks
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NormalizeEmail trims and lowercases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
