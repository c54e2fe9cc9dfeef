package dto

// UpdateProfileRequest carries the fields a user may change. Nil means
// "leave as is".
type UpdateProfileRequest struct {
	FirstName       *string
	LastName        *string
	Username        *string
	Email           *string
	ProfileEmoji    *string
	CurrentPassword string
	NewPassword     string
}

// SettingsForm - POST /settings; which fields matter depends on Intent
type SettingsForm struct {
	Intent          string `form:"intent" json:"intent" validate:"required,oneof=profile email password"`
	FirstName       string `form:"firstName" json:"firstName"`
	LastName        string `form:"lastName" json:"lastName"`
	ProfileEmoji    string `form:"profileEmoji" json:"profileEmoji" validate:"omitempty,profile_emoji"`
	Email           string `form:"email" json:"email"`
	CurrentPassword string `form:"currentPassword" json:"currentPassword"`
	NewPassword     string `form:"newPassword" json:"newPassword"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword"`
}

// SettingsPage - GET /settings
type SettingsPage struct {
	User    UserProfile `json:"user"`
	Updated string      `json:"updated,omitempty"`
	Emojis  []string    `json:"emojis"`
}

// UserProfile is the signed-in user's own profile
type UserProfile struct {
	ID            uint    `json:"id"`
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	ProfileEmoji  string  `json:"profileEmoji"`
	EmailVerified bool    `json:"emailVerified"`
	IsAdmin       bool    `json:"isAdmin"`
}
