package dto

// RegisterRequest - sign-up form
type RegisterRequest struct {
	Username        string `form:"username" json:"username"`
	FirstName       string `form:"firstName" json:"firstName"`
	LastName        string `form:"lastName" json:"lastName"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword"`
	ProfileEmoji    string `form:"profileEmoji" json:"profileEmoji"`
}

// LoginRequest - login form
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// PasswordResetRequest - forgot-password form
type PasswordResetRequest struct {
	Email string `form:"email" json:"email"`
}

// PasswordResetConfirm - reset-password form
type PasswordResetConfirm struct {
	Token    string `form:"token" json:"token"`
	Password string `form:"password" json:"password"`
	Confirm  string `form:"confirm" json:"confirm"`
}

// LoginPage - GET /login
type LoginPage struct {
	Verified bool `json:"verified"`
	Reset    bool `json:"reset"`
}

// SignupPage - GET /signup
type SignupPage struct {
	Emojis       []string `json:"emojis"`
	DefaultEmoji string   `json:"defaultEmoji"`
}

// VerifyEmailPage - GET /verify-email
type VerifyEmailPage struct {
	Sent      bool `json:"sent"`
	HasUserID bool `json:"hasUserId"`
	DevVerify bool `json:"devVerify"`
}

// ForgotPasswordPage - GET /forgot-password
type ForgotPasswordPage struct {
	LinkExpiryMinutes int `json:"linkExpiryMinutes"`
}

// ResetPasswordPage - GET /reset-password
type ResetPasswordPage struct {
	Token string `json:"token"`
}

// ResendResponse - POST /verify-email/resend
type ResendResponse struct {
	Sent bool `json:"sent"`
}
