package apperrors

import (
	"net/http"
)

/*
Factories and predefined values for the portal's business and domain errors.
Messages are shown to users as-is.
*/

// =========================================================================
// Factories (wrap repository errors)
// =========================================================================

// ErrNotFound converts a repository "not found" into a 404
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrConflict is the generic conflict factory (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// =========================================================================
// Auth gate
// =========================================================================

// ErrUnauthenticated - no valid session; the caller is sent to the login page
var ErrUnauthenticated = New(
	CodeUnauthorized,
	"auth",
	"Please sign in to continue",
	http.StatusUnauthorized,
)

// ErrUnverified - signed in but the email address is not verified yet
var ErrUnverified = New(
	CodeEmailNotVerified,
	"auth",
	"Please verify your email address",
	http.StatusForbidden,
)

// ErrInsufficientPermissions - a non-admin tried an admin action
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// =========================================================================
// Accounts
// =========================================================================

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid username or password",
	http.StatusUnauthorized,
)

var ErrCredentialsRequired = NewValidationMessage("auth", "Username and password are required.")

var ErrAllFieldsRequired = NewValidationMessage("account", "All fields are required.")

var ErrUsernameTooShort = NewValidationMessage("account", "Username must be at least 2 characters.")

var ErrInvalidEmail = NewValidationMessage("account", "Please enter a valid email address.")

var ErrEmailRequired = NewValidationMessage("account", "Please enter your email address.")

// ErrWeakPassword - shorter than the minimum length
var ErrWeakPassword = NewValidationMessage("account", "Password must be at least 8 characters.")

var ErrPasswordMismatch = NewValidationMessage("account", "Passwords do not match.")

var ErrUsernameTaken = New(
	CodeAlreadyExists,
	"account",
	"Username is already taken.",
	http.StatusConflict,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"account",
	"An account with this email already exists.",
	http.StatusConflict,
)

var ErrCurrentPasswordRequired = NewValidationMessage("account", "Current password is required to change email or password.")

var ErrCurrentPasswordIncorrect = New(
	CodeInvalidCredentials,
	"account",
	"Current password is incorrect.",
	http.StatusBadRequest,
)

var ErrInvalidProfileEmoji = NewValidationMessage("account", "Please choose a valid profile emoji.")

var ErrUserNotFound = New(
	CodeNotFound,
	"account",
	"User not found.",
	http.StatusNotFound,
)

// ErrInvalidResetLink - reset token missing, unknown, expired or already used
var ErrInvalidResetLink = New(
	CodeInvalidToken,
	"account",
	"Invalid or expired reset link. Please request a new one.",
	http.StatusBadRequest,
)

// ErrResendTooSoon - self-service verification resend rate limit
var ErrResendTooSoon = New(
	CodeLimitExceeded,
	"account",
	"Please wait a minute before requesting another verification email.",
	http.StatusTooManyRequests,
)

// ErrEmailNotConfigured - production without SMTP credentials
var ErrEmailNotConfigured = New(
	CodeExternalServiceError,
	"email",
	"Email is not configured. Set SMTP_USER and SMTP_PASS.",
	http.StatusServiceUnavailable,
)

// =========================================================================
// Events and sign-ups
// =========================================================================

var ErrEventNotFound = New(
	CodeNotFound,
	"event",
	"Event not found.",
	http.StatusNotFound,
)

var ErrEventStarted = New(
	CodeInvalidStatus,
	"event",
	"This session has already started. Sign-ups are closed.",
	http.StatusConflict,
)

var ErrEventEnded = New(
	CodeInvalidStatus,
	"event",
	"This session has ended.",
	http.StatusConflict,
)

var ErrAlreadySignedUp = New(
	CodeConflict,
	"event",
	"You are already signed up for this session.",
	http.StatusConflict,
)

var ErrEventDateTaken = New(
	CodeConflict,
	"event",
	"Another session already uses that date.",
	http.StatusConflict,
)

var ErrInvalidEventDate = NewValidationMessage("event", "Please enter the date as YYYY-MM-DD.")

// =========================================================================
// Notices
// =========================================================================

var ErrNoticeIncomplete = NewValidationMessage("notice", "Please select an event and enter a message.")

var ErrNoticeNotFound = New(
	CodeNotFound,
	"notice",
	"Notice not found.",
	http.StatusNotFound,
)

// =========================================================================
// Settings sub-forms
// =========================================================================

var ErrFirstNameRequired = NewValidationMessage("settings", "First name is required.")

var ErrLastNameRequired = NewValidationMessage("settings", "Last name is required.")

var ErrPasswordFormEmpty = NewValidationMessage("settings", "Fill in the fields below to change your password.")

var ErrNewPasswordMismatch = NewValidationMessage("settings", "New password and confirmation do not match.")

var ErrNewPasswordTooShort = NewValidationMessage("settings", "New password must be at least 8 characters.")

var ErrCurrentPasswordForEmail = NewValidationMessage("settings", "Current password is required to change email.")

var ErrCurrentPasswordForPassword = NewValidationMessage("settings", "Current password is required to change password.")
