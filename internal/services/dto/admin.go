package dto

import "time"

// AdminUserRow is one line of the admin user table
type AdminUserRow struct {
	ID            uint      `json:"id"`
	Username      string    `json:"username"`
	DisplayName   string    `json:"displayName"`
	Email         string    `json:"email"`
	ProfileEmoji  string    `json:"profileEmoji"`
	EmailVerified bool      `json:"emailVerified"`
	IsAdmin       bool      `json:"isAdmin"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UserFilter - GET /admin/users query; "yes"/"no" filters, anything else is all
type UserFilter struct {
	Search   string `form:"q"`
	Verified string `form:"verified"`
	Admin    string `form:"admin"`
	Page     int    `form:"-"`
	PageSize int    `form:"-"`
}

// AdminUsersPage - GET /admin/users
type AdminUsersPage struct {
	Users         []AdminUserRow `json:"users"`
	CurrentUserID uint           `json:"currentUserId"`
	Total         int64          `json:"total"`
	Page          int            `json:"page"`
	PageSize      int            `json:"pageSize"`
}

// AdminUsersForm - POST /admin/users
type AdminUsersForm struct {
	Intent  string   `form:"intent" json:"intent" validate:"required,oneof=resend-verification set-admin"`
	UserIDs []string `form:"userId" json:"userId"`
	IsAdmin string   `form:"isAdmin" json:"isAdmin"`
}

// ResendResult - admin bulk resend
type ResendResult struct {
	ResendOK         bool   `json:"resendOk"`
	ResendCount      int    `json:"resendCount"`
	VerificationLink string `json:"verificationLink,omitempty"`
}

// SetAdminResult - admin role change
type SetAdminResult struct {
	Updated int64 `json:"updated"`
}
