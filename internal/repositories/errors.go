package repositories

import (
	"errors"
	"strings"

	"tfl_backend/pkg/dberrors"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrEmailTaken      = errors.New("email already registered")
	ErrEventNotFound   = errors.New("event not found")
	ErrEventDateTaken  = errors.New("event date already used")
	ErrSignupNotFound  = errors.New("signup not found")
	ErrDuplicateSignup = errors.New("already signed up")
	ErrNoticeNotFound  = errors.New("notice not found")
)

func isUniqueViolation(err error) bool {
	return dberrors.IsUniqueViolation(err)
}

// violates reports whether a unique violation names the given column or index
func violates(err error, column string) bool {
	return strings.Contains(strings.ToLower(err.Error()), column)
}

// mapUserConflict turns a unique violation on users into the matching sentinel
func mapUserConflict(err error) error {
	if !isUniqueViolation(err) {
		return err
	}
	switch {
	case violates(err, "username_key"):
		return ErrUsernameTaken
	case violates(err, "email"):
		return ErrEmailTaken
	default:
		return err
	}
}
