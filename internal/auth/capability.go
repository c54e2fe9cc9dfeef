package auth

import (
	"tfl_backend/internal/models"
	"tfl_backend/pkg/apperrors"
)

// Capability is what the current request is allowed to do. Levels are ordered;
// each one includes everything below it.
type Capability int

const (
	Anonymous Capability = iota
	Authenticated
	Verified
	Admin
)

func (c Capability) String() string {
	switch c {
	case Authenticated:
		return "authenticated"
	case Verified:
		return "verified"
	case Admin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Viewer is the caller of a request, resolved once from the session
type Viewer struct {
	UserID     uint
	User       *models.User
	Capability Capability
}

// AnonymousViewer is used when there is no session or its user is gone
var AnonymousViewer = &Viewer{Capability: Anonymous}

// NewViewer derives the capability from the stored user
func NewViewer(user *models.User) *Viewer {
	if user == nil {
		return AnonymousViewer
	}
	c := Authenticated
	if user.EmailVerified {
		c = Verified
		if user.IsAdmin {
			c = Admin
		}
	}
	return &Viewer{UserID: user.ID, User: user, Capability: c}
}

// Require fails when the viewer is below min. The error code tells the caller
// where to send the user: sign in, verify email, or nowhere.
func (v *Viewer) Require(min Capability) error {
	if v == nil {
		v = AnonymousViewer
	}
	if v.Capability >= min {
		return nil
	}
	switch v.Capability {
	case Anonymous:
		return apperrors.ErrUnauthenticated
	case Authenticated:
		if min >= Verified {
			return apperrors.ErrUnverified
		}
	}
	return apperrors.ErrInsufficientPermissions
}

func (v *Viewer) IsAdmin() bool {
	return v != nil && v.Capability >= Admin
}

func (v *Viewer) IsAuthenticated() bool {
	return v != nil && v.Capability >= Authenticated
}
