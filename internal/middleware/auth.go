package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tfl_backend/internal/auth"
	"tfl_backend/internal/logger"
	"tfl_backend/internal/services"
	"tfl_backend/internal/session"
	"tfl_backend/pkg/apperrors"
	"tfl_backend/pkg/contextkeys"
)

// SessionMiddleware resolves the session cookie into an *auth.Viewer for
// every request. Must run after DBMiddleware.
func SessionMiddleware(sessions *session.Manager, users services.UserService) gin.HandlerFunc {
	dbKey := string(contextkeys.DBContextKey)
	viewerKey := string(contextkeys.ViewerKey)

	return func(c *gin.Context) {
		viewer := auth.AnonymousViewer

		if userID, ok := sessions.UserID(c.Request); ok {
			db := c.MustGet(dbKey).(*gorm.DB)
			v, err := users.ResolveViewer(c.Request.Context(), db, userID)
			if err != nil {
				apperrors.HandleError(c, err)
				return
			}
			viewer = v
			if viewer.IsAuthenticated() {
				ctx := logger.WithUserID(c.Request.Context(), viewer.UserID)
				c.Request = c.Request.WithContext(ctx)
			}
		}

		c.Set(viewerKey, viewer)
		c.Next()
	}
}

// GetViewer returns the viewer set by SessionMiddleware, or the anonymous
// viewer when there is none.
func GetViewer(c *gin.Context) *auth.Viewer {
	if v, ok := c.Get(string(contextkeys.ViewerKey)); ok {
		if viewer, ok := v.(*auth.Viewer); ok && viewer != nil {
			return viewer
		}
	}
	return auth.AnonymousViewer
}

// RequireCapability gates a route. Signed-out visitors are sent to /login,
// unverified users to /verify-email; anything else short of min is a 403.
func RequireCapability(min auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := GetViewer(c).Require(min)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, apperrors.ErrUnauthenticated):
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
		case errors.Is(err, apperrors.ErrUnverified):
			c.Redirect(http.StatusSeeOther, "/verify-email")
			c.Abort()
		default:
			logger.CtxWarn(c.Request.Context(), "access denied",
				"path", c.Request.URL.Path,
				"required", min.String(),
			)
			apperrors.HandleError(c, err)
		}
	}
}

// AdminMiddleware is RequireCapability(auth.Admin)
func AdminMiddleware() gin.HandlerFunc {
	return RequireCapability(auth.Admin)
}
