package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tfl_backend/internal/auth"
	"tfl_backend/internal/middleware"
	"tfl_backend/internal/models"
	"tfl_backend/internal/services"
	"tfl_backend/internal/services/dto"
)

type SettingsHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewSettingsHandler(base *BaseHandler, userService services.UserService) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *SettingsHandler) RegisterRoutes(r gin.IRouter) {
	settings := r.Group("/settings", middleware.RequireCapability(auth.Verified))
	{
		settings.GET("", h.GetSettings)
		settings.POST("", h.UpdateSettings)
	}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), h.GetDB(c), h.Viewer(c).UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SettingsPage{
		User:    *profile,
		Updated: c.Query("updated"),
		Emojis:  models.ProfileEmojis,
	})
}

// UpdateSettings godoc
// @Summary Change profile, email or password
// @Description Changing email or password needs currentPassword. A new email must be verified again.
// @Tags settings
// @Accept x-www-form-urlencoded
// @Produce json
// @Param intent formData string true "profile, email or password"
// @Param firstName formData string false "profile"
// @Param lastName formData string false "profile"
// @Param profileEmoji formData string false "profile"
// @Param email formData string false "email"
// @Param currentPassword formData string false "email, password"
// @Param newPassword formData string false "password"
// @Param confirmPassword formData string false "password"
// @Success 303 "redirect to /settings?updated=<intent>"
// @Failure 200 {object} apperrors.FormErrorResponse
// @Router /settings [post]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var form dto.SettingsForm
	if !h.BindAndValidate(c, &form) {
		return
	}

	updated, err := h.userService.UpdateSettings(c.Request.Context(), h.GetDB(c), h.Viewer(c).User, &form)
	if err != nil {
		h.HandleFormError(c, err)
		return
	}
	if updated == "" {
		SeeOther(c, "/settings")
		return
	}
	SeeOther(c, "/settings?updated="+updated)
}
