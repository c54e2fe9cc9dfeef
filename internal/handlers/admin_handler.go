package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tfl_backend/internal/middleware"
	"tfl_backend/internal/services"
	"tfl_backend/internal/services/dto"
	"tfl_backend/pkg/apperrors"
)

type AdminHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewAdminHandler(base *BaseHandler, userService services.UserService) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *AdminHandler) RegisterRoutes(r gin.IRouter) {
	admin := r.Group("/admin", middleware.AdminMiddleware())
	{
		admin.GET("/users", h.ListUsers)
		admin.POST("/users", h.UsersAction)
	}
}

// ListUsers godoc
// @Summary User table
// @Tags admin
// @Produce json
// @Param q query string false "matches username, email or name"
// @Param verified query string false "yes or no"
// @Param admin query string false "yes or no"
// @Param page query int false "page, from 1"
// @Param page_size query int false "rows per page; 0 for all"
// @Success 200 {object} dto.AdminUsersPage
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var filter dto.UserFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid query parameters"))
		return
	}
	filter.Page, filter.PageSize = ParsePagination(c)

	page, err := h.userService.ListUsers(c.Request.Context(), h.GetDB(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	page.CurrentUserID = h.Viewer(c).UserID
	c.JSON(http.StatusOK, page)
}

// UsersAction godoc
// @Summary Bulk resend verification or change admin rights
// @Tags admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Param intent formData string true "resend-verification or set-admin"
// @Param userId formData []string true "user ids" collectionFormat(multi)
// @Param isAdmin formData string false "1 to grant, 0 to revoke (set-admin)"
// @Success 200 {object} dto.ResendResult
// @Router /admin/users [post]
func (h *AdminHandler) UsersAction(c *gin.Context) {
	var form dto.AdminUsersForm
	if !h.BindAndValidate(c, &form) {
		return
	}

	ctx := c.Request.Context()
	db := h.GetDB(c)
	ids := ParseIDs(form.UserIDs)

	switch form.Intent {
	case "resend-verification":
		result, err := h.userService.ResendVerificationBulk(ctx, db, ids)
		if err != nil {
			h.HandleFormError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)

	case "set-admin":
		if form.IsAdmin != "0" && form.IsAdmin != "1" {
			h.HandleFormError(c, apperrors.NewBadRequestError("isAdmin must be 0 or 1"))
			return
		}
		n, err := h.userService.SetAdmin(ctx, db, h.Viewer(c).UserID, ids, form.IsAdmin == "1")
		if err != nil {
			h.HandleFormError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.SetAdminResult{Updated: n})
	}
}
