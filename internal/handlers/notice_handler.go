package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tfl_backend/internal/auth"
	"tfl_backend/internal/middleware"
	"tfl_backend/internal/services"
	"tfl_backend/internal/services/dto"
	"tfl_backend/pkg/apperrors"
)

type NoticeHandler struct {
	*BaseHandler
	noticeService services.NoticeService
	eventService  services.EventService
}

func NewNoticeHandler(base *BaseHandler, noticeService services.NoticeService, eventService services.EventService) *NoticeHandler {
	return &NoticeHandler{
		BaseHandler:   base,
		noticeService: noticeService,
		eventService:  eventService,
	}
}

func (h *NoticeHandler) RegisterRoutes(r gin.IRouter) {
	notices := r.Group("/notices", middleware.RequireCapability(auth.Verified))
	{
		notices.GET("", h.ListNotices)
		notices.POST("/dismiss", h.Dismiss)
		notices.GET("/:noticeId", h.GetNotice)
	}

	admin := r.Group("/notices/create", middleware.AdminMiddleware())
	{
		admin.GET("", h.CreatePage)
		admin.POST("", h.Create)
	}
}

// ListNotices shows admins every notice and everyone else the notices for
// sessions they joined
func (h *NoticeHandler) ListNotices(c *gin.Context) {
	ctx := c.Request.Context()
	db := h.GetDB(c)
	viewer := h.Viewer(c)

	var (
		notices []dto.NoticeResponse
		err     error
	)
	if viewer.IsAdmin() {
		notices, err = h.noticeService.ListAll(ctx, db)
	} else {
		notices, err = h.noticeService.ListForUser(ctx, db, viewer.UserID)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NoticeListPage{
		Notices: notices,
		IsAdmin: viewer.IsAdmin(),
		Created: QueryFlag(c, "created"),
	})
}

func (h *NoticeHandler) GetNotice(c *gin.Context) {
	noticeID, err := ParseParamID(c, "noticeId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	notice, err := h.noticeService.Get(c.Request.Context(), h.GetDB(c), noticeID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notice)
}

func (h *NoticeHandler) CreatePage(c *gin.Context) {
	choices, err := h.eventService.EventChoices(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NoticeCreatePage{Events: choices})
}

// Create godoc
// @Summary Post a notice to a session's attendees
// @Tags notices
// @Accept x-www-form-urlencoded
// @Produce json
// @Param event_id formData int true "event id"
// @Param message formData string true "message"
// @Success 303 "redirect to /notices?created=1"
// @Failure 200 {object} apperrors.FormErrorResponse
// @Router /notices/create [post]
func (h *NoticeHandler) Create(c *gin.Context) {
	var form dto.CreateNoticeForm
	if !h.BindAndValidate(c, &form) {
		return
	}

	eventID, _ := strconv.ParseUint(strings.TrimSpace(form.EventID), 10, 64)
	_, err := h.noticeService.Create(c.Request.Context(), h.GetDB(c), uint(eventID), form.Message, h.Viewer(c).UserID)
	if err != nil {
		// the form shows a vanished event next to the picker
		if errors.Is(err, apperrors.ErrEventNotFound) {
			c.JSON(http.StatusOK, apperrors.FormErrorResponse{
				Error: apperrors.ErrEventNotFound.Message,
				Code:  apperrors.ErrEventNotFound.Code,
			})
			return
		}
		h.HandleFormError(c, err)
		return
	}
	SeeOther(c, "/notices?created=1")
}

// Dismiss godoc
// @Summary Hide a notice for the current user
// @Tags notices
// @Accept x-www-form-urlencoded
// @Produce json
// @Param notice_id formData int true "notice id"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /notices/dismiss [post]
func (h *NoticeHandler) Dismiss(c *gin.Context) {
	var form dto.DismissNoticeForm
	if !h.BindAndValidate(c, &form) {
		return
	}
	noticeID, err := parseID(form.NoticeID, "notice_id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if err := h.noticeService.Dismiss(c.Request.Context(), h.GetDB(c), h.Viewer(c).UserID, noticeID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dismissed": true})
}
