package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tfl_backend/internal/auth"
	"tfl_backend/internal/middleware"
	"tfl_backend/internal/services"
	"tfl_backend/internal/services/dto"
	"tfl_backend/internal/validator"
)

type EventHandler struct {
	*BaseHandler
	eventService services.EventService
}

func NewEventHandler(base *BaseHandler, eventService services.EventService) *EventHandler {
	return &EventHandler{
		BaseHandler:  base,
		eventService: eventService,
	}
}

func (h *EventHandler) RegisterRoutes(r gin.IRouter) {
	events := r.Group("/events", middleware.RequireCapability(auth.Verified))
	{
		events.GET("", h.ListEvents)
		events.POST("", h.BulkAction)
		events.GET("/:eventId", h.GetEvent)
		events.POST("/:eventId", h.EventAction)
	}
}

// ListEvents godoc
// @Summary Upcoming sessions grouped by month
// @Tags events
// @Produce json
// @Success 200 {object} dto.EventListPage
// @Router /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	page, err := h.eventService.ListUpcoming(c.Request.Context(), h.GetDB(c), h.Viewer(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// BulkAction godoc
// @Summary Sign up to or leave several sessions at once
// @Tags events
// @Accept x-www-form-urlencoded
// @Produce json
// @Param intent formData string true "bulk_signup, bulk_unsignup or bulk_save"
// @Param eventId formData []string false "event ids for bulk_signup and bulk_unsignup" collectionFormat(multi)
// @Param signupEventIds formData string false "comma separated ids to join (bulk_save)"
// @Param unsignupEventIds formData string false "comma separated ids to leave (bulk_save)"
// @Success 200 {object} dto.BulkResult
// @Router /events [post]
func (h *EventHandler) BulkAction(c *gin.Context) {
	var form dto.BulkEventsForm
	if !h.BindAndValidate(c, &form) {
		return
	}

	ctx := c.Request.Context()
	db := h.GetDB(c)
	userID := h.Viewer(c).UserID
	result := &dto.BulkResult{}

	var err error
	switch form.Intent {
	case "bulk_signup":
		result.SignedUp, err = h.eventService.BulkSignUp(ctx, db, userID, ParseIDs(form.EventIDs))
	case "bulk_unsignup":
		result.Removed, err = h.eventService.BulkCancel(ctx, db, userID, ParseIDs(form.EventIDs))
	case "bulk_save":
		signupIDs, _ := validator.ParseIDList(form.SignupEventIDs)
		cancelIDs, _ := validator.ParseIDList(form.UnsignupEventIDs)
		result, err = h.eventService.BulkApply(ctx, db, userID, signupIDs, cancelIDs)
	}
	if err != nil {
		h.HandleFormError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetEvent godoc
// @Summary One session with its attendee list
// @Tags events
// @Produce json
// @Param eventId path int true "event id"
// @Success 200 {object} dto.EventDetail
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /events/{eventId} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, err := ParseParamID(c, "eventId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	detail, err := h.eventService.GetEventDetail(c.Request.Context(), h.GetDB(c), eventID, h.Viewer(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// EventAction handles the detail page's forms: signup (the default),
// unsignup, update_guests and the admin-only edit.
func (h *EventHandler) EventAction(c *gin.Context) {
	eventID, err := ParseParamID(c, "eventId")
	if err != nil {
		h.HandleFormError(c, err)
		return
	}
	var form dto.EventActionForm
	if !h.BindAndValidate(c, &form) {
		return
	}

	ctx := c.Request.Context()
	db := h.GetDB(c)
	viewer := h.Viewer(c)

	switch form.Intent {
	case "unsignup":
		if err := h.eventService.CancelSignup(ctx, db, eventID, viewer.UserID); err != nil {
			h.HandleFormError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.EventActionResult{Unsignup: true})

	case "update_guests":
		guests := services.ParseGuestCount(form.GuestCount)
		if err := h.eventService.UpdateGuestCount(ctx, db, eventID, viewer.UserID, guests); err != nil {
			h.HandleFormError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.EventActionResult{GuestsUpdated: true})

	case "edit":
		if err := viewer.Require(auth.Admin); err != nil {
			h.HandleServiceError(c, err)
			return
		}
		fields := dto.EventFields{
			EventDate:   form.EventDate,
			Title:       form.Title,
			Description: form.Description,
			Location:    form.Location,
			Time:        form.Time,
		}
		if err := h.eventService.UpdateEventDetails(ctx, db, eventID, fields); err != nil {
			h.HandleFormError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.EventActionResult{EditSuccess: true})

	default:
		guests := services.ParseGuestCount(form.GuestCount)
		if err := h.eventService.SignUp(ctx, db, eventID, viewer.UserID, guests); err != nil {
			h.HandleFormError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.EventActionResult{Success: true})
	}
}
