package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tfl_backend/internal/faq"
	"tfl_backend/pkg/apperrors"
)

// PublicHandler serves pages that need no session
type PublicHandler struct {
	*BaseHandler
	faq []faq.Entry
}

func NewPublicHandler(base *BaseHandler, entries []faq.Entry) *PublicHandler {
	return &PublicHandler{BaseHandler: base, faq: entries}
}

func (h *PublicHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/faq", h.FAQ)
	r.GET("/healthz", h.Health)
}

// FAQ godoc
// @Summary Frequently asked questions
// @Tags public
// @Produce json
// @Success 200 {object} map[string][]faq.Entry
// @Router /faq [get]
func (h *PublicHandler) FAQ(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"faq": h.faq})
}

// Health pings the database
func (h *PublicHandler) Health(c *gin.Context) {
	sqlDB, err := h.GetDB(c).DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.HandleServiceError(c, apperrors.Wrap(err, apperrors.CodeDatabaseError, "system", "Database unavailable", http.StatusServiceUnavailable))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
