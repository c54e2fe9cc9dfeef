package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tfl_backend/internal/auth"
	"tfl_backend/internal/logger"
	"tfl_backend/internal/middleware"
	"tfl_backend/internal/session"
	"tfl_backend/internal/validator"
	"tfl_backend/pkg/apperrors"
	"tfl_backend/pkg/contextkeys"
)

// ============================================================================
// Base handler
// ============================================================================

type BaseHandler struct {
	validator  *validator.Validator
	sessions   *session.Manager
	production bool
}

func NewBaseHandler(v *validator.Validator, sessions *session.Manager, production bool) *BaseHandler {
	return &BaseHandler{
		validator:  v,
		sessions:   sessions,
		production: production,
	}
}

// GetDB returns the *gorm.DB placed on the context by DBMiddleware
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db.WithContext(c.Request.Context())
}

// Viewer is the caller resolved by SessionMiddleware
func (h *BaseHandler) Viewer(c *gin.Context) *auth.Viewer {
	return middleware.GetViewer(c)
}

// ============================================================================
// Binding and validation
// ============================================================================

// BindAndValidate binds a form or JSON body and validates it. Failures are
// answered inline and false is returned.
func (h *BaseHandler) BindAndValidate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind request body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}

	if err := h.validator.ValidateApp(obj); err != nil {
		logger.CtxWarn(ctx, "Validation failed", "error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleFormError(c, err)
		return false
	}
	return true
}

// ============================================================================
// Error responses
// ============================================================================

// HandleServiceError answers a page (GET) request that failed
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	h.logServiceError(c, err)
	apperrors.HandleError(c, err)
}

// HandleFormError answers a form post that failed. Validation-style errors
// are returned as 200 {error} so the form can show them.
func (h *BaseHandler) HandleFormError(c *gin.Context, err error) {
	h.logServiceError(c, err)
	apperrors.HandleFormError(c, err)
}

func (h *BaseHandler) logServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code != apperrors.CodeInternalError {
		logger.CtxDebug(ctx, "Service error",
			"code", appErr.Code,
			"error", appErr.Message,
			"path", c.Request.URL.Path,
		)
		return
	}
	logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
}

// SeeOther redirects after a successful post
func SeeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// ============================================================================
// Parsing
// ============================================================================

// ParseParamID reads a positive integer path parameter
func ParseParamID(c *gin.Context, key string) (uint, error) {
	return parseID(c.Param(key), key)
}

func parseID(raw, name string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperrors.NewBadRequestError("Missing " + name)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewBadRequestError("Invalid " + name)
	}
	return uint(id), nil
}

// ParseIDs reads repeated form values, dropping anything that is not a
// positive integer.
func ParseIDs(raw []string) []uint {
	ids := make([]uint, 0, len(raw))
	for _, r := range raw {
		if id, err := parseID(r, "id"); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// ParsePagination reads page and page_size. A missing page_size means the
// whole list.
func ParsePagination(c *gin.Context) (page int, pageSize int) {
	const maxPageSize = 100

	page = ParseQueryInt(c, "page", 1)
	if page <= 0 {
		page = 1
	}
	pageSize = ParseQueryInt(c, "page_size", 0)
	if pageSize < 0 {
		pageSize = 0
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// QueryFlag reports whether a query parameter is present and non-empty
func QueryFlag(c *gin.Context, key string) bool {
	return strings.TrimSpace(c.Query(key)) != ""
}
