package apperrors

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error body
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// FormErrorResponse is the inline error body returned to form posts
type FormErrorResponse struct {
	Error  string      `json:"error"`
	Code   ErrorCode   `json:"code"`
	Fields interface{} `json:"fields,omitempty"`
}

// GinErrorHandler renders errors for gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError is the main error rendering logic
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}
	if appErr.Code == CodeInternalError && !h.Debug {
		// hide details outside debug
		appErr = appErr.WithDetails(nil)
		appErr.Message = "Internal server error"
	}

	if appErr.HTTPCode >= 500 {
		slog.ErrorContext(c.Request.Context(), "server error", "error", appErr.Unwrap(), "code", appErr.Code)
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// debugErrors is switched off in production by SetDebug
var debugErrors = true

// SetDebug controls whether internal error details reach clients
func SetDebug(debug bool) {
	debugErrors = debug
}

// HandleError is the quick helper for gin handlers
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: debugErrors}
	handler.HandleGinError(c, err)
}

// HandleFormError renders validation-style errors inline (HTTP 200 with an
// error payload), and everything else through HandleError.
func HandleFormError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok || !appErr.Code.IsInline() {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, FormErrorResponse{
		Error:  appErr.Message,
		Code:   appErr.Code,
		Fields: appErr.Details,
	})
}

// AsAppError tries to convert an error into *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
