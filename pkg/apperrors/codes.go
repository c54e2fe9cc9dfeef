package apperrors

// ErrorCode is the machine-readable error type
type ErrorCode string

// General, non-domain codes
const (
	// System and unknown errors
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Business logic (used by the factories)
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeLimitExceeded    ErrorCode = "LIMIT_EXCEEDED"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	// Authentication and authorization
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeEmailNotVerified   ErrorCode = "EMAIL_NOT_VERIFIED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
)

// IsInline reports whether errors with this code are shown next to the form
// that caused them instead of failing the request.
func (c ErrorCode) IsInline() bool {
	switch c {
	case CodeValidationFailed, CodeConflict, CodeAlreadyExists, CodeInvalidCredentials,
		CodeInvalidToken, CodeInvalidStatus, CodeLimitExceeded, CodeExternalServiceError:
		return true
	default:
		return false
	}
}
