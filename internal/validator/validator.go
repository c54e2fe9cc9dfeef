package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tfl_backend/pkg/apperrors"
)

// ValidationError maps field name to message
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	var errMsgs []string
	for field, msg := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, msg))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Validator wraps go-playground/validator with the portal's rules
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report fields by their form name, falling back to json
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate checks a struct; failures come back as *ValidationError
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	customErrors := make(map[string]string)
	for _, fe := range validationErrors {
		customErrors[fe.Field()] = v.getErrorMessage(fe)
	}
	return &ValidationError{Errors: customErrors}
}

// ValidateApp is Validate with the result converted to an inline AppError
func (v *Validator) ValidateApp(i interface{}) error {
	err := v.Validate(i)
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		appErr := apperrors.ValidationError(ve.Errors)
		for _, msg := range ve.Errors {
			// surface one readable message for inline display
			appErr.Message = msg
			break
		}
		return appErr
	}
	return apperrors.InternalError(err)
}

func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Please enter a valid email address."
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "profile_emoji":
		return "Please choose a valid profile emoji."
	case "iso_date":
		return "Please enter the date as YYYY-MM-DD."
	case "id_list":
		return "Must be a comma-separated list of ids"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
