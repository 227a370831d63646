package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"meeting-scribe/internal/api/errors"
)

// ValidateRequest binds a JSON body and reports tag violations field by field
func ValidateRequest(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return bindingError(err, "invalid JSON body")
	}
	return nil
}

// ValidateQuery binds query parameters with the same error shape
func ValidateQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return bindingError(err, "invalid query parameters")
	}
	return nil
}

func bindingError(err error, fallback string) error {
	validationErrors := make(map[string]string)

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrs {
			field := strings.ToLower(fieldError.Field())

			switch fieldError.Tag() {
			case "required":
				validationErrors[field] = "is required"
			case "min":
				validationErrors[field] = "is too small"
			case "max":
				validationErrors[field] = "is too large"
			case "oneof":
				validationErrors[field] = "must be one of the allowed values"
			default:
				validationErrors[field] = "is invalid"
			}
		}
	} else {
		validationErrors["request"] = fallback
	}

	return errors.NewValidationError("Validation failed", validationErrors)
}
