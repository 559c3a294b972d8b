package utils

import (
	"log/slog"
	"net/http"

	"github.com/ecommerce-admin/backend/internal/errors"
	"github.com/ecommerce-admin/backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ParseAndValidate decodes the JSON body into dest and runs struct
// validation, writing a 400 and returning false on failure.
func ParseAndValidate(w http.ResponseWriter, r *http.Request, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, errors.BadRequestError(err.Error()))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		slog.Warn("Validation failed", slog.String("error", err.Error()))
		response.Error(w, errors.ValidationError(err.Error()))
		return false
	}

	return true
}
