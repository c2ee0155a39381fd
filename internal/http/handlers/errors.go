package handlers

import (
	"errors"
	"net/http"

	"tourops/internal/domain"
	"tourops/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"details":    details,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Field-level
// validation failures come back as a field -> message map so the form can
// mark each invalid field.
func RespondDomainError(c *gin.Context, err error) {
	var fields domain.FieldErrors
	if errors.As(err, &fields) {
		respondError(c, http.StatusBadRequest, "validation_error", "validation failed", fields.Fields())
		return
	}

	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
