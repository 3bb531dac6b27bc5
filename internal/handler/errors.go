package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/roomgate/backend/internal/model"
	"github.com/roomgate/backend/internal/service"
)

// errorMessage strips the sentinel prefix from a wrapped service error so
// clients see "user not found" rather than "not found: user not found".
func errorMessage(err error) string {
	msg := err.Error()
	if _, detail, found := strings.Cut(msg, ": "); found {
		return detail
	}
	return msg
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: errorMessage(err)})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, model.ErrorResponse{Error: errorMessage(err)})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, model.ErrorResponse{Error: errorMessage(err)})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: errorMessage(err)})
	case errors.Is(err, service.ErrLocked):
		c.JSON(http.StatusLocked, model.ErrorResponse{Error: "Account locked due to multiple failed login attempts. Try again later."})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Internal server error"})
	}
}

// writeBindingError converts gin/validator binding failures into the field
// error list shape.
func writeBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]model.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, model.FieldError{
				Field:   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
				Message: "failed validation on '" + fe.Tag() + "'",
			})
		}
		c.JSON(http.StatusBadRequest, model.ValidationErrorResponse{Errors: fields})
		return
	}
	c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request body"})
}
