package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/server/http/dto"
)

// StatusFor maps a domain error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrValidation),
		errors.Is(err, domainErrors.ErrInvalidDoorType),
		errors.Is(err, domainErrors.ErrInvalidComponentKind),
		errors.Is(err, domainErrors.ErrInvalidCasingType),
		errors.Is(err, domainErrors.ErrInvalidCasingFormula),
		errors.Is(err, domainErrors.ErrInvalidAccessoryType):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrDerivedField):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrInFlight):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrCalculationFailed),
		errors.Is(err, domainErrors.ErrSubmissionFailed):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: http.StatusText(status)})
		return
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
}

// uuidParams parses the named path parameters as UUIDs.
func uuidParams(c *gin.Context, names ...string) ([]uuid.UUID, bool) {
	out := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		id, err := uuid.Parse(c.Param(name))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, dto.ErrorResponse{Error: "unknown " + name})
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}
