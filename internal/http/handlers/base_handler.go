// Shared handler utilities: JSON helpers and domain-error mapping.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hakobu/internal/modules/dispatch"
	"hakobu/internal/modules/estimate"
	"hakobu/internal/modules/fleet"
	"hakobu/internal/modules/quote"
)

type errorResponse struct {
	Error string `json:"error"`
	// Conflict carries the blocking schedule entry on assignment rejects.
	Conflict *dispatch.ScheduleEntry `json:"conflict,omitempty"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

// writeDomainError maps module sentinel errors to HTTP statuses. Everything
// unrecognized is a 500 with a generic message.
func writeDomainError(c *gin.Context, err error) {
	var cce *dispatch.ConfirmedConflictError
	switch {
	case errors.As(err, &cce):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error(), Conflict: &cce.Entry})
	case errors.Is(err, quote.ErrBadRequest),
		errors.Is(err, fleet.ErrBadRequest),
		errors.Is(err, dispatch.ErrBadRequest),
		errors.Is(err, estimate.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, quote.ErrNotFound),
		errors.Is(err, fleet.ErrNotFound),
		errors.Is(err, dispatch.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, quote.ErrInvalidState),
		errors.Is(err, dispatch.ErrTruckUnavailable),
		errors.Is(err, dispatch.ErrCapacityExceeded):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, dispatch.ErrTokenExpired):
		writeError(c, http.StatusGone, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
