package http

import (
	"errors"
	"log/slog"
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var (
	ErrOwnerIsRequired = errors.New("X-User-ID header is required")
	errInvalidBody     = errors.New("invalid request body")
)

var validationErrors = []error{
	errs.ErrValueIsRequired,
	errs.ErrValueIsInvalid,
	errs.ErrValueIsOutOfRange,
	route.ErrInvalidRouteLength,
	route.ErrIndexOutOfRange,
	tracking.ErrUnsupportedService,
	tracking.ErrInvalidLength,
	tracking.ErrInvalidLeadingDigit,
	tracking.ErrInvalidDigits,
	tracking.ErrChecksumMismatch,
	commands.ErrServiceClassImmutable,
}

// statusOf maps use case errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, shipment.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, commands.ErrIdentifierCollision):
		return http.StatusServiceUnavailable
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

// respondError writes err as an Error body. Internal errors are logged and
// replaced by a generic message.
func respondError(c echo.Context, logger *slog.Logger, err error) error {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		message = http.StatusText(status)
	}
	return c.JSON(status, Error{Code: status, Message: message})
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
}
