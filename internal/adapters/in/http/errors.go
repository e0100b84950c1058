package http

import (
	"errors"
	"net/http"

	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/domain/services"
	"waterdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// StatusFor maps an application error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrStorageFailure):
		return http.StatusServiceUnavailable
	case errors.Is(err, order.ErrAlreadyClaimed):
		return http.StatusConflict
	case errors.Is(err, order.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrDriverNotFound), errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// messageFor hides internals of server-side failures.
func messageFor(status int, err error) string {
	switch status {
	case http.StatusInternalServerError:
		return "Internal server error"
	case http.StatusServiceUnavailable:
		return "Storage is temporarily unavailable"
	default:
		return err.Error()
	}
}

// errorHandler renders errors escaping the handlers (routing, binding, validation) in
// the same {code, message} shape.
func errorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(status)
		return
	}
	_ = ctx.JSON(status, Error{Code: status, Message: message})
}
