package http

import (
	"errors"
	"net/http"

	"scantrack/internal/core/ports"
	"scantrack/internal/generated/servers"
	"scantrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ReasonReauthRequired marks errors the client can only clear by supplying
// a new vision API key.
const ReasonReauthRequired = "reauth_required"

// ErrorResponse maps err to its status code and body.
func ErrorResponse(err error) (int, servers.Error) {
	if kind, ok := ports.VisionErrorKindOf(err); ok {
		switch {
		case kind.IsFatal():
			reason := ReasonReauthRequired
			return respond(http.StatusUnauthorized, "vision "+kind.String()+": supply a new api key", &reason)
		case kind == ports.VisionNotFound:
			return respond(http.StatusUnprocessableEntity, "no order number found in the image", nil)
		default:
			return respond(http.StatusBadGateway, "vision service unavailable, try again", nil)
		}
	}

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return respond(httpErr.Code, msg, nil)
	case errors.Is(err, errs.ErrAuth):
		reason := ReasonReauthRequired
		return respond(http.StatusUnauthorized, err.Error(), &reason)
	case errors.Is(err, errs.ErrPersistence):
		return respond(http.StatusServiceUnavailable, "storage unavailable, try again", nil)
	case errors.Is(err, errs.ErrObjectNotFound):
		return respond(http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, errs.ErrConflict):
		return respond(http.StatusConflict, err.Error(), nil)
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respond(http.StatusBadRequest, err.Error(), nil)
	default:
		return respond(http.StatusInternalServerError, "internal error", nil)
	}
}

func respond(code int, message string, reason *string) (int, servers.Error) {
	return code, servers.Error{Code: code, Message: message, Reason: reason}
}

// HTTPErrorHandler renders every error returned by a handler as servers.Error.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, body := ErrorResponse(err)
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, body)
}
