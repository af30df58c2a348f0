package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"connectfood/internal/generated/servers"
	"connectfood/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// StatusFor maps a lifecycle rejection to its HTTP status. Anything that is not
// a rejection is a server error.
func StatusFor(err error) int {
	switch errs.CodeOf(err) {
	case errs.CodeInvalidInput, errs.CodeInvalidTransition, errs.CodeIncompleteVerification:
		return http.StatusUnprocessableEntity
	case errs.CodeUnauthorized:
		return http.StatusForbidden
	case errs.CodeNotFound:
		return http.StatusNotFound
	case errs.CodeConflict:
		return http.StatusConflict
	case errs.CodeExpired:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status := StatusFor(err)
	body := servers.Error{Code: status, Message: err.Error()}

	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		body.Message = "internal server error"
		return ctx.JSON(status, body)
	}

	kind := string(errs.CodeOf(err))
	body.Kind = &kind

	var lerr *errs.LifecycleError
	if errors.As(err, &lerr) {
		body.Message = lerr.Reason
		if len(lerr.Fields) > 0 {
			fields := append([]string(nil), lerr.Fields...)
			body.Fields = &fields
		}
	}
	return ctx.JSON(status, body)
}

func badRequest(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}

// ErrorHandler renders errors that escape the handlers, such as routing and
// parameter binding failures, in the API error shape.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			message = fmt.Sprint(he.Message)
		} else {
			logger.ErrorContext(c.Request().Context(), "unhandled error", "path", c.Path(), "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, servers.Error{Code: status, Message: message})
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
		}
	}
}
