package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/response"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the same envelope the services return.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(resp.StatusCode)
			return
		}
		_ = c.JSON(resp.StatusCode, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) response.APIResponse {
	// Echo's own errors (bind failures, 404 from router, guard rejections, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprintf("%v", he.Message)
		if he.Code >= http.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("http error")
			msg = response.MsgUnexpected
		}
		return response.Error(msg, he.Code)
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return response.Error(response.MsgUserNotFound, http.StatusNotFound)
	case errors.Is(err, domain.ErrUserExists):
		return response.Error(response.MsgUserExists, http.StatusConflict)
	case errors.Is(err, domain.ErrRoleNotFound):
		return response.Error(response.MsgRoleNotFound, http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidToken):
		return response.Error(response.MsgUnauthorized, http.StatusUnauthorized)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return response.Internal()
}
