package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/api/metrics"
	"github.com/99minutos/account-service/internal/api/middleware"
	"github.com/99minutos/account-service/internal/core/response"
)

// ctxUserID extracts the caller id injected by the Auth middleware. A missing
// id means the route was registered without the guard.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, response.MsgUnauthorized)
	}
	return id, nil
}

// respond writes the envelope with its own status code and counts the outcome.
func respond(c echo.Context, op string, resp response.APIResponse) error {
	metrics.ObserveOperation(op, resp.StatusCode)
	return c.JSON(resp.StatusCode, resp)
}
