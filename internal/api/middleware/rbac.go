package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/api/metrics"
	"github.com/99minutos/account-service/internal/core/response"
)

// RequireRole admits only callers whose role equals role exactly. It must run
// after Auth; a request without a role is refused as well.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got, _ := c.Get(CtxRole).(string)
			if got == "" || got != role {
				metrics.GuardRejectionsTotal.WithLabelValues("forbidden").Inc()
				return c.JSON(http.StatusForbidden, response.Error(response.MsgAccessDenied, http.StatusForbidden))
			}
			return next(c)
		}
	}
}
