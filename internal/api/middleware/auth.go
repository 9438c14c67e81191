package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/api/metrics"
	"github.com/99minutos/account-service/internal/core/ports"
	"github.com/99minutos/account-service/internal/core/response"
)

// Context keys populated by Auth.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// TokenCookie is read when the request carries no Authorization header.
const TokenCookie = "access_token"

// Auth validates the access token, rejects revoked ones and injects the
// caller's id and role into the context.
func Auth(tokens ports.TokenIssuer, revocations ports.RevocationStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, reason := extractToken(c)
			if reason != "" {
				return reject(c, reason)
			}

			identity, err := tokens.Parse(raw)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return reject(c, "expired_token")
				}
				return reject(c, "invalid_token")
			}

			revoked, err := revocations.IsRevoked(c.Request().Context(), identity.UserID, identity.IssuedAt)
			if err != nil {
				log.Error().Err(err).Str("user_id", identity.UserID).Msg("revocation lookup failed")
				return c.JSON(http.StatusInternalServerError, response.Internal())
			}
			if revoked {
				return reject(c, "revoked_token")
			}

			c.Set(CtxUserID, identity.UserID)
			c.Set(CtxRole, identity.Role)

			return next(c)
		}
	}
}

// extractToken prefers the Authorization header and falls back to the
// cookie. A non-empty reason means no usable token was presented.
func extractToken(c echo.Context) (token, reason string) {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", "invalid_token"
		}
		return strings.TrimSpace(parts[1]), ""
	}

	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, ""
	}
	return "", "missing_token"
}

func reject(c echo.Context, reason string) error {
	metrics.GuardRejectionsTotal.WithLabelValues(reason).Inc()
	return c.JSON(http.StatusUnauthorized, response.Error(response.MsgUnauthorized, http.StatusUnauthorized))
}
