package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/orgboard/orgboard-api/internal/api/metrics"
	"github.com/orgboard/orgboard-api/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// Auth validates the bearer token through the token service and injects its
// claims into the echo context. Expiry is reported distinctly from a
// malformed or tampered token.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenRejectionsTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			token := parts[1]
			claims := tokens.Parse(token)
			if claims == nil {
				metrics.TokenRejectionsTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if tokens.IsExpired(token) {
				metrics.TokenRejectionsTotal.WithLabelValues("expired").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
			}

			c.Set(CtxUserID, claims.ID)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxRole, claims.Role)

			return next(c)
		}
	}
}
