package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgboard/orgboard-api/internal/core/domain"
	"github.com/orgboard/orgboard-api/internal/core/guard"
	"github.com/orgboard/orgboard-api/internal/core/rbac"
)

// RequireRoles gates a route on an allowed-role set via the guard decision
// function. An empty set admits any authenticated role. Must run after Auth.
func RequireRoles(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := sessionFromContext(c)
			switch guard.Evaluate(session, false, allowed) {
			case guard.DecisionAllow:
				return next(c)
			case guard.DecisionRedirectToLogin:
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			default:
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
		}
	}
}

// Permit gates a route on a single permission/resource pair in the matrix.
// Must run after Auth.
func Permit(matrix rbac.Matrix, permission rbac.Permission, resource rbac.Resource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(domain.Role)
			if !matrix.Can(role, permission, resource) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// sessionFromContext reconstructs a minimal session from the claims the Auth
// middleware injected. The token already passed parse and expiry checks, so
// presence of a user id means authenticated.
func sessionFromContext(c echo.Context) domain.Session {
	id, _ := c.Get(CtxUserID).(string)
	if id == "" {
		return domain.Anonymous()
	}
	email, _ := c.Get(CtxEmail).(string)
	role, _ := c.Get(CtxRole).(domain.Role)
	return domain.Session{
		User:            &domain.User{ID: id, Email: email, Role: role},
		IsAuthenticated: true,
	}
}
